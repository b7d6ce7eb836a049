// Package flowgraph provides flow graph analysis and validation for node links.
package flowgraph

import (
	"fmt"

	"github.com/contoroinc/depthai-ros/errors"
	"github.com/contoroinc/depthai-ros/node"
)

// Validation status values
const (
	StatusHealthy  = "healthy"
	StatusWarnings = "warnings"
	StatusInvalid  = "invalid"
)

// Orphaned port issues
const (
	IssueNoUpstream   = "no_upstream"
	IssueNoDownstream = "no_downstream"
)

// FlowGraph represents a directed graph of node connections
type FlowGraph struct {
	nodes map[string]*GraphNode
	order []string
	edges []FlowEdge
}

// GraphNode represents a node in the flow graph
type GraphNode struct {
	Name        string
	Kind        node.Kind
	InputPorts  []PortInfo
	OutputPorts []PortInfo
}

// PortInfo contains port metadata for graph analysis
type PortInfo struct {
	Name      string
	Index     int
	Direction node.Direction
	Role      node.StreamRole
	Accepts   []node.StreamRole
	Required  bool
}

// FlowEdge represents a connection between two node ports
type FlowEdge struct {
	From PortRef `json:"from" yaml:"from"`
	To   PortRef `json:"to"   yaml:"to"`
}

// PortRef references a specific port on a node
type PortRef struct {
	NodeName string `json:"node_name" yaml:"node_name"`
	PortName string `json:"port_name" yaml:"port_name"`
}

// FlowAnalysisResult contains the results of connectivity analysis
type FlowAnalysisResult struct {
	ConnectedComponents [][]string         `json:"connected_components" yaml:"connected_components"`
	ConnectedEdges      []FlowEdge         `json:"connected_edges"      yaml:"connected_edges"`
	DisconnectedNodes   []DisconnectedNode `json:"disconnected_nodes"   yaml:"disconnected_nodes"`
	OrphanedPorts       []OrphanedPort     `json:"orphaned_ports"       yaml:"orphaned_ports"`
	ValidationStatus    string             `json:"validation_status"    yaml:"validation_status"`
}

// DisconnectedNode represents a node with no connections
type DisconnectedNode struct {
	NodeName string `json:"node_name" yaml:"node_name"`
	Issue    string `json:"issue"     yaml:"issue"`
}

// OrphanedPort represents a port with no connections
type OrphanedPort struct {
	NodeName  string         `json:"node_name" yaml:"node_name"`
	PortName  string         `json:"port_name" yaml:"port_name"`
	Direction node.Direction `json:"direction" yaml:"direction"`
	Issue     string         `json:"issue"     yaml:"issue"`
	Required  bool           `json:"required"  yaml:"required"`
}

// NewFlowGraph creates a new empty FlowGraph
func NewFlowGraph() *FlowGraph {
	return &FlowGraph{
		nodes: make(map[string]*GraphNode),
		edges: make([]FlowEdge, 0),
	}
}

// Build creates a graph from nodes and every link they emitted
func Build(nodes []node.Node) (*FlowGraph, error) {
	g := NewFlowGraph()
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			return nil, err
		}
	}
	for _, n := range nodes {
		for _, l := range n.Links() {
			if err := g.AddLink(l); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// GetNodes returns copies of the graph nodes in insertion order
func (g *FlowGraph) GetNodes() []GraphNode {
	result := make([]GraphNode, 0, len(g.order))
	for _, name := range g.order {
		n := g.nodes[name]
		nodeCopy := GraphNode{
			Name:        n.Name,
			Kind:        n.Kind,
			InputPorts:  make([]PortInfo, len(n.InputPorts)),
			OutputPorts: make([]PortInfo, len(n.OutputPorts)),
		}
		copy(nodeCopy.InputPorts, n.InputPorts)
		copy(nodeCopy.OutputPorts, n.OutputPorts)
		result = append(result, nodeCopy)
	}
	return result
}

// GetEdges returns the edges in the graph
func (g *FlowGraph) GetEdges() []FlowEdge {
	result := make([]FlowEdge, len(g.edges))
	copy(result, g.edges)
	return result
}

// AddNode adds a node to the graph. Names must be unique.
func (g *FlowGraph) AddNode(n node.Node) error {
	if n == nil {
		return errors.WrapInvalid(
			fmt.Errorf("%w: nil node", errors.ErrNodeNotFound),
			"FlowGraph", "AddNode", "node check")
	}

	meta := n.Meta()
	if meta.Name == "" {
		return errors.WrapInvalid(
			fmt.Errorf("%w: node name cannot be empty", errors.ErrInvalidConfig),
			"FlowGraph", "AddNode", "name check")
	}
	if _, exists := g.nodes[meta.Name]; exists {
		return errors.WrapFatal(
			fmt.Errorf("%w: %s", errors.ErrDuplicateNode, meta.Name),
			"FlowGraph", "AddNode", "uniqueness check")
	}

	g.nodes[meta.Name] = &GraphNode{
		Name:        meta.Name,
		Kind:        meta.Kind,
		InputPorts:  extractPortInfo(n.InputPorts()),
		OutputPorts: extractPortInfo(n.OutputPorts()),
	}
	g.order = append(g.order, meta.Name)
	return nil
}

// extractPortInfo converts node ports to PortInfo for graph analysis
func extractPortInfo(ports []node.Port) []PortInfo {
	result := make([]PortInfo, 0, len(ports))
	for _, port := range ports {
		result = append(result, PortInfo{
			Name:      port.Name,
			Index:     port.Index,
			Direction: port.Direction,
			Role:      port.Role,
			Accepts:   port.Accepts,
			Required:  port.Required,
		})
	}
	return result
}

// AddLink adds an edge for a link directive. Both ends must be in the graph
// and the port indices must name the ports the directive claims.
func (g *FlowGraph) AddLink(l node.LinkDirective) error {
	src, ok := g.nodes[l.Source]
	if !ok {
		return errors.WrapInvalid(
			fmt.Errorf("%w: link source %s", errors.ErrForeignNode, l.Source),
			"FlowGraph", "AddLink", "source lookup")
	}
	dst, ok := g.nodes[l.Target]
	if !ok {
		return errors.WrapInvalid(
			fmt.Errorf("%w: link target %s", errors.ErrForeignNode, l.Target),
			"FlowGraph", "AddLink", "target lookup")
	}

	out, err := portAt(src.OutputPorts, l.SourcePort, l.SourcePortName, src.Name)
	if err != nil {
		return errors.WrapInvalid(err, "FlowGraph", "AddLink", "source port lookup")
	}
	in, err := portAt(dst.InputPorts, l.TargetPort, l.TargetPortName, dst.Name)
	if err != nil {
		return errors.WrapInvalid(err, "FlowGraph", "AddLink", "target port lookup")
	}

	accepted := false
	for _, role := range in.Accepts {
		if role == out.Role {
			accepted = true
			break
		}
	}
	if !accepted {
		return errors.WrapInvalid(
			fmt.Errorf("%w: %s", errors.ErrPortRoleMismatch, l),
			"FlowGraph", "AddLink", "role check")
	}

	g.edges = append(g.edges, FlowEdge{
		From: PortRef{NodeName: src.Name, PortName: out.Name},
		To:   PortRef{NodeName: dst.Name, PortName: in.Name},
	})
	return nil
}

func portAt(ports []PortInfo, index int, name, owner string) (PortInfo, error) {
	if index < 0 || index >= len(ports) || ports[index].Name != name {
		return PortInfo{}, fmt.Errorf("%w: %s has no port %d named %q",
			errors.ErrPortNotFound, owner, index, name)
	}
	return ports[index], nil
}

// AnalyzeConnectivity performs graph connectivity analysis
func (g *FlowGraph) AnalyzeConnectivity() *FlowAnalysisResult {
	result := &FlowAnalysisResult{
		ConnectedEdges:      g.GetEdges(),
		ValidationStatus:    StatusHealthy,
		DisconnectedNodes:   []DisconnectedNode{},
		ConnectedComponents: g.findConnectedComponents(),
		OrphanedPorts:       g.findOrphanedPorts(),
	}

	if len(g.order) > 1 {
		for _, name := range g.order {
			hasConnection := false
			for _, edge := range g.edges {
				if edge.From.NodeName == name || edge.To.NodeName == name {
					hasConnection = true
					break
				}
			}
			if !hasConnection {
				result.DisconnectedNodes = append(result.DisconnectedNodes, DisconnectedNode{
					NodeName: name,
					Issue:    "Node has no connections",
				})
			}
		}
	}

	hasCriticalIssues := false
	for _, port := range result.OrphanedPorts {
		if port.Issue == IssueNoUpstream && port.Required {
			hasCriticalIssues = true
			break
		}
	}

	switch {
	case hasCriticalIssues:
		result.ValidationStatus = StatusInvalid
	case len(result.DisconnectedNodes) > 0:
		result.ValidationStatus = StatusWarnings
	}

	return result
}

// Validate returns ErrIncompleteWiring when a required input has no upstream
func (g *FlowGraph) Validate() error {
	result := g.AnalyzeConnectivity()
	if result.ValidationStatus != StatusInvalid {
		return nil
	}
	for _, port := range result.OrphanedPorts {
		if port.Issue == IssueNoUpstream && port.Required {
			return errors.WrapFatal(
				fmt.Errorf("%w: %s.%s", errors.ErrIncompleteWiring, port.NodeName, port.PortName),
				"FlowGraph", "Validate", "required input check")
		}
	}
	return nil
}

// findConnectedComponents uses DFS to find connected components in the graph
func (g *FlowGraph) findConnectedComponents() [][]string {
	visited := make(map[string]bool)
	components := [][]string{}

	// Treat edges as undirected for connectivity
	adj := make(map[string][]string)
	for _, edge := range g.edges {
		from := edge.From.NodeName
		to := edge.To.NodeName

		adj[from] = append(adj[from], to)
		adj[to] = append(adj[to], from)
	}

	for _, name := range g.order {
		if !visited[name] {
			var cluster []string
			g.dfs(name, adj, visited, &cluster)
			components = append(components, cluster)
		}
	}

	return components
}

// dfs performs depth-first search for connected components
func (g *FlowGraph) dfs(name string, adj map[string][]string, visited map[string]bool, cluster *[]string) {
	visited[name] = true
	*cluster = append(*cluster, name)

	for _, neighbor := range adj[name] {
		if !visited[neighbor] {
			g.dfs(neighbor, adj, visited, cluster)
		}
	}
}

// findOrphanedPorts identifies ports with no connections
func (g *FlowGraph) findOrphanedPorts() []OrphanedPort {
	orphaned := []OrphanedPort{}

	connectedPorts := make(map[PortRef]bool)
	for _, edge := range g.edges {
		connectedPorts[edge.From] = true
		connectedPorts[edge.To] = true
	}

	for _, name := range g.order {
		n := g.nodes[name]
		for _, port := range n.InputPorts {
			if !connectedPorts[PortRef{NodeName: name, PortName: port.Name}] {
				orphaned = append(orphaned, OrphanedPort{
					NodeName:  name,
					PortName:  port.Name,
					Direction: port.Direction,
					Issue:     IssueNoUpstream,
					Required:  port.Required,
				})
			}
		}
		for _, port := range n.OutputPorts {
			if !connectedPorts[PortRef{NodeName: name, PortName: port.Name}] {
				orphaned = append(orphaned, OrphanedPort{
					NodeName:  name,
					PortName:  port.Name,
					Direction: port.Direction,
					Issue:     IssueNoDownstream,
					Required:  port.Required,
				})
			}
		}
	}

	return orphaned
}
