package pipeline

import (
	"github.com/contoroinc/depthai-ros/device"
	"github.com/contoroinc/depthai-ros/flowgraph"
	"github.com/contoroinc/depthai-ros/node"
)

// Summary is the serializable description of a built graph
type Summary struct {
	ID          string                   `json:"id"                    yaml:"id"`
	Variant     string                   `json:"variant"               yaml:"variant"`
	NNType      string                   `json:"nn_type"               yaml:"nn_type"`
	Status      string                   `json:"status"                yaml:"status"`
	Nodes       []NodeSummary            `json:"nodes"                 yaml:"nodes"`
	Links       []node.LinkDirective     `json:"links"                 yaml:"links"`
	Orphaned    []flowgraph.OrphanedPort `json:"orphaned_ports,omitempty" yaml:"orphaned_ports,omitempty"`
	Connections []device.Connection      `json:"connections"           yaml:"connections"`
}

// NodeSummary describes one node and its hardware record
type NodeSummary struct {
	Name       string                `json:"name"                 yaml:"name"`
	Kind       node.Kind             `json:"kind"                 yaml:"kind"`
	Sockets    []device.CameraSocket `json:"sockets,omitempty"    yaml:"sockets,omitempty"`
	HardwareID device.NodeID         `json:"hw_id"                yaml:"hw_id"`
	Properties map[string]any        `json:"properties,omitempty" yaml:"properties,omitempty"`
	Inputs     []node.Port           `json:"inputs,omitempty"     yaml:"inputs,omitempty"`
	Outputs    []node.Port           `json:"outputs"              yaml:"outputs"`
}

// Summary describes the graph in node order
func (g *Graph) Summary() Summary {
	s := Summary{
		ID:      g.ID.String(),
		Variant: g.Variant,
		NNType:  g.NNType,
		Links:   g.Links,
		Nodes:   make([]NodeSummary, 0, len(g.Nodes)),
	}
	if g.Flow != nil {
		s.Status = g.Flow.ValidationStatus
		s.Orphaned = g.Flow.OrphanedPorts
	}
	if g.pl != nil {
		s.Connections = g.pl.Connections()
	}

	for _, n := range g.Nodes {
		meta := n.Meta()
		ns := NodeSummary{
			Name:       meta.Name,
			Kind:       meta.Kind,
			Sockets:    meta.Sockets,
			HardwareID: n.HardwareID(),
			Inputs:     n.InputPorts(),
			Outputs:    n.OutputPorts(),
		}
		if g.pl != nil {
			if hw, ok := g.pl.Node(n.HardwareID()); ok {
				ns.Properties = hw.Properties
			}
		}
		s.Nodes = append(s.Nodes, ns)
	}
	return s
}
