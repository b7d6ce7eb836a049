package device

import (
	"fmt"
	"maps"
	"slices"

	"github.com/contoroinc/depthai-ros/errors"
)

// NodeID identifies a hardware node inside one Pipeline.
type NodeID int

// HWNode is the hardware-side record of an allocated processing node
type HWNode struct {
	ID         NodeID         `json:"id"         yaml:"id"`
	Kind       string         `json:"kind"       yaml:"kind"`
	Name       string         `json:"name"       yaml:"name"`
	Properties map[string]any `json:"properties" yaml:"properties"`
}

// Connection is a hardware stream between an output of one node and an input of another
type Connection struct {
	From       NodeID `json:"from"        yaml:"from"`
	FromOutput string `json:"from_output" yaml:"from_output"`
	To         NodeID `json:"to"          yaml:"to"`
	ToInput    string `json:"to_input"    yaml:"to_input"`
}

// Pipeline is the hardware pipeline handle nodes are allocated in.
//
// A Pipeline is built by a single goroutine during device initialization and
// carries no locks.
type Pipeline struct {
	nodes       map[NodeID]*HWNode
	connections []Connection
	nextID      NodeID
	capacity    int
}

// PipelineOption configures a Pipeline
type PipelineOption func(*Pipeline)

// WithCapacity limits the number of nodes the pipeline accepts. Zero means unlimited.
func WithCapacity(n int) PipelineOption {
	return func(p *Pipeline) {
		p.capacity = n
	}
}

// NewPipeline creates an empty hardware pipeline
func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		nodes: make(map[NodeID]*HWNode),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CreateNode allocates a hardware node record
func (p *Pipeline) CreateNode(kind, name string, props map[string]any) (NodeID, error) {
	if p.capacity > 0 && len(p.nodes) >= p.capacity {
		return 0, errors.WrapFatal(
			fmt.Errorf("%w: %d nodes", errors.ErrPipelineFull, p.capacity),
			"Pipeline", "CreateNode", fmt.Sprintf("allocate %s %q", kind, name))
	}

	id := p.nextID
	p.nextID++
	p.nodes[id] = &HWNode{
		ID:         id,
		Kind:       kind,
		Name:       name,
		Properties: maps.Clone(props),
	}
	return id, nil
}

// Owns reports whether id was allocated by this pipeline and not yet removed
func (p *Pipeline) Owns(id NodeID) bool {
	_, ok := p.nodes[id]
	return ok
}

// Connect records a stream between two nodes of this pipeline
func (p *Pipeline) Connect(from NodeID, fromOutput string, to NodeID, toInput string) error {
	if !p.Owns(from) {
		return errors.WrapInvalid(
			fmt.Errorf("%w: source id %d", errors.ErrNodeNotFound, from),
			"Pipeline", "Connect", "source lookup")
	}
	if !p.Owns(to) {
		return errors.WrapInvalid(
			fmt.Errorf("%w: target id %d", errors.ErrNodeNotFound, to),
			"Pipeline", "Connect", "target lookup")
	}

	p.connections = append(p.connections, Connection{
		From:       from,
		FromOutput: fromOutput,
		To:         to,
		ToInput:    toInput,
	})
	return nil
}

// Remove releases a node and every connection touching it
func (p *Pipeline) Remove(id NodeID) error {
	if !p.Owns(id) {
		return errors.WrapInvalid(
			fmt.Errorf("%w: id %d", errors.ErrNodeNotFound, id),
			"Pipeline", "Remove", "node lookup")
	}

	delete(p.nodes, id)
	p.connections = slices.DeleteFunc(p.connections, func(c Connection) bool {
		return c.From == id || c.To == id
	})
	return nil
}

// Node returns a copy of the hardware record for id
func (p *Pipeline) Node(id NodeID) (HWNode, bool) {
	n, ok := p.nodes[id]
	if !ok {
		return HWNode{}, false
	}
	out := *n
	out.Properties = maps.Clone(n.Properties)
	return out, true
}

// Nodes returns copies of all hardware records ordered by allocation
func (p *Pipeline) Nodes() []HWNode {
	ids := slices.Sorted(maps.Keys(p.nodes))
	result := make([]HWNode, 0, len(ids))
	for _, id := range ids {
		n, _ := p.Node(id)
		result = append(result, n)
	}
	return result
}

// Connections returns a copy of the recorded connections in creation order
func (p *Pipeline) Connections() []Connection {
	return slices.Clone(p.connections)
}

// Len returns the number of allocated nodes
func (p *Pipeline) Len() int {
	return len(p.nodes)
}
