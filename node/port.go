package node

import (
	"slices"
)

// Direction for data flow
type Direction string

// Direction constants for port data flow
const (
	DirectionInput  Direction = "input"
	DirectionOutput Direction = "output"
)

// StreamRole is the semantic content of a stream. Links are only allowed
// between ports whose roles agree.
type StreamRole string

// Stream roles
const (
	RoleColor      StreamRole = "color"
	RoleMono       StreamRole = "mono"
	RoleDepth      StreamRole = "depth"
	RoleDetections StreamRole = "detections"
	RoleControl    StreamRole = "control"
)

// Port describes one indexed input or output of a node
type Port struct {
	Name        string       `json:"name"                yaml:"name"`
	Index       int          `json:"index"               yaml:"index"`
	Direction   Direction    `json:"direction"           yaml:"direction"`
	Role        StreamRole   `json:"role,omitempty"      yaml:"role,omitempty"`
	Accepts     []StreamRole `json:"accepts,omitempty"   yaml:"accepts,omitempty"`
	Required    bool         `json:"required"            yaml:"required"`
	Description string       `json:"description"         yaml:"description"`
}

// AcceptsRole reports whether an input port takes streams of the given role
func (p Port) AcceptsRole(role StreamRole) bool {
	return slices.Contains(p.Accepts, role)
}

// Input is a handle to one input port of a live node, as returned by Node.Input.
type Input struct {
	Port  Port
	owner *base
}

// NodeName returns the name of the node owning the port
func (in Input) NodeName() string {
	if in.owner == nil {
		return ""
	}
	return in.owner.meta.Name
}

func outputPort(name string, index int, role StreamRole, description string) Port {
	return Port{
		Name:        name,
		Index:       index,
		Direction:   DirectionOutput,
		Role:        role,
		Description: description,
	}
}

func inputPort(name string, index int, required bool, description string, accepts ...StreamRole) Port {
	return Port{
		Name:        name,
		Index:       index,
		Direction:   DirectionInput,
		Accepts:     accepts,
		Required:    required,
		Description: description,
	}
}
