// Package node defines the processing nodes a topology is built from and the
// contract the builder relies on: indexed ports with stream roles, and links
// that are validated before they reach the hardware pipeline.
package node

import (
	"github.com/contoroinc/depthai-ros/device"
)

// Kind identifies a concrete node type
type Kind string

// Node kinds
const (
	KindSensor    Kind = "sensor"
	KindStereo    Kind = "stereo"
	KindNN        Kind = "nn"
	KindSpatialNN Kind = "spatial_nn"
)

// Metadata identifies a node
type Metadata struct {
	Name    string                `json:"name"              yaml:"name"`
	Kind    Kind                  `json:"kind"              yaml:"kind"`
	Sockets []device.CameraSocket `json:"sockets,omitempty" yaml:"sockets,omitempty"`
}

// Node is a processing node bound to one record in a device.Pipeline.
type Node interface {
	Meta() Metadata
	InputPorts() []Port
	OutputPorts() []Port

	// Input returns a handle to the input port at index.
	Input(index int) (Input, error)

	// Link connects this node's output at outputIndex to target. The link is
	// validated and applied to the hardware pipeline immediately.
	Link(target Input, outputIndex int) error

	// Links returns the directives this node emitted, in order.
	Links() []LinkDirective

	HardwareID() device.NodeID

	// Close releases the hardware record. Calling Close again is a no-op.
	Close() error
}
