package node

import (
	"github.com/contoroinc/depthai-ros/device"
)

// NN input ports
const (
	NNInput = 0
)

// Spatial NN input ports
const (
	SpatialNNInput = iota
	SpatialNNInputDepth
)

// NN output ports, shared by both network kinds
const (
	NNDetections = iota
	NNPassthrough
	SpatialNNPassthroughDepth
)

// NN runs a detection network on a color or mono stream
type NN struct {
	*base
}

// SpatialNN runs a detection network and projects detections into 3-D using a depth map
type SpatialNN struct {
	*base
}

// NewNN creates a detection network node
func NewNN(name string, host *Host, pl *device.Pipeline) (*NN, error) {
	inputs := []Port{
		inputPort("input", NNInput, true, "Frames to run inference on", RoleColor, RoleMono),
	}
	outputs := []Port{
		outputPort("detections", NNDetections, RoleDetections, "Decoded detections"),
		outputPort("passthrough", NNPassthrough, RoleColor, "Frames the detections refer to"),
	}

	b, err := newBase(Metadata{Name: name, Kind: KindNN}, pl, nnProps(host, name),
		inputs, outputs, host.GetLoggerWithNode(name))
	if err != nil {
		return nil, err
	}
	return &NN{base: b}, nil
}

// NewSpatialNN creates a spatial detection network node. Its depth input is
// optional; without it detections carry no 3-D position.
func NewSpatialNN(name string, host *Host, pl *device.Pipeline) (*SpatialNN, error) {
	inputs := []Port{
		inputPort("input", SpatialNNInput, true, "Frames to run inference on", RoleColor, RoleMono),
		inputPort("input_depth", SpatialNNInputDepth, false, "Depth map aligned to the input frames", RoleDepth),
	}
	outputs := []Port{
		outputPort("detections", NNDetections, RoleDetections, "Decoded detections with spatial coordinates"),
		outputPort("passthrough", NNPassthrough, RoleColor, "Frames the detections refer to"),
		outputPort("passthrough_depth", SpatialNNPassthroughDepth, RoleDepth, "Depth frames the detections refer to"),
	}

	b, err := newBase(Metadata{Name: name, Kind: KindSpatialNN}, pl, nnProps(host, name),
		inputs, outputs, host.GetLoggerWithNode(name))
	if err != nil {
		return nil, err
	}
	return &SpatialNN{base: b}, nil
}

func nnProps(host *Host, name string) map[string]any {
	params := host.NodeParams(name)
	return map[string]any{
		"model_path": params.ModelPath,
		"confidence": params.Confidence,
	}
}
