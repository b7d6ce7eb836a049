package pipeline

import (
	"context"
	"fmt"
	"slices"

	"github.com/contoroinc/depthai-ros/device"
	"github.com/contoroinc/depthai-ros/errors"
	"github.com/contoroinc/depthai-ros/nnmode"
	"github.com/contoroinc/depthai-ros/node"
)

// WarnUnsupportedNN is the metrics reason for a requested network a variant cannot wire
const WarnUnsupportedNN = "unsupported_nn_type"

// build tracks the nodes one CreatePipeline call constructs so a failure can
// release them.
type build struct {
	variant string
	host    *node.Host
	pl      *device.Pipeline
	dev     device.Device
	created []node.Node
}

func newBuild(variant string, host *node.Host, dev device.Device, pl *device.Pipeline) *build {
	if dev != nil {
		// Every node of one build sees the same hardware answer.
		dev = device.NewSnapshot(dev)
	}
	return &build{
		variant: variant,
		host:    host,
		pl:      pl,
		dev:     dev,
	}
}

// resolveMode resolves the NN type before any node exists
func resolveMode(variant, nnType string) (nnmode.Mode, error) {
	mode, err := nnmode.Resolve(nnType)
	if err != nil {
		return nnmode.None, errors.Wrap(err, variant, "CreatePipeline", "nn type resolution")
	}
	return mode, nil
}

func (b *build) track(n node.Node) {
	b.created = append(b.created, n)
}

func (b *build) sensor(ctx context.Context, name string, socket device.CameraSocket) (*node.Sensor, error) {
	s, err := node.NewSensor(ctx, name, b.host, b.pl, b.dev, socket)
	if err != nil {
		return nil, err
	}
	b.track(s)
	return s, nil
}

func (b *build) stereo(ctx context.Context, name string, left, right device.CameraSocket) (*node.Stereo, error) {
	s, err := node.NewStereo(ctx, name, b.host, b.pl, b.dev, left, right)
	if err != nil {
		return nil, err
	}
	b.track(s)
	return s, nil
}

// attachNN creates a detection network fed by source's output at sourcePort
func (b *build) attachNN(source node.Node, sourcePort int) (node.Node, error) {
	nn, err := node.NewNN(NameNN, b.host, b.pl)
	if err != nil {
		return nil, err
	}
	b.track(nn)

	if err := link(source, sourcePort, nn, node.NNInput); err != nil {
		return nil, err
	}
	return nn, nil
}

// attachSpatialNN creates a spatial detection network fed by source's output at
// sourcePort. When depth is not nil its depth output feeds the network's depth input.
func (b *build) attachSpatialNN(source node.Node, sourcePort int, depth node.Node) (node.Node, error) {
	nn, err := node.NewSpatialNN(NameNN, b.host, b.pl)
	if err != nil {
		return nil, err
	}
	b.track(nn)

	if err := link(source, sourcePort, nn, node.SpatialNNInput); err != nil {
		return nil, err
	}
	if depth != nil {
		if err := link(depth, node.StereoDepth, nn, node.SpatialNNInputDepth); err != nil {
			return nil, err
		}
	}
	return nn, nil
}

// warnUnsupported reports a requested network the topology has no source for
func (b *build) warnUnsupported(mode nnmode.Mode) {
	b.host.GetLogger().Warn("NN type not supported by pipeline type, building without NN",
		"variant", b.variant,
		"nn_type", mode.String(),
		"hint", fmt.Sprintf("set nn_type to %q", nnmode.RGB.String()),
		"error", errors.ErrUnsupportedCombination)
	b.host.CoreMetrics().RecordWarning(b.variant, WarnUnsupportedNN)
}

// result orders the output: the network first when present, then nodes as given
func (b *build) result(nn node.Node, nodes ...node.Node) []node.Node {
	out := make([]node.Node, 0, len(nodes)+1)
	if nn != nil {
		out = append(out, nn)
	}
	return append(out, nodes...)
}

// fail releases everything the build created and returns err with any close failures
func (b *build) fail(err error) error {
	return errors.Join(err, releaseAll(b.created)...)
}

// releaseAll closes nodes in reverse order and collects the failures
func releaseAll(nodes []node.Node) []error {
	var errs []error
	for _, n := range slices.Backward(nodes) {
		if err := n.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func link(source node.Node, sourcePort int, target node.Node, targetPort int) error {
	in, err := target.Input(targetPort)
	if err != nil {
		return err
	}
	return source.Link(in, sourcePort)
}
