package node

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/contoroinc/depthai-ros/device"
	"github.com/contoroinc/depthai-ros/errors"
)

// base carries the state every node kind shares: its ports, its hardware
// record and the links it has emitted.
type base struct {
	meta    Metadata
	inputs  []Port
	outputs []Port
	pl      *device.Pipeline
	hwID    device.NodeID
	links   []LinkDirective
	closed  bool
	logger  *slog.Logger
}

func newBase(meta Metadata, pl *device.Pipeline, props map[string]any,
	inputs, outputs []Port, logger *slog.Logger) (*base, error) {
	if pl == nil {
		return nil, errors.WrapFatal(
			fmt.Errorf("%w: nil pipeline", errors.ErrMissingConfig),
			componentName(meta.Kind), "New", "pipeline check")
	}

	id, err := pl.CreateNode(string(meta.Kind), meta.Name, props)
	if err != nil {
		return nil, err
	}

	logger.Debug("Created node", "kind", meta.Kind, "hw_id", id)

	return &base{
		meta:    meta,
		inputs:  inputs,
		outputs: outputs,
		pl:      pl,
		hwID:    id,
		logger:  logger,
	}, nil
}

// Meta returns the node identity
func (b *base) Meta() Metadata {
	m := b.meta
	m.Sockets = slices.Clone(b.meta.Sockets)
	return m
}

// InputPorts returns the input ports in index order
func (b *base) InputPorts() []Port {
	return slices.Clone(b.inputs)
}

// OutputPorts returns the output ports in index order
func (b *base) OutputPorts() []Port {
	return slices.Clone(b.outputs)
}

// HardwareID returns the id of the node's record in the hardware pipeline
func (b *base) HardwareID() device.NodeID {
	return b.hwID
}

// Links returns the directives this node emitted
func (b *base) Links() []LinkDirective {
	return slices.Clone(b.links)
}

// Input returns a handle to the input port at index
func (b *base) Input(index int) (Input, error) {
	if b.closed {
		return Input{}, errors.WrapInvalid(
			fmt.Errorf("%w: %s", errors.ErrNodeClosed, b.meta.Name),
			b.component(), "Input", "state check")
	}
	if index < 0 || index >= len(b.inputs) {
		return Input{}, errors.WrapInvalid(
			fmt.Errorf("%w: %s has no input %d", errors.ErrPortNotFound, b.meta.Name, index),
			b.component(), "Input", "input lookup")
	}
	return Input{Port: b.inputs[index], owner: b}, nil
}

// Link validates and applies a connection from output outputIndex to target
func (b *base) Link(target Input, outputIndex int) error {
	if b.closed {
		return errors.WrapInvalid(
			fmt.Errorf("%w: %s", errors.ErrNodeClosed, b.meta.Name),
			b.component(), "Link", "state check")
	}
	if outputIndex < 0 || outputIndex >= len(b.outputs) {
		return errors.WrapInvalid(
			fmt.Errorf("%w: %s has no output %d", errors.ErrPortNotFound, b.meta.Name, outputIndex),
			b.component(), "Link", "output lookup")
	}
	if target.owner == nil {
		return errors.WrapInvalid(
			fmt.Errorf("%w: empty input handle", errors.ErrPortNotFound),
			b.component(), "Link", "target lookup")
	}

	dst := target.owner
	if dst.closed {
		return errors.WrapInvalid(
			fmt.Errorf("%w: %s", errors.ErrNodeClosed, dst.meta.Name),
			b.component(), "Link", "target state check")
	}
	if dst.pl != b.pl || !b.pl.Owns(dst.hwID) {
		return errors.WrapInvalid(
			fmt.Errorf("%w: %s", errors.ErrForeignNode, dst.meta.Name),
			b.component(), "Link", "ownership check")
	}

	out := b.outputs[outputIndex]
	if !target.Port.AcceptsRole(out.Role) {
		return errors.WrapInvalid(
			fmt.Errorf("%w: %s.%s carries %s, %s.%s accepts %v", errors.ErrPortRoleMismatch,
				b.meta.Name, out.Name, out.Role, dst.meta.Name, target.Port.Name, target.Port.Accepts),
			b.component(), "Link", "role check")
	}

	if err := b.pl.Connect(b.hwID, out.Name, dst.hwID, target.Port.Name); err != nil {
		return errors.Wrap(err, b.component(), "Link", "hardware connect")
	}

	directive := LinkDirective{
		Source:         b.meta.Name,
		SourcePort:     out.Index,
		SourcePortName: out.Name,
		Target:         dst.meta.Name,
		TargetPort:     target.Port.Index,
		TargetPortName: target.Port.Name,
	}
	b.links = append(b.links, directive)
	b.logger.Debug("Linked node", "link", directive.String())
	return nil
}

// Close removes the hardware record and its connections
func (b *base) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	if err := b.pl.Remove(b.hwID); err != nil {
		return errors.Wrap(err, b.component(), "Close", "hardware release")
	}
	b.logger.Debug("Closed node")
	return nil
}

func (b *base) component() string {
	return componentName(b.meta.Kind)
}

func componentName(kind Kind) string {
	switch kind {
	case KindSensor:
		return "Sensor"
	case KindStereo:
		return "Stereo"
	case KindNN:
		return "NN"
	case KindSpatialNN:
		return "SpatialNN"
	default:
		return "Node"
	}
}
