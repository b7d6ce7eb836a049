package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/contoroinc/depthai-ros/device"
	"github.com/contoroinc/depthai-ros/errors"
	"github.com/contoroinc/depthai-ros/nnmode"
)

// Node parameter defaults
const (
	DefaultFPS           = 30.0
	DefaultPreviewWidth  = 416
	DefaultPreviewHeight = 416
	DefaultConfidence    = 0.5
)

// Config represents the complete builder configuration
type Config struct {
	Version string                `json:"version"         yaml:"version"`
	Camera  CameraConfig          `json:"camera"          yaml:"camera"`
	Nodes   map[string]NodeConfig `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	Device  DeviceConfig          `json:"device"          yaml:"device"`
}

// CameraConfig selects the topology and the NN operating mode
type CameraConfig struct {
	PipelineType string `json:"pipeline_type" yaml:"pipeline_type"`
	NNType       string `json:"nn_type"       yaml:"nn_type"`
}

// NodeConfig holds per-node parameters keyed by node name ("rgb", "stereo", "nn", ...).
// Zero values mean "use the default".
type NodeConfig struct {
	FPS           float64 `json:"fps,omitempty"            yaml:"fps,omitempty"`
	PreviewWidth  int     `json:"preview_width,omitempty"  yaml:"preview_width,omitempty"`
	PreviewHeight int     `json:"preview_height,omitempty" yaml:"preview_height,omitempty"`
	Subpixel      bool    `json:"subpixel,omitempty"       yaml:"subpixel,omitempty"`
	LRCheck       *bool   `json:"lr_check,omitempty"       yaml:"lr_check,omitempty"`
	AlignSocket   string  `json:"align_socket,omitempty"   yaml:"align_socket,omitempty"`
	ModelPath     string  `json:"model_path,omitempty"     yaml:"model_path,omitempty"`
	Confidence    float64 `json:"confidence,omitempty"     yaml:"confidence,omitempty"`
}

// DefaultQueryAttempts is how often a feature query is tried before giving up
const DefaultQueryAttempts = 3

// DeviceConfig describes the hardware profile used for offline builds
type DeviceConfig struct {
	Name          string          `json:"name"                     yaml:"name"`
	Features      []FeatureConfig `json:"features,omitempty"       yaml:"features,omitempty"`
	QueryAttempts int             `json:"query_attempts,omitempty" yaml:"query_attempts,omitempty"`
}

// Attempts returns the configured query attempts, or the default when unset
func (d DeviceConfig) Attempts() int {
	if d.QueryAttempts <= 0 {
		return DefaultQueryAttempts
	}
	return d.QueryAttempts
}

// FeatureConfig describes one connected camera
type FeatureConfig struct {
	Socket string   `json:"socket"           yaml:"socket"`
	Sensor string   `json:"sensor,omitempty" yaml:"sensor,omitempty"`
	Width  int      `json:"width,omitempty"  yaml:"width,omitempty"`
	Height int      `json:"height,omitempty" yaml:"height,omitempty"`
	Types  []string `json:"types,omitempty"  yaml:"types,omitempty"`
}

// WithDefaults returns a copy with unset parameters filled in
func (n NodeConfig) WithDefaults() NodeConfig {
	if n.FPS == 0 {
		n.FPS = DefaultFPS
	}
	if n.PreviewWidth == 0 {
		n.PreviewWidth = DefaultPreviewWidth
	}
	if n.PreviewHeight == 0 {
		n.PreviewHeight = DefaultPreviewHeight
	}
	if n.Confidence == 0 {
		n.Confidence = DefaultConfidence
	}
	if n.LRCheck == nil {
		enabled := true
		n.LRCheck = &enabled
	}
	return n
}

// LRCheckEnabled reports the left-right consistency check setting, default on
func (n NodeConfig) LRCheckEnabled() bool {
	return n.LRCheck == nil || *n.LRCheck
}

func (n NodeConfig) validate(name string) error {
	if n.FPS < 0 {
		return fmt.Errorf("%w: nodes.%s.fps must be non-negative", errors.ErrInvalidConfig, name)
	}
	if n.PreviewWidth < 0 || n.PreviewHeight < 0 {
		return fmt.Errorf("%w: nodes.%s preview size must be non-negative", errors.ErrInvalidConfig, name)
	}
	if n.Confidence < 0 || n.Confidence > 1 {
		return fmt.Errorf("%w: nodes.%s.confidence must be within [0, 1]", errors.ErrInvalidConfig, name)
	}
	if n.AlignSocket != "" {
		if _, err := device.ParseSocket(n.AlignSocket); err != nil {
			return fmt.Errorf("nodes.%s.align_socket: %w", name, err)
		}
	}
	return nil
}

// Validate checks the configuration semantics the schema cannot express
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Camera.PipelineType) == "" {
		return errors.WrapInvalid(
			fmt.Errorf("%w: camera.pipeline_type", errors.ErrMissingConfig),
			"Config", "Validate", "pipeline type check")
	}

	if _, err := nnmode.Resolve(c.Camera.NNType); err != nil {
		return errors.WrapInvalid(err, "Config", "Validate", "nn type check")
	}

	for name, node := range c.Nodes {
		if name == "" {
			return errors.WrapInvalid(
				fmt.Errorf("%w: node name cannot be empty", errors.ErrInvalidConfig),
				"Config", "Validate", "node check")
		}
		if err := node.validate(name); err != nil {
			return errors.WrapInvalid(err, "Config", "Validate", "node check")
		}
	}

	if c.Device.QueryAttempts < 0 {
		return errors.WrapInvalid(
			fmt.Errorf("%w: device.query_attempts must be non-negative", errors.ErrInvalidConfig),
			"Config", "Validate", "device check")
	}

	if _, err := c.Device.Profile(); err != nil {
		return errors.WrapInvalid(err, "Config", "Validate", "device profile check")
	}

	return nil
}

// Node returns the parameters for a node name with defaults applied
func (c *Config) Node(name string) NodeConfig {
	return c.Nodes[name].WithDefaults()
}

// Profile converts the configured features into a hardware profile, in order
func (d DeviceConfig) Profile() ([]device.CameraFeature, error) {
	seen := make(map[device.CameraSocket]bool, len(d.Features))
	features := make([]device.CameraFeature, 0, len(d.Features))

	for i, f := range d.Features {
		socket, err := device.ParseSocket(f.Socket)
		if err != nil {
			return nil, fmt.Errorf("device.features[%d]: %w", i, err)
		}
		if seen[socket] {
			return nil, fmt.Errorf("%w: device.features[%d]: socket %s listed twice",
				errors.ErrInvalidConfig, i, socket)
		}
		seen[socket] = true

		if f.Width < 0 || f.Height < 0 {
			return nil, fmt.Errorf("%w: device.features[%d]: resolution must be non-negative",
				errors.ErrInvalidConfig, i)
		}

		types := make([]device.SensorType, 0, len(f.Types))
		for _, t := range f.Types {
			types = append(types, device.SensorType(strings.ToLower(t)))
		}

		features = append(features, device.CameraFeature{
			Socket:         socket,
			SensorName:     f.Sensor,
			Width:          f.Width,
			Height:         f.Height,
			SupportedTypes: types,
		})
	}

	return features, nil
}

// String returns a JSON representation of the config
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
