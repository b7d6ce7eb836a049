// Package pipelineregistry registers the built-in topology variants.
package pipelineregistry

import (
	"errors"

	pkgerrors "github.com/contoroinc/depthai-ros/errors"
	"github.com/contoroinc/depthai-ros/pipeline"
)

// Builtin returns the registrations of every built-in variant
func Builtin() []pipeline.RegistrationConfig {
	return []pipeline.RegistrationConfig{
		{
			Name:        "RGB",
			Factory:     pipeline.NewRGB,
			Description: "Single color camera with an optional detection network on its preview",
			UsesNN:      true,
		},
		{
			Name:        "RGBD",
			Factory:     pipeline.NewRGBD,
			Description: "Color camera and stereo depth; spatial networks use both",
			UsesNN:      true,
		},
		{
			Name:        "RGBStereo",
			Factory:     pipeline.NewRGBStereo,
			Description: "Color camera and the raw stereo pair without depth",
			UsesNN:      true,
		},
		{
			Name:        "Stereo",
			Factory:     pipeline.NewStereo,
			Description: "The two mono stereo-source cameras",
		},
		{
			Name:        "Depth",
			Factory:     pipeline.NewDepth,
			Description: "Stereo depth from the default camera pair",
		},
		{
			Name:        "CamArray",
			Factory:     pipeline.NewCamArray,
			Description: "One camera node per connected sensor, in device order",
		},
		{
			Name:        "Rae",
			Factory:     pipeline.NewRae,
			Description: "Front and back stereo pairs with a spatial network on the front pair",
			UsesNN:      true,
		},
	}
}

// Register registers all built-in variants with the provided registry:
//
//   - RGB, RGBD, RGBStereo (color camera layouts)
//   - Stereo, Depth (stereo pair layouts)
//   - CamArray (one node per connected camera)
//   - Rae (dual stereo robot layout)
func Register(registry *pipeline.Registry) error {
	// Nil registry is a programming error (fatal), not invalid input
	if registry == nil {
		return pkgerrors.WrapFatal(
			errors.New("registry cannot be nil"),
			"PipelineRegistry", "Register", "registry validation")
	}

	for _, reg := range Builtin() {
		if err := registry.RegisterWithConfig(reg); err != nil {
			return pkgerrors.WrapInvalid(err, "PipelineRegistry", "Register", reg.Name+" variant registration")
		}
	}

	return nil
}
