package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/contoroinc/depthai-ros/device"
	"github.com/contoroinc/depthai-ros/errors"
	"github.com/contoroinc/depthai-ros/pipeline"
)

const raeConfig = `version: "1.0.0"
camera:
  pipeline_type: RGBD
  nn_type: none
nodes:
  nn:
    model_path: models/mobilenet.blob
    confidence: 0.6
device:
  name: rae
  features:
    - {socket: CAM_A, sensor: IMX214, width: 4208, height: 3120, types: [color]}
    - {socket: CAM_B, sensor: AR0234, width: 1920, height: 1200, types: [color]}
    - {socket: CAM_C, sensor: AR0234, width: 1920, height: 1200, types: [color]}
    - {socket: CAM_D, sensor: AR0234, width: 1920, height: 1200, types: [color]}
    - {socket: CAM_E, sensor: AR0234, width: 1920, height: 1200, types: [color]}
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), append([]string{"--log-level=error"}, args...), &stdout, &stderr)
	return stdout.String(), err
}

type renderedGraph struct {
	ID      string `json:"id"      yaml:"id"`
	Variant string `json:"variant" yaml:"variant"`
	NNType  string `json:"nn_type" yaml:"nn_type"`
	Nodes   []struct {
		Name       string         `json:"name"       yaml:"name"`
		Kind       string         `json:"kind"       yaml:"kind"`
		Properties map[string]any `json:"properties" yaml:"properties"`
	} `json:"nodes" yaml:"nodes"`
	Links []struct {
		Source string `json:"source" yaml:"source"`
		Target string `json:"target" yaml:"target"`
	} `json:"links" yaml:"links"`
}

func TestRun_Defaults(t *testing.T) {
	out, err := runCLI(t)
	require.NoError(t, err)

	var g renderedGraph
	require.NoError(t, json.Unmarshal([]byte(out), &g))
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, "RGBD", g.Variant)
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, "rgb", g.Nodes[0].Name)
	assert.Equal(t, "stereo", g.Nodes[1].Name)
	assert.Empty(t, g.Links)
}

func TestRun_ConfigWithOverrides(t *testing.T) {
	path := writeConfig(t, "rae.yaml", raeConfig)

	out, err := runCLI(t, "--config", path, "--pipeline", "rae", "--nn-type", "SPATIAL", "--output", "yaml")
	require.NoError(t, err)

	var g renderedGraph
	require.NoError(t, yaml.Unmarshal([]byte(out), &g))
	assert.Equal(t, "Rae", g.Variant)
	assert.Equal(t, "SPATIAL", g.NNType)
	require.Len(t, g.Nodes, 3)
	assert.Equal(t, "nn", g.Nodes[0].Name)
	assert.Equal(t, "spatial_nn", g.Nodes[0].Kind)
	assert.Equal(t, "models/mobilenet.blob", g.Nodes[0].Properties["model_path"])
	require.Len(t, g.Links, 2)
	for _, l := range g.Links {
		assert.Equal(t, "stereo_front", l.Source)
		assert.Equal(t, "nn", l.Target)
	}
}

func TestRun_YAMLOutputDecodesSockets(t *testing.T) {
	out, err := runCLI(t, "--output", "yaml")
	require.NoError(t, err)

	var summary pipeline.Summary
	require.NoError(t, yaml.Unmarshal([]byte(out), &summary))
	require.Len(t, summary.Nodes, 2)
	assert.Equal(t, []device.CameraSocket{device.CamA}, summary.Nodes[0].Sockets)
	assert.Equal(t, []device.CameraSocket{device.CamB, device.CamC}, summary.Nodes[1].Sockets)
}

func TestRun_DegradedBuildWarns(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(),
		[]string{"--log-level=warn", "--log-format=json", "--pipeline", "RGB", "--nn-type", "spatial"},
		&stdout, &stderr)
	require.NoError(t, err)

	assert.Contains(t, stderr.String(), "Pipeline built degraded")
	assert.Contains(t, stderr.String(), "nn type spatial not wired by RGB")
}

func TestRun_List(t *testing.T) {
	out, err := runCLI(t, "--list", "--output=yaml")
	require.NoError(t, err)

	var infos []struct {
		Name   string `yaml:"name"`
		UsesNN bool   `yaml:"uses_nn"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 7)
	assert.Equal(t, "CamArray", infos[0].Name)
	assert.False(t, infos[0].UsesNN)
}

func TestRun_Validate(t *testing.T) {
	path := writeConfig(t, "rae.yaml", raeConfig)
	out, err := runCLI(t, "-c", path, "--validate")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		code  int
		check func(t *testing.T, err error)
	}{
		{
			name: "unknown nn type",
			args: []string{"--nn-type", "foo"},
			code: exitUsage,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, errors.ErrUnknownNNMode)
			},
		},
		{
			name: "unknown pipeline type",
			args: []string{"--pipeline", "Thermal"},
			code: exitUsage,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, errors.ErrUnknownVariant)
			},
		},
		{
			name: "socket missing on device",
			args: []string{"--pipeline", "Rae"},
			code: exitFatal,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, errors.ErrSocketNotConnected)
				assert.True(t, errors.IsFatal(err))
			},
		},
		{
			name: "missing config file",
			args: []string{"--config", "/nonexistent/depthai.yaml"},
			code: exitUsage,
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "config file not found")
			},
		},
		{
			name: "bad output format",
			args: []string{"--output", "xml"},
			code: exitUsage,
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "invalid output format")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			require.Error(t, err)
			tt.check(t, err)
			assert.Equal(t, tt.code, exitCode(err))
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitUsage, exitCode(errors.WrapInvalid(errors.ErrUnknownVariant, "Registry", "Create", "lookup")))
	assert.Equal(t, exitTransient, exitCode(errors.WrapTransient(context.DeadlineExceeded, "Device", "Query", "read")))
	assert.Equal(t, exitFatal, exitCode(errors.WrapFatal(errors.ErrPipelineFull, "Build", "sensor", "create")))
	assert.Equal(t, exitFatal, exitCode(errors.ErrHardwareQuery), "fatal sentinel without a class")
}

func TestRun_Version(t *testing.T) {
	out, err := runCLI(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)
}

func TestRun_Help(t *testing.T) {
	out, err := runCLI(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "-nn-type")
	assert.Contains(t, out, "Examples:")
}

func TestValidateFlags(t *testing.T) {
	valid := func() *CLIConfig {
		return &CLIConfig{
			LogLevel:        "info",
			LogFormat:       "text",
			Output:          "json",
			ShutdownTimeout: time.Second,
		}
	}

	require.NoError(t, validateFlags(valid()))

	tests := []struct {
		name   string
		mutate func(c *CLIConfig)
	}{
		{"log level", func(c *CLIConfig) { c.LogLevel = "trace" }},
		{"log format", func(c *CLIConfig) { c.LogFormat = "xml" }},
		{"output", func(c *CLIConfig) { c.Output = "toml" }},
		{"timeout", func(c *CLIConfig) { c.ShutdownTimeout = 0 }},
		{"config path", func(c *CLIConfig) { c.ConfigPath = "/nonexistent.json" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, validateFlags(c))
		})
	}
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(&buf, "warn", "json")

	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))

	logger.Warn("test message", "variant", "RGB")
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "test message", record["msg"])
	assert.Equal(t, appName, record["service"])
	assert.Equal(t, "RGB", record["variant"])
}
