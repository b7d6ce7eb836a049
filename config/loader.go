package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/contoroinc/depthai-ros/device"
	"github.com/contoroinc/depthai-ros/errors"
)

// DefaultEnvPrefix is the prefix for environment overrides
const DefaultEnvPrefix = "DEPTHAI"

//go:embed schema.json
var schemaJSON []byte

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
})

// Loader handles configuration loading with layers and overrides
type Loader struct {
	layers     []string
	validation bool
	envPrefix  string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		layers:     []string{},
		validation: false,
		envPrefix:  DefaultEnvPrefix,
	}
}

// AddLayer adds a configuration file layer. Later layers override earlier ones.
func (l *Loader) AddLayer(path string) {
	l.layers = append(l.layers, path)
}

// EnableValidation enables or disables semantic validation after loading
func (l *Loader) EnableValidation(enable bool) {
	l.validation = enable
}

// SetEnvPrefix changes the environment override prefix
func (l *Loader) SetEnvPrefix(prefix string) {
	l.envPrefix = prefix
}

// LoadFile loads configuration from a single file
func (l *Loader) LoadFile(path string) (*Config, error) {
	l.layers = []string{path}
	return l.Load()
}

// Load merges the defaults, every layer and the environment into one Config.
// The merged document is checked against the embedded schema before decoding.
func (l *Loader) Load() (*Config, error) {
	merged, err := toMap(Defaults())
	if err != nil {
		return nil, errors.WrapFatal(err, "Loader", "Load", "defaults encoding")
	}

	for _, path := range l.layers {
		raw, err := l.loadRaw(path)
		if err != nil {
			return nil, errors.WrapInvalid(err, "Loader", "Load", fmt.Sprintf("layer %s", path))
		}
		merged = deepMergeMaps(merged, raw)
	}

	if err := validateSchema(merged); err != nil {
		return nil, err
	}

	var cfg Config
	if err := fromMap(merged, &cfg); err != nil {
		return nil, errors.WrapInvalid(err, "Loader", "Load", "config decoding")
	}

	if err := l.applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}

	if l.validation {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

// Defaults returns the built-in configuration: an RGBD build without a
// network against a three-camera device.
func Defaults() *Config {
	features := device.OAKDProfile()
	cfgFeatures := make([]FeatureConfig, 0, len(features))
	for _, f := range features {
		types := make([]string, 0, len(f.SupportedTypes))
		for _, t := range f.SupportedTypes {
			types = append(types, string(t))
		}
		cfgFeatures = append(cfgFeatures, FeatureConfig{
			Socket: f.Socket.String(),
			Sensor: f.SensorName,
			Width:  f.Width,
			Height: f.Height,
			Types:  types,
		})
	}

	return &Config{
		Version: "1.0.0",
		Camera: CameraConfig{
			PipelineType: "RGBD",
			NNType:       "none",
		},
		Device: DeviceConfig{
			Name:     "oak-d",
			Features: cfgFeatures,
		},
	}
}

// loadRaw reads a JSON or YAML layer into a generic map
func (l *Loader) loadRaw(path string) (map[string]any, error) {
	data, err := readLayer(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		raw, err = decodeYAMLLayer(data)
		if err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		if err := checkJSONDepth(data); err != nil {
			return nil, fmt.Errorf("invalid JSON structure: %w", err)
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	}

	return raw, nil
}

// deepMergeMaps recursively merges two maps, with override taking precedence.
// Lists are replaced, never concatenated.
func deepMergeMaps(base, override map[string]any) map[string]any {
	result := make(map[string]any, len(base))
	for k, v := range base {
		result[k] = v
	}

	for k, v := range override {
		if v == nil {
			continue
		}

		if baseMap, ok := base[k].(map[string]any); ok {
			if overrideMap, ok := v.(map[string]any); ok {
				result[k] = deepMergeMaps(baseMap, overrideMap)
				continue
			}
		}

		result[k] = v
	}

	return result
}

func validateSchema(doc map[string]any) error {
	schema, err := compiledSchema()
	if err != nil {
		return errors.WrapFatal(err, "Loader", "validateSchema", "schema compilation")
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return errors.WrapInvalid(err, "Loader", "validateSchema", "document encoding")
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return errors.WrapInvalid(err, "Loader", "validateSchema", "schema validation")
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return errors.WrapInvalid(
			fmt.Errorf("%w: %s", errors.ErrSchemaViolation, strings.Join(msgs, "; ")),
			"Loader", "validateSchema", "schema validation")
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides
func (l *Loader) applyEnvOverrides(cfg *Config) error {
	overrides := []struct {
		suffix string
		target *string
	}{
		{"_PIPELINE_TYPE", &cfg.Camera.PipelineType},
		{"_NN_TYPE", &cfg.Camera.NNType},
		{"_DEVICE_NAME", &cfg.Device.Name},
	}

	for _, o := range overrides {
		key := l.envPrefix + o.suffix
		val := os.Getenv(key)
		if val == "" {
			continue
		}
		if err := checkEnvValue(key, val); err != nil {
			return errors.WrapInvalid(err, "Loader", "applyEnvOverrides", "environment check")
		}
		*o.target = val
	}

	return nil
}

func toMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func fromMap(m map[string]any, v any) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// SaveToFile writes the configuration as JSON or YAML depending on the extension
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return errors.WrapInvalid(err, "Config", "SaveToFile", "encoding")
	}

	return writeLayer(path, data)
}
