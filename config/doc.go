// Package config loads the pipeline builder configuration.
//
// A configuration selects the topology variant and NN type, carries per-node
// parameters, and describes the device profile used for offline builds.
//
// # Layers
//
// Loader starts from Defaults and merges each layer in order. Layers are JSON
// (.json) or YAML (.yaml, .yml) files. Maps merge recursively and lists are
// replaced:
//
//	loader := config.NewLoader()
//	loader.AddLayer("configs/base.yaml")
//	loader.AddLayer("configs/rae.json")
//	loader.EnableValidation(true)
//	cfg, err := loader.Load()
//
// # Validation
//
// The merged document is checked against an embedded JSON schema first, so
// unknown keys and wrong types fail with errors.ErrSchemaViolation. Config.Validate
// then checks what the schema cannot: the NN type resolves, sockets parse, and
// no socket is listed twice.
//
// # Environment Overrides
//
// After merging, these variables override the file values:
//
//	DEPTHAI_PIPELINE_TYPE   camera.pipeline_type
//	DEPTHAI_NN_TYPE         camera.nn_type
//	DEPTHAI_DEVICE_NAME     device.name
//
// # Node Parameters
//
// Nodes are keyed by node name. Unset values take the defaults: fps 30,
// preview 416x416, confidence 0.5, lr_check enabled.
//
//	nodes:
//	  rgb:
//	    fps: 15
//	  nn:
//	    model_path: /models/yolo.blob
package config
