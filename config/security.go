package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Limits for configuration layers. A layer describes one camera profile and a
// handful of node parameters, so anything near these bounds is not a config.
const (
	maxLayerSize     = 1 << 20
	maxDocumentDepth = 32
	maxYAMLAliases   = 16
	maxEnvValueLen   = 256
)

// checkLayerPath accepts JSON or YAML layers. Relative paths must stay below
// the working directory.
func checkLayerPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty config path")
	}
	if !filepath.IsAbs(path) && !filepath.IsLocal(path) {
		return fmt.Errorf("path traversal not allowed: %s resolves outside working directory", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return nil
	default:
		return fmt.Errorf("only JSON or YAML config files allowed: %s", path)
	}
}

// readLayer reads a layer file. Symlinks and special files are rejected so a
// layer always names the file that is actually read.
func readLayer(path string) ([]byte, error) {
	if err := checkLayerPath(path); err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}

	info, err := os.Lstat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot stat config file: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return nil, fmt.Errorf("config layer is a symlink: %s", path)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file: %s", path)
	}
	if info.Size() > maxLayerSize {
		return nil, fmt.Errorf("config file too large: %d bytes > %d", info.Size(), maxLayerSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}
	return data, nil
}

// writeLayer writes a layer owner-readable only
func writeLayer(path string, data []byte) error {
	if err := checkLayerPath(path); err != nil {
		return fmt.Errorf("invalid config path: %w", err)
	}
	if len(data) > maxLayerSize {
		return fmt.Errorf("config data too large: %d bytes > %d", len(data), maxLayerSize)
	}
	return os.WriteFile(path, data, 0600)
}

// checkEnvValue rejects override values that cannot be a pipeline or NN type name
func checkEnvValue(key, value string) error {
	if len(value) > maxEnvValueLen {
		return fmt.Errorf("environment variable %s too long: %d > %d", key, len(value), maxEnvValueLen)
	}
	if strings.ContainsFunc(value, unicode.IsControl) {
		return fmt.Errorf("control character in environment variable %s", key)
	}
	return nil
}

// checkJSONDepth walks the token stream and rejects documents nested deeper
// than maxDocumentDepth or left unclosed
func checkJSONDepth(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	depth := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("malformed JSON: %w", err)
		}

		delim, ok := tok.(json.Delim)
		if !ok {
			continue
		}
		switch delim {
		case '{', '[':
			depth++
			if depth > maxDocumentDepth {
				return fmt.Errorf("JSON nesting too deep: %d > %d", depth, maxDocumentDepth)
			}
		case '}', ']':
			depth--
		}
	}

	if depth != 0 {
		return fmt.Errorf("malformed JSON: unclosed brackets (depth=%d)", depth)
	}
	return nil
}

// decodeYAMLLayer decodes a YAML layer after bounding its nesting and alias
// use, so a small file cannot expand into a huge document.
func decodeYAMLLayer(data []byte) (map[string]any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return nil, nil
	}

	aliases := 0
	if err := checkYAMLNode(&doc, 0, &aliases); err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := doc.Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func checkYAMLNode(n *yaml.Node, depth int, aliases *int) error {
	switch n.Kind {
	case yaml.AliasNode:
		*aliases++
		if *aliases > maxYAMLAliases {
			return fmt.Errorf("too many YAML aliases: more than %d", maxYAMLAliases)
		}
		return nil
	case yaml.MappingNode, yaml.SequenceNode:
		depth++
		if depth > maxDocumentDepth {
			return fmt.Errorf("YAML nesting too deep: %d > %d", depth, maxDocumentDepth)
		}
	}

	for _, child := range n.Content {
		if err := checkYAMLNode(child, depth, aliases); err != nil {
			return err
		}
	}
	return nil
}
