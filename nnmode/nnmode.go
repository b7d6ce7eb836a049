// Package nnmode resolves the free-form NN type parameter into the closed set of
// neural-network operating modes a topology variant understands.
package nnmode

import (
	"fmt"
	"sort"
	"strings"

	"github.com/contoroinc/depthai-ros/errors"
)

// Mode is the neural-network operating mode requested for a build.
type Mode int

const (
	// None builds no neural-network node.
	None Mode = iota
	// RGB attaches a detection network to a color stream.
	RGB
	// Spatial attaches a detection network to a color stream and a depth map.
	Spatial
)

// String returns the canonical lower-case parameter value for the mode
func (m Mode) String() string {
	switch m {
	case None:
		return "none"
	case RGB:
		return "rgb"
	case Spatial:
		return "spatial"
	default:
		return "unknown"
	}
}

// NeedsDepth reports whether the mode requires a depth input.
func (m Mode) NeedsDepth() bool {
	return m == Spatial
}

// table maps upper-cased parameter values to modes. The empty string is the
// parameter default and means no network.
var table = map[string]Mode{
	"":        None,
	"NONE":    None,
	"RGB":     RGB,
	"COLOR":   RGB,
	"SPATIAL": Spatial,
}

// Resolve maps a case-insensitive NN type string to a Mode.
// Unrecognized values are a configuration error; the builder never guesses.
func Resolve(raw string) (Mode, error) {
	key := strings.ToUpper(strings.TrimSpace(raw))
	mode, ok := table[key]
	if !ok {
		return None, errors.WrapInvalid(
			fmt.Errorf("%w: %q (valid: %s)", errors.ErrUnknownNNMode, raw, strings.Join(Names(), ", ")),
			"NNMode", "Resolve", "nn type lookup")
	}
	return mode, nil
}

// MustResolve is like Resolve but panics on unknown values.
func MustResolve(raw string) Mode {
	mode, err := Resolve(raw)
	if err != nil {
		panic(err)
	}
	return mode
}

// Names returns the recognized parameter values in lower case, sorted.
func Names() []string {
	names := make([]string, 0, len(table))
	for key := range table {
		if key == "" {
			continue
		}
		names = append(names, strings.ToLower(key))
	}
	sort.Strings(names)
	return names
}
