// Package errors provides standardized error handling for pipeline assembly.
//
// # Overview
//
// The package implements a three-class error classification: Transient (temporary),
// Invalid (bad input or configuration, do not retry), and Fatal (abort the build and
// release everything constructed so far).
//
// A topology build is a one-shot operation during device initialization, so the
// classes map directly onto the build outcomes:
//
//   - Invalid: an unknown NN type or pipeline type, or a link between incompatible ports
//   - Fatal: the device failed to report its cameras, a socket is not connected,
//     the hardware pipeline is full, or the assembled graph is miswired
//   - Transient: context cancellation while waiting on a device query
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// Three wrapper functions provide classification-aware wrapping:
//
//	errors.WrapTransient(err, "Component", "Method", "action")
//	errors.WrapInvalid(err, "Component", "Method", "action")
//	errors.WrapFatal(err, "Component", "Method", "action")
//
// The generic Wrap() function preserves the original error's classification:
//
//	errors.Wrap(err, "Component", "Method", "action")
//
// # Warnings
//
// ErrUnsupportedCombination is never returned. Variants attach it to the WARN record
// they log when the requested NN type has nothing to attach to, then continue.
//
// # Cleanup
//
// Join keeps the classification of the primary error while attaching the errors
// raised while releasing partially constructed nodes:
//
//	if err := build(); err != nil {
//	    return errors.Join(err, releaseAll(nodes)...)
//	}
//
// # Integration with errors.As/Is
//
//	var ce *errors.ClassifiedError
//	if errors.As(err, &ce) {
//	    logger.Error("build failed", "component", ce.Component, "class", ce.Class)
//	}
//
//	if errors.Is(err, errors.ErrHardwareQuery) {
//	    // device did not answer
//	}
package errors
