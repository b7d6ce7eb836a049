// Package errors provides standardized error handling for pipeline assembly.
// It includes error classification, standard error variables, and helper functions
// for consistent error wrapping and classification across the builder.
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorClass represents the classification of errors for handling purposes
type ErrorClass int

const (
	// ErrorTransient represents temporary errors that may be retried
	ErrorTransient ErrorClass = iota
	// ErrorInvalid represents errors due to invalid input or configuration
	ErrorInvalid
	// ErrorFatal represents unrecoverable errors that abort the build
	ErrorFatal
)

// String returns the string representation of ErrorClass
func (ec ErrorClass) String() string {
	switch ec {
	case ErrorTransient:
		return "transient"
	case ErrorInvalid:
		return "invalid"
	case ErrorFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions
var (
	// Configuration errors
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrMissingConfig   = errors.New("missing required configuration")
	ErrUnknownNNMode   = errors.New("unknown nn type")
	ErrUnknownVariant  = errors.New("unknown pipeline type")
	ErrAlreadyExists   = errors.New("already registered")
	ErrSchemaViolation = errors.New("configuration schema violation")

	// Topology warnings. Never returned from a build, only attached to log records.
	ErrUnsupportedCombination = errors.New("nn type not supported by pipeline type")

	// Hardware errors
	ErrHardwareQuery      = errors.New("camera feature query failed")
	ErrSocketNotConnected = errors.New("no camera connected on socket")
	ErrPipelineFull       = errors.New("pipeline node capacity exhausted")

	// Wiring errors
	ErrPortNotFound     = errors.New("port not found")
	ErrPortRoleMismatch = errors.New("port role mismatch")
	ErrForeignNode      = errors.New("node belongs to a different pipeline")
	ErrNodeClosed       = errors.New("node already closed")
	ErrNodeNotFound     = errors.New("node not found")
	ErrIncompleteWiring = errors.New("required input port not linked")
	ErrDuplicateNode    = errors.New("node appears more than once")
)

// ClassifiedError wraps an error with its classification
type ClassifiedError struct {
	Class     ErrorClass
	Err       error
	Message   string
	Component string
	Operation string
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	if ce.Message != "" {
		return ce.Message
	}
	return ce.Err.Error()
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// IsTransient checks if an error is transient and could be retried
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorTransient
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, pattern := range []string{"timeout", "temporary", "busy", "unavailable"} {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}

// IsFatal checks if an error is fatal and must abort the build
func IsFatal(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorFatal
	}

	return errors.Is(err, ErrHardwareQuery) ||
		errors.Is(err, ErrSocketNotConnected) ||
		errors.Is(err, ErrPipelineFull) ||
		errors.Is(err, ErrIncompleteWiring) ||
		errors.Is(err, ErrDuplicateNode)
}

// IsInvalid checks if an error is due to invalid input
func IsInvalid(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorInvalid
	}

	return errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrMissingConfig) ||
		errors.Is(err, ErrUnknownNNMode) ||
		errors.Is(err, ErrUnknownVariant) ||
		errors.Is(err, ErrSchemaViolation) ||
		errors.Is(err, ErrPortNotFound) ||
		errors.Is(err, ErrPortRoleMismatch) ||
		errors.Is(err, ErrForeignNode)
}

// Classify returns the error class for an error.
// Unclassified errors are treated as fatal: a build has no retry loop.
func Classify(err error) ErrorClass {
	if err == nil {
		return ErrorTransient
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class
	}

	if IsInvalid(err) {
		return ErrorInvalid
	}
	// A fatal sentinel outranks transient-looking text such as "timeout"
	if IsFatal(err) {
		return ErrorFatal
	}
	if IsTransient(err) {
		return ErrorTransient
	}
	return ErrorFatal
}

// newClassified creates a new classified error.
// Use WrapTransient(), WrapFatal(), or WrapInvalid() instead.
func newClassified(class ErrorClass, err error, component, operation, message string) *ClassifiedError {
	return &ClassifiedError{
		Class:     class,
		Err:       err,
		Message:   message,
		Component: component,
		Operation: operation,
	}
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// WrapTransient wraps an error as transient with context
func WrapTransient(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorTransient, wrappedErr, component, method, wrappedErr.Error())
}

// WrapFatal wraps an error as fatal with context
func WrapFatal(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorFatal, wrappedErr, component, method, wrappedErr.Error())
}

// WrapInvalid wraps an error as invalid with context
func WrapInvalid(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorInvalid, wrappedErr, component, method, wrappedErr.Error())
}

// Join combines a primary error with cleanup errors. The primary error's
// classification is kept, so callers can still use IsFatal or IsInvalid.
func Join(primary error, cleanup ...error) error {
	if primary == nil {
		return errors.Join(cleanup...)
	}
	rest := errors.Join(cleanup...)
	if rest == nil {
		return primary
	}
	var ce *ClassifiedError
	if errors.As(primary, &ce) {
		return newClassified(ce.Class, errors.Join(primary, rest), ce.Component, ce.Operation, "")
	}
	return errors.Join(primary, rest)
}
