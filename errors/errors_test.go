package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorClass_String(t *testing.T) {
	tests := []struct {
		class    ErrorClass
		expected string
	}{
		{ErrorTransient, "transient"},
		{ErrorInvalid, "invalid"},
		{ErrorFatal, "fatal"},
		{ErrorClass(999), "unknown"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			result := test.class.String()
			if result != test.expected {
				t.Errorf("expected %s, got %s", test.expected, result)
			}
		})
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"hardware query", ErrHardwareQuery, true},
		{"socket not connected", ErrSocketNotConnected, true},
		{"pipeline full", ErrPipelineFull, true},
		{"incomplete wiring", ErrIncompleteWiring, true},
		{"unknown nn mode", ErrUnknownNNMode, false},
		{"wrapped fatal", WrapFatal(errors.New("boom"), "Device", "Query", "usb read"), true},
		{"wrapped invalid", WrapInvalid(ErrHardwareQuery, "Device", "Query", "usb read"), false},
		{"plain wrap keeps sentinel", Wrap(ErrHardwareQuery, "CamArray", "CreatePipeline", "query"), true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsFatal(test.err)
			if result != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, result, test.err)
			}
		})
	}
}

func TestIsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"unknown nn mode", ErrUnknownNNMode, true},
		{"unknown variant", ErrUnknownVariant, true},
		{"role mismatch", ErrPortRoleMismatch, true},
		{"foreign node", ErrForeignNode, true},
		{"hardware query", ErrHardwareQuery, false},
		{"classified invalid", &ClassifiedError{Class: ErrorInvalid, Err: fmt.Errorf("test")}, true},
		{"classified fatal", &ClassifiedError{Class: ErrorFatal, Err: ErrUnknownNNMode}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsInvalid(test.err)
			if result != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, result, test.err)
			}
		})
	}
}

func TestIsTransient(t *testing.T) {
	if !IsTransient(context.Canceled) {
		t.Error("context.Canceled should be transient")
	}
	if !IsTransient(fmt.Errorf("device busy")) {
		t.Error("busy device should be transient")
	}
	if IsTransient(ErrPortNotFound) {
		t.Error("port not found should not be transient")
	}
	if IsTransient(nil) {
		t.Error("nil should not be transient")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorClass
	}{
		{"invalid sentinel", ErrUnknownNNMode, ErrorInvalid},
		{"fatal sentinel", ErrHardwareQuery, ErrorFatal},
		{"deadline", context.DeadlineExceeded, ErrorTransient},
		{"unknown error defaults to fatal", errors.New("something odd"), ErrorFatal},
		{"fatal sentinel with timeout text", fmt.Errorf("%w: device timeout", ErrHardwareQuery), ErrorFatal},
		{"classified wins", WrapTransient(ErrHardwareQuery, "Device", "Query", "read"), ErrorTransient},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Classify(test.err); got != test.expected {
				t.Errorf("expected %s, got %s", test.expected, got)
			}
		})
	}
}

func TestWrapFormat(t *testing.T) {
	err := Wrap(ErrPortNotFound, "Sensor", "Link", "output lookup")
	expected := "Sensor.Link: output lookup failed: port not found"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
	if !errors.Is(err, ErrPortNotFound) {
		t.Error("wrapped error should match sentinel")
	}

	if Wrap(nil, "a", "b", "c") != nil {
		t.Error("wrapping nil should return nil")
	}
	if WrapFatal(nil, "a", "b", "c") != nil {
		t.Error("wrapping nil should return nil")
	}
}

func TestClassifiedErrorFields(t *testing.T) {
	err := WrapInvalid(ErrUnknownNNMode, "NNMode", "Resolve", "table lookup")

	var ce *ClassifiedError
	if !errors.As(err, &ce) {
		t.Fatal("expected ClassifiedError")
	}
	if ce.Component != "NNMode" || ce.Operation != "Resolve" {
		t.Errorf("unexpected context %s.%s", ce.Component, ce.Operation)
	}
	if ce.Class != ErrorInvalid {
		t.Errorf("expected invalid, got %s", ce.Class)
	}
	if !errors.Is(err, ErrUnknownNNMode) {
		t.Error("classified error should unwrap to sentinel")
	}
}

func TestJoin(t *testing.T) {
	primary := WrapFatal(ErrHardwareQuery, "CamArray", "CreatePipeline", "feature query")
	cleanup := errors.New("remove node 3: unknown id")

	joined := Join(primary, cleanup)
	if !IsFatal(joined) {
		t.Error("join should keep the primary classification")
	}
	if !errors.Is(joined, ErrHardwareQuery) {
		t.Error("join should keep the primary sentinel")
	}
	if !errors.Is(joined, cleanup) {
		t.Error("join should keep cleanup errors")
	}
	if !strings.Contains(joined.Error(), "remove node 3") {
		t.Errorf("message should include cleanup error: %s", joined.Error())
	}

	if Join(primary) != primary {
		t.Error("join without cleanup errors should return the primary error")
	}
	if Join(primary, nil, nil) != primary {
		t.Error("nil cleanup errors should be dropped")
	}
	if Join(nil) != nil {
		t.Error("join of nothing should be nil")
	}
}
