package health

import (
	"slices"
	"strings"
	"time"
)

// NewHealthy creates a new healthy status
func NewHealthy(component, message string) Status {
	return newStatus(component, StateHealthy, message)
}

// NewUnhealthy creates a new unhealthy status
func NewUnhealthy(component, message string) Status {
	return newStatus(component, StateUnhealthy, message)
}

// NewDegraded creates a new degraded status
func NewDegraded(component, message string) Status {
	return newStatus(component, StateDegraded, message)
}

func newStatus(component, state, message string) Status {
	return Status{
		Component: component,
		Healthy:   state == StateHealthy,
		Status:    state,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Aggregate combines sub-statuses into one. Any unhealthy sub-status makes the
// aggregate unhealthy; otherwise any degraded one makes it degraded. Sub-statuses
// are kept sorted by component.
func Aggregate(component string, subStatuses []Status) Status {
	if len(subStatuses) == 0 {
		return NewHealthy(component, "No pipelines built")
	}

	var unhealthy, degraded int
	for _, sub := range subStatuses {
		switch {
		case sub.IsUnhealthy():
			unhealthy++
		case sub.IsDegraded():
			degraded++
		}
	}

	var status Status
	switch {
	case unhealthy > 0:
		status = NewUnhealthy(component, "One or more pipeline builds failed")
	case degraded > 0:
		status = NewDegraded(component, "One or more pipelines built with warnings")
	default:
		status = NewHealthy(component, "All pipelines built")
	}

	sorted := slices.SortedFunc(slices.Values(subStatuses), func(a, b Status) int {
		return strings.Compare(a.Component, b.Component)
	})
	for _, sub := range sorted {
		status = status.WithSubStatus(sub)
	}

	return status
}
