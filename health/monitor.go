package health

import (
	"maps"
	"slices"
	"sync"
	"time"
)

// Monitor keeps the latest status per pipeline type. It is safe for concurrent use.
// A nil *Monitor ignores updates and reports nothing.
type Monitor struct {
	mu       sync.RWMutex
	statuses map[string]Status
}

// NewMonitor creates a new health monitor
func NewMonitor() *Monitor {
	return &Monitor{
		statuses: make(map[string]Status),
	}
}

// Update replaces the status for name
func (m *Monitor) Update(name string, status Status) {
	if m == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	status.Component = name
	if status.Timestamp.IsZero() {
		status.Timestamp = time.Now()
	}
	m.statuses[name] = status
}

// Get retrieves the status for name
func (m *Monitor) Get(name string) (Status, bool) {
	if m == nil {
		return Status{}, false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	status, exists := m.statuses[name]
	return status, exists
}

// GetAll returns a copy of all current statuses
func (m *Monitor) GetAll() map[string]Status {
	if m == nil {
		return map[string]Status{}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return maps.Clone(m.statuses)
}

// AggregateHealth returns the combined status of every tracked pipeline
func (m *Monitor) AggregateHealth(systemName string) Status {
	return Aggregate(systemName, slices.Collect(maps.Values(m.GetAll())))
}
