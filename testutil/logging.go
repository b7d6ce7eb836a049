package testutil

import (
	"context"
	"log/slog"
	"sync"
)

// Record is one captured log record with its attributes flattened.
type Record struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// RecordingHandler is a slog.Handler that keeps every record it receives.
// Handlers derived through WithAttrs and WithGroup share the same storage.
type RecordingHandler struct {
	store *recordStore
	attrs []slog.Attr
}

type recordStore struct {
	mu      sync.Mutex
	records []Record
}

// NewRecordingHandler creates an empty recording handler.
func NewRecordingHandler() *RecordingHandler {
	return &RecordingHandler{store: &recordStore{}}
}

// Enabled records every level.
func (h *RecordingHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

// Handle stores the record.
func (h *RecordingHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Resolve().Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Resolve().Any()
		return true
	})

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	h.store.records = append(h.store.records, Record{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	return nil
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *RecordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &RecordingHandler{store: h.store, attrs: merged}
}

// WithGroup ignores grouping; keys stay flat.
func (h *RecordingHandler) WithGroup(string) slog.Handler {
	return h
}

// Records returns a copy of everything recorded.
func (h *RecordingHandler) Records() []Record {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	out := make([]Record, len(h.store.records))
	copy(out, h.store.records)
	return out
}

// Count returns how many records were logged at level.
func (h *RecordingHandler) Count(level slog.Level) int {
	n := 0
	for _, r := range h.Records() {
		if r.Level == level {
			n++
		}
	}
	return n
}

// Reset drops all recorded entries.
func (h *RecordingHandler) Reset() {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	h.store.records = nil
}
