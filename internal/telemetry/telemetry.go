// Package telemetry carries usage events out of the engine.
//
// The engine only ever produces events. Where they go is up to the
// [Sink]: [LogSink] writes them to a structured logger, [Recorder] keeps
// them in memory.
package telemetry

import (
	"log/slog"
	"maps"
	"slices"
	"sync"
)

// Event names.
const (
	// EventConfigSquiggles carries changed squiggle counts, or an
	// "error" property when the text could not be mapped.
	EventConfigSquiggles = "ConfigSquiggles"
	// EventUnknownVersion is sent when a document has a version newer
	// than the one supported.
	EventUnknownVersion = "ConfigVersionMismatch"
	// EventParseFailure is sent when a document fails to parse.
	EventParseFailure = "ConfigParseFailure"
)

// Sink receives events.
type Sink interface {
	Event(name string, props map[string]string, metrics map[string]float64)
}

// Nop returns a sink that drops everything.
func Nop() Sink { return nopSink{} }

type nopSink struct{}

func (nopSink) Event(string, map[string]string, map[string]float64) {}

// LogSink writes events to a logger at debug level.
type LogSink struct {
	Logger *slog.Logger
}

// Event implements Sink.
func (s LogSink) Event(name string, props map[string]string, metrics map[string]float64) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := make([]any, 0, 2*(len(props)+len(metrics))+2)
	attrs = append(attrs, "event", name)
	for _, k := range slices.Sorted(maps.Keys(props)) {
		attrs = append(attrs, k, props[k])
	}
	for _, k := range slices.Sorted(maps.Keys(metrics)) {
		attrs = append(attrs, k, metrics[k])
	}
	logger.Debug("telemetry", attrs...)
}

// Event is one recorded event.
type Event struct {
	Name       string
	Properties map[string]string
	Metrics    map[string]float64
}

// Recorder keeps events in memory. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Event implements Sink.
func (r *Recorder) Event(name string, props map[string]string, metrics map[string]float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Name: name, Properties: maps.Clone(props), Metrics: maps.Clone(metrics)})
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

// Named returns the recorded events called name.
func (r *Recorder) Named(name string) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// Reset drops everything recorded.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
