package telemetry

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	props := map[string]string{"error": "x"}
	r.Event(EventConfigSquiggles, props, nil)
	r.Event(EventParseFailure, nil, map[string]float64{"n": 1})
	props["error"] = "mutated"

	events := r.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "x", events[0].Properties["error"])
	assert.Len(t, r.Named(EventParseFailure), 1)

	r.Reset()
	assert.Empty(t, r.Events())
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	LogSink{Logger: logger}.Event(EventConfigSquiggles, map[string]string{"b": "2"}, map[string]float64{"PathNonExistent": 3})

	out := buf.String()
	assert.Contains(t, out, "event=ConfigSquiggles")
	assert.Contains(t, out, "b=2")
	assert.Contains(t, out, "PathNonExistent=3")
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Event("x", nil, nil) })
}
