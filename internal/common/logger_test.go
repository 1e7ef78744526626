package common

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureDefault(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	handler, err := NewHandler(&buf, level, "json")
	require.NoError(t, err)

	prev := slog.Default()
	slog.SetDefault(slog.New(handler))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLogHelpers(t *testing.T) {
	buf := captureDefault(t, slog.LevelInfo)

	LogError(errors.New("disk full"), "Failed to persist", Fields{"slot": "currentUser"})
	LogInfo("Saved", Fields{"bytes": 12})
	LogDebug("Hidden", Fields{"x": 1})

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"error":"disk full"`)
	assert.Contains(t, out, `"slot":"currentUser"`)
	assert.Contains(t, out, `"bytes":12`)
	assert.NotContains(t, out, "Hidden", "debug is below the configured level")
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	require.NoError(t, SetupLogger("debug", "console"))
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))

	assert.ErrorIs(t, SetupLogger("info", "yaml"), ErrInvalidConfig)
}
