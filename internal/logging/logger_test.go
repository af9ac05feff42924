package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelWarn},
		{"verbose", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: "info", Format: "json", Output: &buf}).WithRunID("run-1")

	logger.Info("file rewritten", slog.String("path", "src/index.ts"))
	logger.Debug("hidden")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "file rewritten", record["msg"])
	assert.Equal(t, "run-1", record["run_id"])
	assert.Equal(t, "src/index.ts", record["path"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewLogger_DefaultFormatForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: "warn", Output: &buf})

	logger.Warn("careful")
	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: "debug", Format: "text", Output: &buf}).WithFields("component", "discovery")

	logger.Debug("walking")
	assert.Contains(t, buf.String(), "msg=walking")
	assert.Contains(t, buf.String(), "component=discovery")
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Format: "text", Output: &buf})

	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
	assert.NotNil(t, FromContext(context.Background()))
}
