package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/nbspace/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := logger.ParseLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := logger.ParseLevel("loud")
	assert.ErrorIs(t, err, logger.ErrInvalidLevel)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, logger.Config{Level: "debug", Format: "text"}.Validate())
	assert.NoError(t, logger.Config{}.Validate())
	assert.ErrorIs(t, logger.Config{Format: "xml"}.Validate(), logger.ErrInvalidFormat)
	assert.ErrorIs(t, logger.Config{Level: "trace"}.Validate(), logger.ErrInvalidLevel)
}

func TestNew_Extractors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "debug", Output: &buf}, logger.DefaultExtractors()...)

	ctx := logger.WithRunID(context.Background(), "run-1")
	ctx = logger.WithFile(ctx, "menu.xlsx")
	ctx = logger.WithDirection(ctx, "sheet_to_flat")
	log.DebugContext(ctx, "file converted", slog.Int("changes", 3))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "file converted", entry["msg"])
	assert.Equal(t, "run-1", entry["run_id"])
	assert.Equal(t, "menu.xlsx", entry["file"])
	assert.Equal(t, "sheet_to_flat", entry["direction"])
	assert.InDelta(t, 3, entry["changes"], 0)
	assert.Equal(t, "run-1", logger.RunID(ctx))
}

func TestNew_TextAndLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "warn", Format: "text", Output: &buf}, logger.RunIDExtractor())
	log.Info("hidden")
	assert.Zero(t, buf.Len())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.NotContains(t, buf.String(), "run_id")
}

func TestNewWithSentry_NoDSN(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithSentry(logger.Config{Output: &buf}, logger.SentryConfig{})
	log.Info("console only")
	assert.Contains(t, buf.String(), "console only")
}

func TestNewNope(t *testing.T) {
	t.Parallel()
	logger.NewNope().Error("dropped")
}
