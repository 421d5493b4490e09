package app

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordsprout/wordsprout/internal/config"
)

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LogConfig{Level: "info", Format: "json"}, &buf)

	logger.Info("word rated", slog.Int("word_id", 7))
	logger.Debug("hidden")

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "word rated", m["msg"])
	assert.Equal(t, float64(7), m["word_id"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewLogger_TextFormatIncludesSource(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LogConfig{Level: "debug", Format: "text"}, &buf)

	logger.Debug("source test")
	assert.Contains(t, buf.String(), "source=")
	assert.Contains(t, buf.String(), "source test")
}

func TestNewLogger_SetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := NewLogger(config.LogConfig{Level: "warn", Format: "json"}, &buf)
	assert.Same(t, logger, slog.Default())
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"Warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "parseLevel(%q)", in)
	}
}

func TestOpenLogOutput(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "data", "wordsprout.db")

	w, closeFn, err := OpenLogOutput(config.LogConfig{}, dbPath, false)
	require.NoError(t, err)
	assert.Equal(t, os.Stderr, w)
	require.NoError(t, closeFn())

	w, closeFn, err = OpenLogOutput(config.LogConfig{}, dbPath, true)
	require.NoError(t, err)
	_, err = w.Write([]byte("hello\n"))
	require.NoError(t, err)
	require.NoError(t, closeFn())
	assert.FileExists(t, filepath.Join(dir, "data", "wordsprout.log"))

	custom := filepath.Join(dir, "custom.log")
	_, closeFn, err = OpenLogOutput(config.LogConfig{File: custom}, dbPath, false)
	require.NoError(t, err)
	require.NoError(t, closeFn())
	assert.FileExists(t, custom)
}
