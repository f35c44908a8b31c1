package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"off":   LevelOff,
		"":      LevelOff,
	}
	for raw, want := range tests {
		got, err := ParseLevel(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseLevel("chatty")
	assert.Error(t, err)
}

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("submitted", "question", "show all users")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "submitted", entry["msg"])
	assert.Equal(t, "rorisql", entry["source"])
	assert.Equal(t, "show all users", entry["question"])
}

func TestNewOffDiscards(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, LevelOff).Error("nothing")
	assert.Zero(t, buf.Len())
}

func TestNewFileLogger(t *testing.T) {
	dir := t.TempDir()
	logger, closer, err := NewFileLogger(dir, slog.LevelDebug)
	require.NoError(t, err)
	logger.Info("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, "rorisql.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}
