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
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "json")

	logger.Debug("hidden")
	logger.Info("request", "status", 200)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request", entry["msg"])
	assert.Equal(t, float64(200), entry["status"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "debug", "text")
	logger.Debug("visible", "key", "value")
	assert.Contains(t, buf.String(), "msg=visible")
	assert.Contains(t, buf.String(), "key=value")
}

func TestBadgerAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := Badger(New(&buf, "warn", "text"))

	adapter.Infof("opening %s\n", "db")
	assert.Empty(t, buf.String())

	adapter.Warningf("slow compaction: %d tables", 3)
	assert.Contains(t, buf.String(), "slow compaction: 3 tables")
	assert.Contains(t, buf.String(), "component=badger")

	buf.Reset()
	adapter.Errorf("boom")
	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nothing happens")
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}
