package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_JSONEncoding(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "info", Encoding: "json"}, &buf)
	require.NoError(t, err)

	log.Info("converted", zap.String("file", "fire.json"), zap.Int("scenes", 3))
	log.Debug("hidden")
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "converted", entry["msg"])
	assert.Equal(t, "fire.json", entry["file"])
	assert.Contains(t, entry, "timestamp")
}

func TestNew_DefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{}, &buf)
	require.NoError(t, err)

	log.Debug("hidden")
	log.Warn("shown")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "WARN")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestForCLI(t *testing.T) {
	var buf bytes.Buffer

	quiet, err := ForCLI(false, "", &buf)
	require.NoError(t, err)
	quiet.Error("nothing")
	assert.Empty(t, buf.String())

	loud, err := ForCLI(true, "", &buf)
	require.NoError(t, err)
	loud.Debug("details")
	assert.Contains(t, buf.String(), "details")
}
