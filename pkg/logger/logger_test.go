package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "warn")
	require.NoError(t, err)

	log.Info("CheckAvailability: branch=%d", 7)
	assert.Empty(t, buf.String())

	log.Warn("CheckAvailability: branch=%d degraded", 7)
	assert.Contains(t, buf.String(), "CheckAvailability: branch=7 degraded")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("", "verbose")
	assert.Error(t, err)
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "service.log")
	log, err := New(path, "info")
	require.NoError(t, err)

	log.Error("volume source failed: %v", "timeout")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "volume source failed: timeout")
}
