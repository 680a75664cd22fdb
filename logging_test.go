package facedetect

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestNewLogger_File(t *testing.T) {
	opts := DefaultOptions()
	opts.LogFile = filepath.Join(t.TempDir(), "facedetect.log")

	logger := NewLogger(opts)
	logger.Info("hola", "faces", 2)
	logger.Debug("oculto")

	content, err := os.ReadFile(opts.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "msg=hola")
	assert.Contains(t, string(content), "faces=2")
	assert.NotContains(t, string(content), "oculto")
}

func TestWithRun(t *testing.T) {
	_, a := WithRun(slog.Default())
	_, b := WithRun(slog.Default())
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
