package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesRotatingFile(t *testing.T) {
	dir := t.TempDir()

	log, err := New(dir, true)
	require.NoError(t, err)
	log.Infow("content saved", "type", "awards")
	zap.S().Warnw("via global", "type", "trips")
	_ = log.Sync()

	data, err := os.ReadFile(filepath.Join(dir, "orchestra-site.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"content saved"`)
	assert.Contains(t, string(data), `"type":"awards"`)
	assert.Contains(t, string(data), `"msg":"via global"`)
}

func TestNewConsoleOnly(t *testing.T) {
	log, err := New("", false)
	require.NoError(t, err)
	assert.False(t, log.Desugar().Core().Enabled(zap.DebugLevel))
}
