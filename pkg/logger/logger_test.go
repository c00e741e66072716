package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_WritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxiservice.log")

	log := New("test", WithLevel("info"), WithFile(path))
	log.Debug("dropped below level")
	log.With(String("component", "storage")).Info("written", Int("cars", 3))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"written"`)
	require.Contains(t, string(data), `"component":"storage"`)
	require.NotContains(t, string(data), "dropped below level")
}

func TestNew_UnknownLevelFallsBackToDebug(t *testing.T) {
	log := New("test", WithLevel("verbose"))
	require.NotNil(t, log)
	log.Debug("still works")
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	log.Error("ignored", Error(os.ErrNotExist))
	require.NoError(t, log.Sync())
}
