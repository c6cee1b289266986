package logflags

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	var f Flags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.SetFlags(fs)
	require.NoError(t, fs.Parse(nil))
	assert.Equal(t, "info", f.Level)
	assert.Empty(t, f.File)
	assert.Equal(t, 100, f.MaxSize)
}

func TestBadLevel(t *testing.T) {
	f := Flags{Level: "verbose"}
	_, err := f.Open()
	assert.Error(t, err)
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arith.log")
	var f Flags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.SetFlags(fs)
	require.NoError(t, fs.Parse([]string{"--log-file", path, "--log-level", "warn"}))
	logger, err := f.Open()
	require.NoError(t, err)
	logger.Info("dropped")
	logger.Warn("kept")
	require.NoError(t, logger.Sync())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(b, &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "warn", entry["level"])
}
