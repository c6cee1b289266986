package outputflags

import (
	"io"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*Flags, error) {
	var f Flags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
	return &f, f.Init()
}

func TestMarshal(t *testing.T) {
	f, err := parse(t, "--pretty", "0")
	require.NoError(t, err)
	b, err := f.Marshal([]any{"plus", []any{1.0, 2.0}})
	require.NoError(t, err)
	assert.Equal(t, `["plus",[1,2]]`, string(b))

	f, err = parse(t, "-J")
	require.NoError(t, err)
	b, err = f.Marshal([]any{"plus"})
	require.NoError(t, err)
	assert.Equal(t, "[\n  \"plus\"\n]", string(b))
}

func TestInitErrors(t *testing.T) {
	_, err := parse(t, "-f", "yaml")
	assert.EqualError(t, err, `unknown output format "yaml"`)
	_, err = parse(t, "-f", "text", "-J")
	assert.EqualError(t, err, "cannot use -J with -f text")
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	f, err := parse(t, "-o", path)
	require.NoError(t, err)
	assert.Zero(t, f.Pretty)
	w, err := f.Open(io.Discard)
	require.NoError(t, err)
	_, err = w.Write([]byte("[]\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(b))
}

func TestOpenFileCloseError(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("no /dev/full")
	}
	f, err := parse(t, "-o", "/dev/full")
	require.NoError(t, err)
	w, err := f.Open(io.Discard)
	require.NoError(t, err)
	_, err = w.Write([]byte("[]\n"))
	require.NoError(t, err)
	assert.ErrorIs(t, w.Close(), syscall.ENOSPC)
}
