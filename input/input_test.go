package input

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"

	perrors "github.com/sambeau/distress/pkg/packet/errors"
)

const sample = "[1,1,3,1,1]\n[1,1,5,1,1]\n"

func TestReadPlain(t *testing.T) {
	got, err := Read(bytes.NewBufferString(sample))
	require.NoError(t, err)
	require.Equal(t, sample, got)
}

func TestReadGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Equal(t, sample, got)
}

func TestReadZstd(t *testing.T) {
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	compressed := enc.EncodeAll([]byte(sample), nil)
	require.NoError(t, enc.Close())

	got, err := Read(bytes.NewReader(compressed))
	require.NoError(t, err)
	require.Equal(t, sample, got)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, sample, got)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	require.True(t, errors.Is(err, perrors.ErrUnreadableInput))
}

func TestReadCorruptGzip(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte{0x1f, 0x8b, 0x00}))
	require.Error(t, err)
}
