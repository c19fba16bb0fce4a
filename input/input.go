// Package input loads packet files, decompressing gzip and zstd transparently.
package input

import (
	"bytes"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	perrors "github.com/sambeau/distress/pkg/packet/errors"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// ReadFile reads path (or stdin for "-") and returns its decompressed text.
func ReadFile(path string) (string, error) {
	var r io.Reader = os.Stdin
	if path != Stdin && path != "" {
		f, err := os.Open(path)
		if err != nil {
			return "", unreadable(path, err)
		}
		defer f.Close()
		r = f
	} else {
		path = "<stdin>"
	}

	text, err := Read(r)
	if err != nil {
		return "", unreadable(path, err)
	}
	return text, nil
}

// Read returns the decompressed contents of r. The compression format is
// detected from the leading magic bytes, not from a file name.
func Read(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	switch {
	case bytes.HasPrefix(data, gzipMagic):
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return "", err
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return "", err
		}
		return string(out), nil

	case bytes.HasPrefix(data, zstdMagic):
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return "", err
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}

	return string(data), nil
}

func unreadable(path string, err error) error {
	return perrors.New(perrors.CodeUnreadableInput, map[string]any{
		"Path":   path,
		"Reason": err.Error(),
	})
}
