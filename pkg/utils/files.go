// Package utils provides helpers for loading ROMs from disk, and
// for writing screenshots back out.
package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// ErrEmptyArchive is returned when an archive holds no files.
var ErrEmptyArchive = errors.New("utils: archive contains no files")

// romExtensions are preferred when picking a file out of an
// archive holding more than one.
var romExtensions = []string{".gb", ".gbc", ".bin"}

// LoadFile loads the given file and performs decompression if
// necessary. The compression is taken from the file extension:
// .zip and .7z archives yield their ROM (or first) file, while .gz,
// .xz, .zst and .lz4 streams are decompressed in full. Any other
// file is returned as is.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return Decompress(filepath.Ext(filename), data)
}

// Decompress decompresses data according to ext, as LoadFile does.
func Decompress(ext string, data []byte) ([]byte, error) {
	var decoder io.Reader
	var err error

	// try to assert the compression type from the file extension
	switch strings.ToLower(ext) {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
	case ".xz":
		decoder, err = xz.NewReader(bytes.NewReader(data))
	case ".zst":
		var d *zstd.Decoder
		if d, err = zstd.NewReader(bytes.NewReader(data)); err == nil {
			defer d.Close()
			decoder = d
		}
	case ".lz4":
		decoder = lz4.NewReader(bytes.NewReader(data))
	case ".zip":
		return readZip(data)
	case ".7z":
		return read7z(data)
	default:
		// return the data as is
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("utils: opening %s stream: %w", ext, err)
	}

	out, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("utils: decompressing %s stream: %w", ext, err)
	}
	return out, nil
}

// pickFile returns the index of the first name with a ROM
// extension, or the first non-directory entry.
func pickFile(names []string, dirs []bool) int {
	for _, ext := range romExtensions {
		for i, name := range names {
			if !dirs[i] && strings.EqualFold(filepath.Ext(name), ext) {
				return i
			}
		}
	}
	for i := range names {
		if !dirs[i] {
			return i
		}
	}
	return -1
}

func readZip(data []byte) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	names, dirs := make([]string, len(r.File)), make([]bool, len(r.File))
	for i, f := range r.File {
		names[i], dirs[i] = f.Name, f.FileInfo().IsDir()
	}
	i := pickFile(names, dirs)
	if i < 0 {
		return nil, ErrEmptyArchive
	}

	rc, err := r.File[i].Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

func read7z(data []byte) ([]byte, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	names, dirs := make([]string, len(r.File)), make([]bool, len(r.File))
	for i, f := range r.File {
		names[i], dirs[i] = f.Name, f.FileInfo().IsDir()
	}
	i := pickFile(names, dirs)
	if i < 0 {
		return nil, ErrEmptyArchive
	}

	rc, err := r.File[i].Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}
