// Package emu stores machine snapshots on disk. Each state file is
// a short header followed by a brotli compressed snapshot, and
// states are kept in one folder per cartridge title.
package emu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
)

const (
	magic   = "DMGS"
	version = 1

	stateExt = ".state"
)

var (
	// ErrBadMagic is returned when a state file does not start
	// with the expected header.
	ErrBadMagic = errors.New("emu: not a state file")
	// ErrVersion is returned for state files written by a newer
	// version.
	ErrVersion = errors.New("emu: unsupported state version")
	// ErrNoStates is returned by LatestState when a title has no
	// saved states.
	ErrNoStates = errors.New("emu: no saved states")
)

// WriteState writes the header and the compressed snapshot to w.
func WriteState(w io.Writer, data []byte) error {
	if _, err := io.WriteString(w, magic); err != nil {
		return err
	}
	if _, err := w.Write([]byte{version}); err != nil {
		return err
	}

	bw := brotli.NewWriterLevel(w, brotli.DefaultCompression)
	if _, err := bw.Write(data); err != nil {
		return err
	}
	return bw.Close()
}

// ReadState reads a state written by WriteState from r.
func ReadState(r io.Reader) ([]byte, error) {
	header := make([]byte, len(magic)+1)
	if _, err := io.ReadFull(r, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrBadMagic
		}
		return nil, err
	}
	if string(header[:len(magic)]) != magic {
		return nil, ErrBadMagic
	}
	if header[len(magic)] > version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, header[len(magic)])
	}

	data, err := io.ReadAll(brotli.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("emu: decompressing state: %w", err)
	}
	return data, nil
}

// SaveState writes data to path. The state is written to a
// temporary file first and renamed over path once complete, so an
// interrupted save never corrupts an existing state.
func SaveState(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	w := bufio.NewWriter(f)
	if err := WriteState(w, data); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), path)
}

// LoadState reads the state file at path.
func LoadState(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadState(bufio.NewReader(f))
}

// StatePath returns a new state file path for title inside dir,
// named after the current time.
func StatePath(dir, title string) string {
	return filepath.Join(dir, titleFolder(title), strconv.FormatInt(time.Now().UnixNano(), 10)+stateExt)
}

// LatestState returns the newest state file saved for title
// inside dir.
func LatestState(dir, title string) (string, error) {
	folder := filepath.Join(dir, titleFolder(title))
	files, err := os.ReadDir(folder)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoStates
		}
		return "", err
	}

	var states []string
	for _, file := range files {
		if !file.IsDir() && isStateFile(file.Name()) {
			states = append(states, file.Name())
		}
	}
	if len(states) == 0 {
		return "", ErrNoStates
	}

	sort.Slice(states, func(i, j int) bool {
		return parseTimestampFromFilename(states[i]) > parseTimestampFromFilename(states[j])
	})

	return filepath.Join(folder, states[0]), nil
}

// titleFolder returns a folder name for the cartridge title.
func titleFolder(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "untitled"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, title)
}

// parseTimestampFromFilename parses the timestamp from the given filename.
// The filename is expected to be in the format of "<...>.<timestamp>.state"
// or "<timestamp>.state".
func parseTimestampFromFilename(filename string) int64 {
	// strip the file extension
	filename = strings.TrimSuffix(filename, filepath.Ext(filename))

	// get the timestamp from the filename (the last part preceded by a dot)
	parts := strings.Split(filename, ".")
	n, err := strconv.ParseInt(parts[len(parts)-1], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func isStateFile(filename string) bool {
	return strings.HasSuffix(filename, stateExt)
}
