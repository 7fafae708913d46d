// Package logsink manages the combined server log file. The server's stdout
// and stderr both append to one file so interleaved writes from either
// stream land in a single chronological log that survives restarts.
package logsink

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the fixed name of the combined server log inside the log
// directory.
const FileName = "voxtube-server.log"

// Handles holds the two write endpoints handed to the spawned server. Both
// refer to the same backing file opened in append mode.
type Handles struct {
	Stdout *os.File
	Stderr *os.File

	// Path is the resolved location of the backing log file.
	Path string
}

// Open ensures the log directory exists and opens the combined log file in
// append mode, returning one handle per child output stream. Prior log
// history is never truncated. Any failure here is fatal to the launch
// attempt and is returned with enough context to display directly.
func Open(dir string) (*Handles, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, FileName)
	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND

	stdout, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	stderr, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		stdout.Close()
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}

	return &Handles{Stdout: stdout, Stderr: stderr, Path: path}, nil
}

// Close releases both handles. Closing an already-closed pair is harmless.
func (h *Handles) Close() error {
	var errs []error
	if err := h.Stdout.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		errs = append(errs, err)
	}
	if err := h.Stderr.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
