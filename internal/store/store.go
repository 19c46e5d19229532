// Package store persists the programmed stay-on delay as a single byte
// of minutes, like an EEPROM cell. The real implementation keeps it in a
// file; the fake records writes.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mikelawrence/LED-Relay/internal/relay"
)

// DefaultPath is where the delay byte lives on a deployed device.
const DefaultPath = "/var/lib/led-relay/delay"

// Store reads and writes the delay byte.
type Store interface {
	// Read returns the persisted delay in minutes. A device that has
	// never been programmed returns the default.
	Read() (uint8, error)

	// Write persists the delay in minutes.
	Write(minutes uint8) error
}

// FileStore keeps the delay byte in a single file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Read returns the persisted byte. The value is accepted as-is with no
// range validation, like a raw EEPROM read; a missing or empty file
// yields the factory default.
func (s *FileStore) Read() (uint8, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return relay.DefaultDelayMinutes, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read delay: %w", err)
	}
	if len(data) == 0 {
		return relay.DefaultDelayMinutes, nil
	}
	return data[0], nil
}

// Write persists the byte, creating the directory if needed.
func (s *FileStore) Write(minutes uint8) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte{minutes}, 0o644); err != nil {
		return fmt.Errorf("write delay: %w", err)
	}
	return nil
}
