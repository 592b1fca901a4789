package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Iron-Ham/mustdo/internal/errors"
)

// FileSlot stores a slot's value as <dir>/<name>.json.
type FileSlot struct {
	fs   afero.Fs
	dir  string
	name string
}

// NewFileSlot creates a FileSlot. Nothing touches the filesystem until the
// first Read or Write; the directory is created on first Write.
func NewFileSlot(fs afero.Fs, dir, name string) *FileSlot {
	return &FileSlot{fs: fs, dir: dir, name: name}
}

// Name returns the slot's key.
func (s *FileSlot) Name() string {
	return s.name
}

// Path returns the file backing the slot.
func (s *FileSlot) Path() string {
	return filepath.Join(s.dir, s.name+".json")
}

// Read returns the file's contents.
func (s *FileSlot) Read() ([]byte, error) {
	data, err := afero.ReadFile(s.fs, s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrSlotEmpty, "read slot %s", s.name)
		}
		return nil, fmt.Errorf("read slot %s: %w", s.name, err)
	}
	return data, nil
}

// Write atomically replaces the file: data goes to a temporary file first,
// which is then renamed into place.
func (s *FileSlot) Write(data []byte) error {
	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create slot directory: %w", err)
	}

	target := s.Path()
	tmp := target + ".tmp"

	if err := afero.WriteFile(s.fs, tmp, data, 0644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := s.fs.Rename(tmp, target); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Clear deletes the file.
func (s *FileSlot) Clear() error {
	if err := s.fs.Remove(s.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear slot %s: %w", s.name, err)
	}
	return nil
}
