package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/Iron-Ham/mustdo/internal/errors"
)

// FileLock provides cross-process mutual exclusion for a slot using
// flock(2) on <dir>/<name>.lock.
type FileLock struct {
	dir  string
	path string
	file *os.File
}

// NewFileLock creates a FileLock for the slot name inside dir.
func NewFileLock(dir, name string) *FileLock {
	return &FileLock{
		dir:  dir,
		path: filepath.Join(dir, name+".lock"),
	}
}

// Path returns the lock file path.
func (fl *FileLock) Path() string {
	return fl.path
}

func (fl *FileLock) open() (*os.File, error) {
	if err := os.MkdirAll(fl.dir, 0755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	f, err := os.OpenFile(fl.path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	return f, nil
}

// Lock acquires an exclusive lock, blocking until it is available.
func (fl *FileLock) Lock() error {
	f, err := fl.open()
	if err != nil {
		return err
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		_ = f.Close()
		return fmt.Errorf("flock: %w", err)
	}
	fl.file = f
	return nil
}

// TryLock acquires the lock without blocking. If another holder has it the
// returned error matches errors.ErrSlotLocked.
func (fl *FileLock) TryLock() error {
	f, err := fl.open()
	if err != nil {
		return err
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = f.Close()
		if err == syscall.EWOULDBLOCK {
			return errors.Wrapf(errors.ErrSlotLocked, "lock %s", fl.path)
		}
		return fmt.Errorf("flock: %w", err)
	}
	fl.file = f
	return nil
}

// Unlock releases the lock. Unlocking a lock that is not held is a no-op.
func (fl *FileLock) Unlock() error {
	if fl.file == nil {
		return nil
	}

	err := syscall.Flock(int(fl.file.Fd()), syscall.LOCK_UN)
	closeErr := fl.file.Close()
	fl.file = nil
	if err != nil {
		return fmt.Errorf("funlock: %w", err)
	}
	return closeErr
}
