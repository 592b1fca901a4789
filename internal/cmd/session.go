package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/Iron-Ham/mustdo/internal/config"
	"github.com/Iron-Ham/mustdo/internal/errors"
	"github.com/Iron-Ham/mustdo/internal/logging"
	"github.com/Iron-Ham/mustdo/internal/storage"
	"github.com/Iron-Ham/mustdo/internal/todo"
)

// lockWait is how long a command waits for another mustdo process to release
// the slot before giving up.
var lockWait = 2 * time.Second

// slotFs is the filesystem slots are stored on.
var slotFs = afero.NewOsFs()

// session is an opened Store together with the lock and logger guarding it.
type session struct {
	cfg    *config.Config
	store  *todo.Store
	slot   *storage.FileSlot
	lock   *storage.FileLock
	logger *logging.Logger
}

// openSession loads the config and opens the Store for command. When
// exclusive is set the slot lock is held until Close, so concurrent mutating
// commands run one after another.
func openSession(command string, exclusive bool) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	dir := cfg.Storage.ResolveDir()
	logger := newLogger(cfg, dir).WithCommand(command)

	s := &session{
		cfg:    cfg,
		slot:   storage.NewFileSlot(slotFs, dir, cfg.Storage.Slot),
		logger: logger,
	}

	if exclusive {
		lock := storage.NewFileLock(dir, cfg.Storage.Slot)
		if err := acquire(lock, lockWait); err != nil {
			_ = logger.Close()
			return nil, err
		}
		s.lock = lock
	}

	s.store = todo.Open(s.slot, todo.WithLogger(logger))
	return s, nil
}

// acquire polls TryLock until it succeeds or wait has passed.
func acquire(lock *storage.FileLock, wait time.Duration) error {
	deadline := time.Now().Add(wait)
	for {
		err := lock.TryLock()
		if err == nil {
			return nil
		}
		if !errors.Is(err, errors.ErrSlotLocked) || time.Now().After(deadline) {
			return fmt.Errorf("another mustdo process is using %s: %w", lock.Path(), err)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// Close releases the lock and closes the log file.
func (s *session) Close() error {
	var errs []error
	if s.lock != nil {
		errs = append(errs, s.lock.Unlock())
	}
	errs = append(errs, s.logger.Close())
	return errors.Join(errs...)
}

// newLogger builds the file logger described by cfg. Logging problems never
// stop a command; they fall back to discarding logs.
func newLogger(cfg *config.Config, dir string) *logging.Logger {
	if !cfg.Logging.Enabled {
		return logging.NopLogger()
	}

	logger, err := logging.NewLoggerWithRotation(dir, cfg.Logging.Level, logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		Compress:   cfg.Logging.Compress,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
		return logging.NopLogger()
	}
	return logger
}

// resolveID finds the task whose ID is, or starts with, ref. An ambiguous
// prefix is an error; an unknown one returns ok=false.
func resolveID(store *todo.Store, ref string) (id string, ok bool, err error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false, errors.NewValidationError("task id is empty").WithField("id")
	}
	if _, found := store.Get(ref); found {
		return ref, true, nil
	}

	var matches []string
	for _, t := range store.AllSorted() {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", false, nil
	case 1:
		return matches[0], true, nil
	default:
		return "", false, errors.NewValidationError(fmt.Sprintf("id prefix matches %d tasks", len(matches))).
			WithField("id").
			WithValue(ref)
	}
}

// shortID is the ID prefix printed by the CLI.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// parseDueArg parses a due date argument. "none" means Absent.
func parseDueArg(s string) (todo.DueDate, error) {
	if strings.EqualFold(strings.TrimSpace(s), "none") {
		return todo.DueDate{}, nil
	}
	return todo.ParseDueDate(s)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
