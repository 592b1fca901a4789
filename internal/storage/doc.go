// Package storage provides the named key/value slot that holds the
// serialized task collection between sessions.
//
// A [Slot] stores one opaque value that is always replaced wholly: there is
// no incremental patching and no versioning. [FileSlot] keeps the value in a
// single JSON file on an afero filesystem and replaces it atomically.
// [MemorySlot] keeps it in memory.
//
// A [FileLock] provides cross-process mutual exclusion for a slot. Callers
// that read, mutate and write the slot from separate processes hold the lock
// for the whole sequence:
//
//	lock := storage.NewFileLock(dir, "todos")
//	if err := lock.Lock(); err != nil {
//	    return err
//	}
//	defer lock.Unlock()
//
//	slot := storage.NewFileSlot(afero.NewOsFs(), dir, "todos")
package storage
