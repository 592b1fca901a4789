package storage

import (
	"sync"

	"github.com/Iron-Ham/mustdo/internal/errors"
)

// MemorySlot keeps the slot value in memory. Reads and writes copy the
// value so callers cannot alias the stored bytes.
type MemorySlot struct {
	mu     sync.Mutex
	name   string
	data   []byte
	writes int
}

// NewMemorySlot creates an empty MemorySlot.
func NewMemorySlot(name string) *MemorySlot {
	return &MemorySlot{name: name}
}

func (s *MemorySlot) Name() string {
	return s.name
}

func (s *MemorySlot) Read() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, errors.Wrapf(errors.ErrSlotEmpty, "read slot %s", s.name)
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemorySlot) Write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append(make([]byte, 0, len(data)), data...)
	s.writes++
	return nil
}

func (s *MemorySlot) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}

// Writes returns how many times Write has been called.
func (s *MemorySlot) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
