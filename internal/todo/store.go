package todo

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Iron-Ham/mustdo/internal/errors"
	"github.com/Iron-Ham/mustdo/internal/logging"
	"github.com/Iron-Ham/mustdo/internal/storage"
)

// Store owns the task collection and keeps its slot in sync with it.
// All methods are safe for concurrent use; each mutation holds the store's
// mutex across the change and the write to the slot.
type Store struct {
	mu     sync.Mutex
	slot   storage.Slot
	logger *logging.Logger
	now    func() time.Time
	newID  func() string

	tasks       []Task
	lastCreated int64
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the clock used for CreatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator sets the function that assigns task IDs.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// New returns an empty Store bound to slot. It does not read the slot.
func New(slot storage.Slot, opts ...Option) *Store {
	s := &Store{
		slot:   slot,
		logger: logging.NopLogger(),
		now:    time.Now,
		newID:  uuid.NewString,
		tasks:  []Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithSlot(slot.Name())
	return s
}

// Open returns a Store loaded from slot.
func Open(slot storage.Slot, opts ...Option) *Store {
	s := New(slot, opts...)
	s.Load()
	return s
}

// Load reads the slot into the collection if the collection is empty, and
// returns the number of tasks loaded. A missing, unreadable or malformed
// slot leaves the collection empty; the failure is logged, never returned.
func (s *Store) Load() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tasks) > 0 {
		return 0
	}

	data, err := s.slot.Read()
	if err != nil {
		if errors.Is(err, errors.ErrSlotEmpty) {
			s.logger.Debug("no stored collection")
		} else {
			s.logger.Warn("starting with empty collection", "error", readFailure(err).Error())
		}
		return 0
	}

	tasks, err := DecodeCollection(data)
	if err != nil {
		s.logger.Warn("starting with empty collection", "error", readFailure(err).Error())
		return 0
	}

	for _, t := range tasks {
		s.lastCreated = max(s.lastCreated, t.CreatedAt)
	}
	seen := make(map[string]bool, len(tasks))
	for i := range tasks {
		s.normalize(&tasks[i], seen)
	}
	sortCollection(tasks)
	s.tasks = tasks

	s.logger.Debug("collection loaded", "tasks", len(tasks))
	return len(tasks)
}

func readFailure(err error) error {
	return fmt.Errorf("%w: %v", errors.ErrPersistenceRead, err)
}

// normalize fills in an ID and CreatedAt for tasks that lack them and
// replaces IDs already present in seen.
func (s *Store) normalize(t *Task, seen map[string]bool) {
	if t.ID == "" || seen[t.ID] {
		t.ID = s.newID()
	}
	seen[t.ID] = true
	if t.CreatedAt == 0 {
		t.CreatedAt = s.nextCreatedAt()
	}
}

func (s *Store) nextCreatedAt() int64 {
	ms := s.now().UnixMilli()
	if ms <= s.lastCreated {
		ms = s.lastCreated + 1
	}
	s.lastCreated = ms
	return ms
}

// commit installs next as the collection, re-sorts it and persists it.
// The caller must hold the mutex.
func (s *Store) commit(next []Task, op string) error {
	sortCollection(next)
	s.tasks = next
	return s.persist(op)
}

// persist writes the whole collection to the slot. The caller must hold the
// mutex. On failure the in-memory collection is kept.
func (s *Store) persist(op string) error {
	data, err := EncodeCollection(s.tasks)
	if err == nil {
		err = s.slot.Write(data)
	}
	if err != nil {
		s.logger.Error("persist failed", "op", op, "error", err.Error())
		return errors.NewStoreError(op, errors.ErrPersistenceWrite).
			WithSlot(s.slot.Name()).
			WithCause(err)
	}
	s.logger.Debug("collection persisted", "op", op, "tasks", len(s.tasks))
	return nil
}

// clone returns a copy of the collection the caller may modify.
func (s *Store) clone() []Task {
	return slices.Clone(s.tasks)
}

// Add appends a task and returns it. Blank text is a no-op that returns a nil
// task. An unset priority becomes Medium; an invalid one fails with
// ErrInvalidPriority and leaves the collection unchanged.
func (s *Store) Add(text string, due DueDate, priority Priority) (*Task, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if priority == "" {
		priority = DefaultPriority
	}
	if !priority.Valid() {
		return nil, invalidPriority(string(priority))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := Task{
		ID:        s.newID(),
		Text:      text,
		DueDate:   due,
		Priority:  priority,
		CreatedAt: s.nextCreatedAt(),
	}
	s.logger.Debug("task added", "id", t.ID, "priority", string(priority))
	return &t, s.commit(append(s.clone(), t), "add")
}

// Edit replaces the text of every task whose text equals matchText and
// returns how many changed. A blank newText is a no-op.
func (s *Store) Edit(matchText, newText string) (int, error) {
	if strings.TrimSpace(newText) == "" {
		return 0, nil
	}
	return s.update("edit", func(t *Task) bool {
		if t.Text != matchText {
			return false
		}
		t.Text = newText
		return true
	})
}

// Delete removes every task whose text equals matchText and returns how
// many were removed.
func (s *Store) Delete(matchText string) (int, error) {
	return s.remove("delete", func(t Task) bool { return t.Text == matchText })
}

// SetDueDate sets newDueDate on every task whose current due date equals
// matchDueDate, including Absent matching Absent. Tasks sharing a due date
// change together; use SetDueDateByID to address one task.
func (s *Store) SetDueDate(matchDueDate, newDueDate DueDate) (int, error) {
	return s.update("set_due_date", func(t *Task) bool {
		if !t.DueDate.Equal(matchDueDate) {
			return false
		}
		t.DueDate = newDueDate
		return true
	})
}

// SetPriority sets p on every task whose text equals matchText. An invalid p
// fails with ErrInvalidPriority and leaves the collection unchanged.
func (s *Store) SetPriority(matchText string, p Priority) (int, error) {
	if !p.Valid() {
		return 0, invalidPriority(string(p))
	}
	return s.update("set_priority", func(t *Task) bool {
		if t.Text != matchText {
			return false
		}
		t.Priority = p
		return true
	})
}

// Get returns the task with the given ID.
func (s *Store) Get(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// EditByID replaces one task's text. A blank newText is a no-op.
func (s *Store) EditByID(id, newText string) (bool, error) {
	if strings.TrimSpace(newText) == "" {
		return false, nil
	}
	n, err := s.update("edit", func(t *Task) bool {
		if t.ID != id {
			return false
		}
		t.Text = newText
		return true
	})
	return n > 0, err
}

// DeleteByID removes one task.
func (s *Store) DeleteByID(id string) (bool, error) {
	n, err := s.remove("delete", func(t Task) bool { return t.ID == id })
	return n > 0, err
}

// SetDueDateByID sets one task's due date.
func (s *Store) SetDueDateByID(id string, due DueDate) (bool, error) {
	n, err := s.update("set_due_date", func(t *Task) bool {
		if t.ID != id {
			return false
		}
		t.DueDate = due
		return true
	})
	return n > 0, err
}

// SetPriorityByID sets one task's priority. An invalid p fails with
// ErrInvalidPriority.
func (s *Store) SetPriorityByID(id string, p Priority) (bool, error) {
	if !p.Valid() {
		return false, invalidPriority(string(p))
	}
	n, err := s.update("set_priority", func(t *Task) bool {
		if t.ID != id {
			return false
		}
		t.Priority = p
		return true
	})
	return n > 0, err
}

// Import appends tasks in order and persists once. Tasks with blank text are
// skipped; missing IDs, CreatedAt stamps and priorities are filled in, and
// IDs that collide with existing tasks are replaced. Any invalid priority
// fails the whole import with ErrInvalidPriority.
func (s *Store) Import(tasks []Task) (int, error) {
	for _, t := range tasks {
		if t.Priority != "" && !t.Priority.Valid() {
			return 0, invalidPriority(string(t.Priority))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(s.tasks)+len(tasks))
	for _, t := range s.tasks {
		seen[t.ID] = true
	}

	next := s.clone()
	added := 0
	for _, t := range tasks {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		if t.Priority == "" {
			t.Priority = DefaultPriority
		}
		if t.CreatedAt > s.lastCreated {
			s.lastCreated = t.CreatedAt
		}
		s.normalize(&t, seen)
		next = append(next, t)
		added++
	}
	if added == 0 {
		return 0, nil
	}

	s.logger.Info("tasks imported", "count", added)
	return added, s.commit(next, "import")
}

// update applies fn to a copy of every task and commits if any returned true.
func (s *Store) update(op string, fn func(*Task) bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.clone()
	changed := 0
	for i := range next {
		if fn(&next[i]) {
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}

	s.logger.Debug("tasks updated", "op", op, "count", changed)
	return changed, s.commit(next, op)
}

// remove drops every task for which match returns true.
func (s *Store) remove(op string, match func(Task) bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !match(t) {
			next = append(next, t)
		}
	}
	removed := len(s.tasks) - len(next)
	if removed == 0 {
		return 0, nil
	}

	s.logger.Debug("tasks removed", "op", op, "count", removed)
	return removed, s.commit(next, op)
}
