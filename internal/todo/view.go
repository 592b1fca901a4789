package todo

import (
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/Iron-Ham/mustdo/internal/errors"
)

// sortCollection orders tasks High, Medium, Low. The sort is stable, so
// tasks of equal priority keep their relative order.
func sortCollection(tasks []Task) {
	slices.SortStableFunc(tasks, func(a, b Task) int {
		return a.Priority.rank() - b.Priority.rank()
	})
}

// AllSorted returns a copy of the collection in priority order.
func (s *Store) AllSorted() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clone()
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Search returns the tasks whose text contains query, ignoring case, in
// collection order. An empty query returns an empty result rather than the
// whole collection; callers that want "show all" use AllSorted.
func (s *Store) Search(query string) []Task {
	results := []Task{}
	if query == "" {
		return results
	}

	needle := strings.ToLower(query)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if strings.Contains(strings.ToLower(t.Text), needle) {
			results = append(results, t)
		}
	}
	return results
}

// Match returns the tasks whose whole text matches a glob pattern
// (*, ?, [a-z], {a,b}), ignoring case, in collection order.
func (s *Store) Match(pattern string) ([]Task, error) {
	g, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return nil, errors.NewValidationError("invalid glob pattern").
			WithField("pattern").
			WithValue(pattern).
			WithCause(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	results := []Task{}
	for _, t := range s.tasks {
		if g.Match(strings.ToLower(t.Text)) {
			results = append(results, t)
		}
	}
	return results, nil
}
