package todo

import (
	"strings"

	"github.com/Iron-Ham/mustdo/internal/errors"
)

// Priority is a task's importance.
type Priority string

const (
	High   Priority = "High"
	Medium Priority = "Medium"
	Low    Priority = "Low"
)

// DefaultPriority is assigned when a task is added without a priority.
const DefaultPriority = Medium

// Priorities returns the valid priorities in collection order.
func Priorities() []Priority {
	return []Priority{High, Medium, Low}
}

// Valid reports whether p is High, Medium or Low.
func (p Priority) Valid() bool {
	switch p {
	case High, Medium, Low:
		return true
	}
	return false
}

// rank orders priorities for sorting; lower sorts first.
func (p Priority) rank() int {
	switch p {
	case High:
		return 0
	case Medium:
		return 1
	case Low:
		return 2
	default:
		return 3
	}
}

func (p Priority) String() string {
	return string(p)
}

// ParsePriority accepts High, Medium or Low in any case, plus the h, m and l
// shorthands. Anything else fails with an error matching ErrInvalidPriority.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "h":
		return High, nil
	case "medium", "m":
		return Medium, nil
	case "low", "l":
		return Low, nil
	}
	return "", invalidPriority(s)
}

func invalidPriority(value string) error {
	return errors.NewValidationError("priority must be one of High, Medium, Low").
		WithField("priority").
		WithValue(value).
		WithCause(errors.ErrInvalidPriority)
}
