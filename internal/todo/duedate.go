package todo

import (
	"strings"
	"time"

	"github.com/Iron-Ham/mustdo/internal/errors"
)

// DateLayout is the canonical due date format (dd-mm-yyyy).
const DateLayout = "02-01-2006"

// isoLayout is what HTML date inputs produce.
const isoLayout = "2006-01-02"

// legacyUnset is how older stores wrote a missing due date.
const legacyUnset = "NaN-NaN-NaN"

// DueDate is an optional calendar date. The zero value is Absent.
type DueDate struct {
	t time.Time
}

// NewDueDate returns the due date for the given calendar day.
func NewDueDate(year int, month time.Month, day int) DueDate {
	return DueDate{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDueDate parses dd-mm-yyyy or yyyy-mm-dd. An empty string and the
// legacy NaN-NaN-NaN marker are Absent. Other input fails with an error
// matching ErrInvalidDueDate.
func ParseDueDate(s string) (DueDate, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == legacyUnset {
		return DueDate{}, nil
	}

	for _, layout := range []string{DateLayout, isoLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return DueDate{t: t}, nil
		}
	}

	return DueDate{}, errors.NewValidationError("due date must be dd-mm-yyyy").
		WithField("dueDate").
		WithValue(s).
		WithCause(errors.ErrInvalidDueDate)
}

// IsSet reports whether the due date holds a date.
func (d DueDate) IsSet() bool {
	return !d.t.IsZero()
}

// Equal reports whether both are Absent or both are the same day.
func (d DueDate) Equal(other DueDate) bool {
	return d.t.Equal(other.t)
}

// Time returns the date at midnight UTC, or the zero time when Absent.
func (d DueDate) Time() time.Time {
	return d.t
}

// String returns dd-mm-yyyy, or "" when Absent.
func (d DueDate) String() string {
	if !d.IsSet() {
		return ""
	}
	return d.t.Format(DateLayout)
}
