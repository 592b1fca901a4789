// Package errors provides the error taxonomy for mustdo: sentinel errors,
// typed errors carrying context, and classification helpers.
//
// # Error Types
//
//   - StoreError: a Task Store operation failed against its storage slot
//   - ValidationError: invalid user input (priority, due date, glob pattern)
//
// # Usage
//
//	err := errors.NewStoreError("persist collection", errors.ErrPersistenceWrite).
//	    WithSlot("todos").WithCause(ioErr)
//
//	if errors.Is(err, errors.ErrPersistenceWrite) { ... }
//
//	var verr *errors.ValidationError
//	if errors.As(err, &verr) { ... }
//
// "Not found" conditions in the Task Store are not errors. Edit, delete and
// due-date updates that match nothing are defined as no-ops.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions so callers only import this package.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Task Store sentinel errors
var (
	// ErrInvalidPriority indicates a priority outside High, Medium, Low.
	ErrInvalidPriority = New("invalid priority")
	// ErrInvalidDueDate indicates a due date that is not dd-mm-yyyy or yyyy-mm-dd.
	ErrInvalidDueDate = New("invalid due date")
	// ErrPersistenceRead indicates the stored collection could not be read or decoded.
	ErrPersistenceRead = New("persisted collection unreadable")
	// ErrPersistenceWrite indicates the collection could not be written to its slot.
	ErrPersistenceWrite = New("persisting collection failed")
)

// Storage sentinel errors
var (
	// ErrSlotEmpty indicates the storage slot holds no value yet.
	ErrSlotEmpty = New("storage slot is empty")
	// ErrSlotLocked indicates another process holds the slot lock.
	ErrSlotLocked = New("storage slot is locked")
)

// ErrInvalidInput indicates that input validation failed.
var ErrInvalidInput = New("invalid input")

// MustdoError is implemented by every typed error in this package.
type MustdoError interface {
	error
	Unwrap() error
	Severity() Severity
	IsUserFacing() bool
}

type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Unwrap() error      { return e.cause }
func (e *baseError) Severity() Severity { return e.severity }
func (e *baseError) IsUserFacing() bool { return e.userFacing }

// StoreError reports a failed Task Store operation.
//
// Example:
//
//	err := errors.NewStoreError("persist collection", errors.ErrPersistenceWrite).WithSlot("todos")
//	fmt.Println(err) // "store error [slot=todos]: persist collection: persisting collection failed"
type StoreError struct {
	baseError
	Slot string
	// kind is the sentinel this error classifies as; cause is the underlying failure.
	kind error
}

// NewStoreError creates a StoreError of the given sentinel kind.
func NewStoreError(operation string, kind error) *StoreError {
	return &StoreError{
		baseError: baseError{
			message:    operation,
			severity:   SeverityError,
			userFacing: true,
		},
		kind: kind,
	}
}

// WithSlot adds the storage slot name to the error context.
func (e *StoreError) WithSlot(slot string) *StoreError {
	e.Slot = slot
	return e
}

// WithCause attaches the underlying failure.
func (e *StoreError) WithCause(cause error) *StoreError {
	e.cause = cause
	return e
}

// WithSeverity sets the error severity.
func (e *StoreError) WithSeverity(s Severity) *StoreError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *StoreError) Error() string {
	prefix := "store error"
	if e.Slot != "" {
		prefix = fmt.Sprintf("store error [slot=%s]", e.Slot)
	}

	msg := fmt.Sprintf("%s: %s", prefix, e.message)
	if e.kind != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.kind)
	}
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

// Is matches any *StoreError, the error's kind, or anything in its cause chain.
func (e *StoreError) Is(target error) bool {
	if _, ok := target.(*StoreError); ok {
		return true
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}
	return e.cause != nil && errors.Is(e.cause, target)
}

// ValidationError represents invalid input.
//
// Example:
//
//	err := errors.NewValidationError("unknown priority").WithField("priority").WithValue("Urgent")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is matches any *ValidationError and ErrInvalidInput, then the cause chain.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if target == ErrInvalidInput {
		return true
	}
	return e.cause != nil && errors.Is(e.cause, target)
}

// IsUserFacing returns true if the error message is safe to print as-is.
// Sentinels from this package count as user-facing.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var typed MustdoError
	if As(err, &typed) {
		return typed.IsUserFacing()
	}

	for _, sentinel := range []error{ErrInvalidPriority, ErrInvalidDueDate, ErrSlotLocked, ErrInvalidInput} {
		if Is(err, sentinel) {
			return true
		}
	}
	return false
}

// GetSeverity returns the severity of err, SeverityError for untyped errors.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var typed MustdoError
	if As(err, &typed) {
		return typed.Severity()
	}
	return SeverityError
}

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
