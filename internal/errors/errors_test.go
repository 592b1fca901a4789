package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStoreError("persist collection", ErrPersistenceWrite).WithSlot("todos").WithCause(cause)

	want := "store error [slot=todos]: persist collection: persisting collection failed: disk full"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !Is(err, ErrPersistenceWrite) {
		t.Error("should match its kind sentinel")
	}
	if !Is(err, cause) {
		t.Error("should match its cause")
	}
	if Is(err, ErrPersistenceRead) {
		t.Error("should not match an unrelated sentinel")
	}
	if err.Severity() != SeverityError {
		t.Errorf("Severity() = %v, want error", err.Severity())
	}

	wrapped := fmt.Errorf("add: %w", err)
	var storeErr *StoreError
	if !As(wrapped, &storeErr) || storeErr.Slot != "todos" {
		t.Error("As should find the StoreError through wrapping")
	}
	if !Is(wrapped, &StoreError{}) {
		t.Error("Is should match any *StoreError")
	}
}

func TestStoreError_NoSlotNoCause(t *testing.T) {
	err := NewStoreError("load collection", ErrPersistenceRead).WithSeverity(SeverityWarning)
	if err.Error() != "store error: load collection: persisted collection unreadable" {
		t.Errorf("Error() = %q", err.Error())
	}
	if GetSeverity(err) != SeverityWarning {
		t.Errorf("GetSeverity() = %v, want warning", GetSeverity(err))
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("unknown priority").WithField("priority").WithValue("Urgent").WithCause(ErrInvalidPriority)

	want := "validation error [field=priority, value=Urgent]: unknown priority: invalid priority"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !Is(err, ErrInvalidInput) {
		t.Error("ValidationError should match ErrInvalidInput")
	}
	if !Is(err, ErrInvalidPriority) {
		t.Error("ValidationError should match its cause")
	}
	if Is(err, ErrInvalidDueDate) {
		t.Error("should not match an unrelated sentinel")
	}
	if NewValidationError("bad").Error() != "validation error: bad" {
		t.Errorf("bare Error() = %q", NewValidationError("bad").Error())
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("boom"), false},
		{"validation", NewValidationError("bad"), true},
		{"store", NewStoreError("persist", ErrPersistenceWrite), true},
		{"wrapped sentinel", fmt.Errorf("x: %w", ErrInvalidPriority), true},
		{"slot locked", ErrSlotLocked, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetSeverity(t *testing.T) {
	if GetSeverity(nil) != SeverityDebug {
		t.Error("nil should be debug")
	}
	if GetSeverity(errors.New("x")) != SeverityError {
		t.Error("untyped should be error")
	}
	if GetSeverity(NewValidationError("x")) != SeverityWarning {
		t.Error("validation should be warning")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should be nil")
	}
	if Wrapf(nil, "ctx %d", 1) != nil {
		t.Error("Wrapf(nil) should be nil")
	}

	err := Wrapf(ErrSlotEmpty, "read slot %s", "todos")
	if err.Error() != "read slot todos: storage slot is empty" {
		t.Errorf("Wrapf() = %q", err.Error())
	}
	if !Is(Wrap(ErrSlotEmpty, "ctx"), ErrSlotEmpty) {
		t.Error("Wrap should preserve the chain")
	}
}
