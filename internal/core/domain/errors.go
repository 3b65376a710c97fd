package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Payroll errors
var (
	ErrPayrollNotFound  = errors.New("payroll record not found")
	ErrDuplicatePayroll = errors.New("payroll record already exists for this faculty and month")
	ErrFacultyNotFound  = errors.New("faculty not found")
	ErrNoAttendance     = errors.New("no attendance summary for this faculty and month")
)

// ValidationError reports every missing or malformed calculator input field,
// not just the first one found.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

// InvalidAttendanceError reports attendance figures that cannot produce a
// salary breakdown (present > total, or a non-positive working-day count).
type InvalidAttendanceError struct {
	TotalDays   int
	PresentDays int
}

func (e *InvalidAttendanceError) Error() string {
	if e.TotalDays <= 0 {
		return fmt.Sprintf("total days must be positive, got %d", e.TotalDays)
	}
	return fmt.Sprintf("present days (%d) cannot exceed total days (%d)", e.PresentDays, e.TotalDays)
}

// InvalidStateTransitionError is returned when an operation's source-state
// precondition does not hold. A lost compare-and-swap race surfaces as the
// same error: both mean the record was not in the expected state.
type InvalidStateTransitionError struct {
	Current   PayrollStatus
	Operation string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a payroll record in state %s", e.Operation, e.Current)
}

// AlreadyInStateError is returned when a transition's target state is already
// the record's current state. Re-invoking a satisfied transition fails rather
// than silently succeeding, so a transition never notifies twice.
type AlreadyInStateError struct {
	Status PayrollStatus
}

func (e *AlreadyInStateError) Error() string {
	return fmt.Sprintf("payroll record is already %s", e.Status)
}
