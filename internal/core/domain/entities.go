package domain

import (
	"fmt"
	"time"
)

// Role represents user role in the system
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleHR      Role = "HR"
	RoleFaculty Role = "FACULTY"
)

// PayrollStatus represents the lifecycle state of a payroll record
type PayrollStatus string

const (
	StatusPending   PayrollStatus = "Pending"
	StatusApproved  PayrollStatus = "Approved"
	StatusPaid      PayrollStatus = "Paid"
	StatusCancelled PayrollStatus = "Cancelled"
)

// IsTerminal reports whether no further transition is allowed from s.
func (s PayrollStatus) IsTerminal() bool {
	return s == StatusPaid || s == StatusCancelled
}

// allowedTransitions is the closed (from, to) table for payroll records.
// Any pair not listed here is rejected.
var allowedTransitions = map[PayrollStatus][]PayrollStatus{
	StatusPending:  {StatusApproved, StatusCancelled},
	StatusApproved: {StatusPaid, StatusCancelled},
}

// CanTransition reports whether from -> to is a legal payroll transition.
func CanTransition(from, to PayrollStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PayrollFilter narrows payroll listings and report queries. Empty fields
// match everything.
type PayrollFilter struct {
	PayMonth   string
	Status     string
	Department string
}

// PayMonthLayout is the wire format for a pay month (year-month granularity).
const PayMonthLayout = "2006-01"

// ParsePayMonth validates a "YYYY-MM" pay month string and returns it normalized.
func ParsePayMonth(s string) (string, error) {
	t, err := time.Parse(PayMonthLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid pay month %q, use YYYY-MM: %w", s, err)
	}
	return t.Format(PayMonthLayout), nil
}

// PreviousPayMonth returns the month before now, formatted as "YYYY-MM".
func PreviousPayMonth(now time.Time) string {
	return now.AddDate(0, -1, 0).Format(PayMonthLayout)
}
