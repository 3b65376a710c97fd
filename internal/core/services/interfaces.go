package services

import (
	"context"
	"time"

	"college-cms/internal/adapters/persistence/models"
	"college-cms/internal/core/domain"
)

// PayrollRepository is the persistence collaborator for payroll records.
// UpdateStatus must be a conditional update (status compare-and-swap), not a
// read-modify-write: the workflow relies on it as its concurrency primitive.
type PayrollRepository interface {
	Create(ctx context.Context, record *models.PayrollRecord) error
	GetByID(ctx context.Context, id uint) (*models.PayrollRecord, error)
	ExistsByFacultyAndMonth(ctx context.Context, facultyID uint, payMonth string) (bool, error)
	List(ctx context.Context, filter *domain.PayrollFilter, offset, limit int) ([]*models.PayrollRecord, int64, error)
	ListAll(ctx context.Context, filter *domain.PayrollFilter) ([]*models.PayrollRecord, error)
	ListByEmployeeNo(ctx context.Context, employeeNo string) ([]*models.PayrollRecord, error)

	// UpdateStatus sets status and the timestamp column matching next, only if
	// the record's current status still equals expected. Returns false when
	// the conditional update matched no row.
	UpdateStatus(ctx context.Context, id uint, expected, next domain.PayrollStatus, at time.Time, actorID *uint) (bool, error)
}

// FacultyRepository is the persistence collaborator for the faculty roster.
type FacultyRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Faculty, error)
	GetByEmployeeNo(ctx context.Context, employeeNo string) (*models.Faculty, error)
	ListActive(ctx context.Context) ([]*models.Faculty, error)
}

// AttendanceRepository is the persistence collaborator for attendance totals.
type AttendanceRepository interface {
	GetByFacultyAndMonth(ctx context.Context, facultyID uint, month string) (*models.AttendanceSummary, error)
}

// TransitionEvent is published by the workflow after a status change has been
// durably persisted, never before.
type TransitionEvent struct {
	Type       domain.NotificationType
	Record     *models.PayrollRecord
	ActorID    *uint
	OccurredAt time.Time
}

// TransitionPublisher consumes transition events. The notification dispatcher
// implements it; the workflow only logs a failed publish, a transition that
// persisted is reported as successful regardless.
type TransitionPublisher interface {
	PublishTransition(event TransitionEvent) error
}
