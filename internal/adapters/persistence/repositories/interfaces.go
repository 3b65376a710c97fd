package repositories

import (
	"context"
	"time"

	"college-cms/internal/adapters/persistence/models"
	"college-cms/internal/core/domain"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmployeeNo(ctx context.Context, employeeNo string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByEmployeeNo(ctx context.Context, employeeNo string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// FacultyRepository defines roster access. The read side doubles as the
// payroll services' faculty collaborator.
type FacultyRepository interface {
	Create(ctx context.Context, faculty *models.Faculty) error
	GetByID(ctx context.Context, id uint) (*models.Faculty, error)
	GetByEmployeeNo(ctx context.Context, employeeNo string) (*models.Faculty, error)
	ListActive(ctx context.Context) ([]*models.Faculty, error)
	Update(ctx context.Context, faculty *models.Faculty) error
	List(ctx context.Context, offset, limit int) ([]*models.Faculty, int64, error)
	ListDepartments(ctx context.Context) ([]*models.Department, error)
}

// AttendanceRepository defines attendance summary access.
type AttendanceRepository interface {
	GetByFacultyAndMonth(ctx context.Context, facultyID uint, month string) (*models.AttendanceSummary, error)
	Upsert(ctx context.Context, summary *models.AttendanceSummary) error
	ListByMonth(ctx context.Context, month string) ([]*models.AttendanceSummary, error)
}

// PayrollRepository defines payroll record access. UpdateStatus is the
// compare-and-swap primitive the workflow service requires: a conditional
// UPDATE matching on the expected status, never a read-modify-write.
type PayrollRepository interface {
	Create(ctx context.Context, record *models.PayrollRecord) error
	GetByID(ctx context.Context, id uint) (*models.PayrollRecord, error)
	ExistsByFacultyAndMonth(ctx context.Context, facultyID uint, payMonth string) (bool, error)
	List(ctx context.Context, filter *domain.PayrollFilter, offset, limit int) ([]*models.PayrollRecord, int64, error)
	ListAll(ctx context.Context, filter *domain.PayrollFilter) ([]*models.PayrollRecord, error)
	ListByEmployeeNo(ctx context.Context, employeeNo string) ([]*models.PayrollRecord, error)
	UpdateStatus(ctx context.Context, id uint, expected, next domain.PayrollStatus, at time.Time, actorID *uint) (bool, error)
}
