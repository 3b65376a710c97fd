package repositories

import (
	"context"

	"college-cms/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// attendanceRepository implements AttendanceRepository interface
type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

// GetByFacultyAndMonth gets the attendance summary for one faculty and month
func (r *attendanceRepository) GetByFacultyAndMonth(ctx context.Context, facultyID uint, month string) (*models.AttendanceSummary, error) {
	var summary models.AttendanceSummary
	err := r.db.WithContext(ctx).
		Where("faculty_id = ? AND month = ?", facultyID, month).
		First(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Upsert creates or replaces the attendance summary for one faculty and month
func (r *attendanceRepository) Upsert(ctx context.Context, summary *models.AttendanceSummary) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "faculty_id"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{"total_days", "present_days", "updated_at"}),
		}).
		Create(summary).Error
}

// ListByMonth lists every attendance summary for a month
func (r *attendanceRepository) ListByMonth(ctx context.Context, month string) ([]*models.AttendanceSummary, error) {
	var summaries []*models.AttendanceSummary
	err := r.db.WithContext(ctx).
		Preload("Faculty").
		Where("month = ?", month).
		Order("faculty_id ASC").
		Find(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}
