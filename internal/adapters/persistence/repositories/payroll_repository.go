package repositories

import (
	"context"
	"time"

	"college-cms/internal/adapters/persistence/models"
	"college-cms/internal/core/domain"

	"gorm.io/gorm"
)

// payrollRepository implements PayrollRepository interface
type payrollRepository struct {
	db *gorm.DB
}

// NewPayrollRepository creates a new payroll repository
func NewPayrollRepository(db *gorm.DB) PayrollRepository {
	return &payrollRepository{db: db}
}

// Create creates a new payroll record
func (r *payrollRepository) Create(ctx context.Context, record *models.PayrollRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// GetByID gets a payroll record by ID with its faculty
func (r *payrollRepository) GetByID(ctx context.Context, id uint) (*models.PayrollRecord, error) {
	var record models.PayrollRecord
	err := r.db.WithContext(ctx).Preload("Faculty").Where("id = ?", id).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ExistsByFacultyAndMonth checks whether a record exists for the pair
func (r *payrollRepository) ExistsByFacultyAndMonth(ctx context.Context, facultyID uint, payMonth string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PayrollRecord{}).
		Where("faculty_id = ? AND pay_month = ?", facultyID, payMonth).
		Count(&count).Error
	return count > 0, err
}

// List lists payroll records matching the filter with pagination
func (r *payrollRepository) List(ctx context.Context, filter *domain.PayrollFilter, offset, limit int) ([]*models.PayrollRecord, int64, error) {
	var records []*models.PayrollRecord
	var total int64

	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PayrollRecord{}), filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Faculty").
		Offset(offset).Limit(limit).
		Order("pay_month DESC, employee_no ASC").
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// ListAll lists every payroll record matching the filter (reports)
func (r *payrollRepository) ListAll(ctx context.Context, filter *domain.PayrollFilter) ([]*models.PayrollRecord, error) {
	var records []*models.PayrollRecord
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.PayrollRecord{}), filter).
		Order("pay_month ASC, employee_no ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListByEmployeeNo lists one employee's payroll records, newest month first
func (r *payrollRepository) ListByEmployeeNo(ctx context.Context, employeeNo string) ([]*models.PayrollRecord, error) {
	var records []*models.PayrollRecord
	err := r.db.WithContext(ctx).
		Where("employee_no = ?", employeeNo).
		Order("pay_month DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateStatus performs the conditional status update the workflow relies on.
// The WHERE clause matches both id and the expected current status; a row
// already moved by a concurrent caller matches nothing and the swap is
// reported as lost, never retried here.
func (r *payrollRepository) UpdateStatus(ctx context.Context, id uint, expected, next domain.PayrollStatus, at time.Time, actorID *uint) (bool, error) {
	updates := map[string]interface{}{
		"status":     string(next),
		"updated_at": at,
	}

	switch next {
	case domain.StatusApproved:
		updates["approved_at"] = at
		if actorID != nil {
			updates["approved_by"] = *actorID
		}
	case domain.StatusPaid:
		updates["paid_at"] = at
	case domain.StatusCancelled:
		updates["cancelled_at"] = at
	}

	tx := r.db.WithContext(ctx).
		Model(&models.PayrollRecord{}).
		Where("id = ? AND status = ?", id, string(expected)).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *payrollRepository) applyFilter(query *gorm.DB, filter *domain.PayrollFilter) *gorm.DB {
	if filter == nil {
		return query
	}
	if filter.PayMonth != "" {
		query = query.Where("pay_month = ?", filter.PayMonth)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	return query
}
