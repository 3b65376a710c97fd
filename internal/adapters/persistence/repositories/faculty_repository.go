package repositories

import (
	"context"

	"college-cms/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// facultyRepository implements FacultyRepository interface
type facultyRepository struct {
	db *gorm.DB
}

// NewFacultyRepository creates a new faculty repository
func NewFacultyRepository(db *gorm.DB) FacultyRepository {
	return &facultyRepository{db: db}
}

// Create creates a new faculty record
func (r *facultyRepository) Create(ctx context.Context, faculty *models.Faculty) error {
	return r.db.WithContext(ctx).Create(faculty).Error
}

// GetByID gets a faculty member by ID with their department
func (r *facultyRepository) GetByID(ctx context.Context, id uint) (*models.Faculty, error) {
	var faculty models.Faculty
	err := r.db.WithContext(ctx).Preload("Department").Where("id = ?", id).First(&faculty).Error
	if err != nil {
		return nil, err
	}
	return &faculty, nil
}

// GetByEmployeeNo gets a faculty member by employee number
func (r *facultyRepository) GetByEmployeeNo(ctx context.Context, employeeNo string) (*models.Faculty, error) {
	var faculty models.Faculty
	err := r.db.WithContext(ctx).Preload("Department").Where("employee_no = ?", employeeNo).First(&faculty).Error
	if err != nil {
		return nil, err
	}
	return &faculty, nil
}

// ListActive lists every active faculty member with their department
func (r *facultyRepository) ListActive(ctx context.Context) ([]*models.Faculty, error) {
	var faculties []*models.Faculty
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("is_active = ?", true).
		Order("employee_no ASC").
		Find(&faculties).Error
	if err != nil {
		return nil, err
	}
	return faculties, nil
}

// Update updates a faculty record
func (r *facultyRepository) Update(ctx context.Context, faculty *models.Faculty) error {
	return r.db.WithContext(ctx).Save(faculty).Error
}

// List lists faculty with pagination
func (r *facultyRepository) List(ctx context.Context, offset, limit int) ([]*models.Faculty, int64, error) {
	var faculties []*models.Faculty
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Faculty{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Department").
		Offset(offset).Limit(limit).
		Order("employee_no ASC").
		Find(&faculties).Error
	if err != nil {
		return nil, 0, err
	}

	return faculties, total, nil
}

// ListDepartments lists all active departments
func (r *facultyRepository) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	var departments []*models.Department
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("code ASC").
		Find(&departments).Error
	if err != nil {
		return nil, err
	}
	return departments, nil
}
