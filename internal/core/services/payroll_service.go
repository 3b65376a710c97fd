package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"college-cms/internal/adapters/persistence/models"
	"college-cms/internal/core/domain"

	"gorm.io/gorm"
)

// PayrollNotifier is the notification surface the payroll service uses for
// non-transition events (record generated, payslip viewed, run failures).
type PayrollNotifier interface {
	PublishCalculated(record *models.PayrollRecord) error
	PublishPayslip(record *models.PayrollRecord) error
	PublishError(message string, data map[string]interface{}) error
}

// PayrollService handles payroll generation and read access. Status changes
// go through PayrollWorkflow, never through this service.
type PayrollService struct {
	payrollRepo    PayrollRepository
	facultyRepo    FacultyRepository
	attendanceRepo AttendanceRepository
	calculator     *PayrollCalculator
	notifier       PayrollNotifier
	timeout        time.Duration
}

// NewPayrollService creates a new payroll service.
func NewPayrollService(
	payrollRepo PayrollRepository,
	facultyRepo FacultyRepository,
	attendanceRepo AttendanceRepository,
	calculator *PayrollCalculator,
	notifier PayrollNotifier,
) *PayrollService {
	return &PayrollService{
		payrollRepo:    payrollRepo,
		facultyRepo:    facultyRepo,
		attendanceRepo: attendanceRepo,
		calculator:     calculator,
		notifier:       notifier,
		timeout:        DefaultWorkflowTimeout,
	}
}

// Preview computes a salary breakdown without persisting anything.
func (s *PayrollService) Preview(input ComputeInput) (*SalaryBreakdown, error) {
	return s.calculator.Compute(input)
}

// Generate computes and persists a Pending payroll record for one faculty
// member and month, then notifies the HR team. At most one record may exist
// per (faculty, month); a second call fails with ErrDuplicatePayroll.
func (s *PayrollService) Generate(ctx context.Context, facultyID uint, payMonth string) (*models.PayrollRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	payMonth, err := domain.ParsePayMonth(payMonth)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	faculty, err := s.facultyRepo.GetByID(ctx, facultyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFacultyNotFound
		}
		return nil, err
	}
	if !faculty.IsActive {
		return nil, fmt.Errorf("%w: faculty %s is inactive", domain.ErrInvalidInput, faculty.EmployeeNo)
	}

	exists, err := s.payrollRepo.ExistsByFacultyAndMonth(ctx, facultyID, payMonth)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicatePayroll
	}

	attendance, err := s.attendanceRepo.GetByFacultyAndMonth(ctx, facultyID, payMonth)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoAttendance
		}
		return nil, err
	}

	basic := faculty.BasicSalary
	breakdown, err := s.calculator.Compute(ComputeInput{
		FacultyID:   faculty.EmployeeNo,
		PayMonth:    payMonth,
		Role:        faculty.Designation,
		BasicSalary: &basic,
		TotalDays:   &attendance.TotalDays,
		PresentDays: &attendance.PresentDays,
	})
	if err != nil {
		return nil, err
	}

	record := &models.PayrollRecord{
		FacultyID:    faculty.ID,
		EmployeeNo:   faculty.EmployeeNo,
		PayMonth:     payMonth,
		Designation:  faculty.Designation,
		TotalDays:    breakdown.TotalDays,
		PresentDays:  breakdown.PresentDays,
		AbsentDays:   breakdown.AbsentDays,
		BasicSalary:  breakdown.BasicSalary,
		PerDaySalary: breakdown.PerDaySalary,
		LopAmount:    breakdown.LopAmount,
		PfAmount:     breakdown.PfAmount,
		EsiAmount:    breakdown.EsiAmount,
		TaxAmount:    breakdown.TaxAmount,
		Deductions:   breakdown.Deductions,
		NetSalary:    breakdown.NetSalary,
		RuleVersion:  breakdown.RuleVersion,
		Status:       string(domain.StatusPending),
	}
	if faculty.Department != nil {
		record.Department = faculty.Department.Name
	}

	if err := s.payrollRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	log.Printf("✅ Payroll generated for %s (%s): net %s", record.EmployeeNo, payMonth, record.NetSalary.StringFixed(2))

	if s.notifier != nil {
		if err := s.notifier.PublishCalculated(record); err != nil {
			log.Printf("⚠️ Failed to publish calculated notification for payroll %d: %v", record.ID, err)
		}
	}

	return record, nil
}

// GetByID returns one payroll record.
func (s *PayrollService) GetByID(ctx context.Context, id uint) (*models.PayrollRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPayrollNotFound
		}
		return nil, err
	}
	return record, nil
}

// List returns a page of payroll records matching the filter.
func (s *PayrollService) List(ctx context.Context, filter *domain.PayrollFilter, offset, limit int) ([]*models.PayrollRecord, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.payrollRepo.List(ctx, filter, offset, limit)
}

// GetMyPayrolls returns every payroll record for one employee, newest first.
func (s *PayrollService) GetMyPayrolls(ctx context.Context, employeeNo string) ([]*models.PayrollRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.payrollRepo.ListByEmployeeNo(ctx, employeeNo)
}

// Payslip returns a payroll record for payslip rendering and notifies the
// faculty member that their payslip is available.
func (s *PayrollService) Payslip(ctx context.Context, id uint) (*models.PayrollRecord, error) {
	record, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.PublishPayslip(record); err != nil {
			log.Printf("⚠️ Failed to publish payslip notification for payroll %d: %v", record.ID, err)
		}
	}

	return record, nil
}
