package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"college-cms/internal/core/domain"

	"github.com/robfig/cron/v3"
)

// monthlyPayrollSpec fires at 09:00 on the 1st of every month.
const monthlyPayrollSpec = "0 9 1 * *"

// CronService runs the scheduled monthly payroll generation. Each run covers
// the previous calendar month for every active faculty member; per-faculty
// failures are reported as system notifications and never stop the run.
type CronService struct {
	payrollService *PayrollService
	facultyRepo    FacultyRepository
	notifier       PayrollNotifier
	cron           *cron.Cron
}

// NewCronService creates a new cron service.
func NewCronService(payrollService *PayrollService, facultyRepo FacultyRepository, notifier PayrollNotifier) *CronService {
	return &CronService{
		payrollService: payrollService,
		facultyRepo:    facultyRepo,
		notifier:       notifier,
		cron:           cron.New(),
	}
}

// Start registers the monthly job and starts the scheduler.
func (s *CronService) Start() error {
	_, err := s.cron.AddFunc(monthlyPayrollSpec, func() {
		s.RunMonthlyPayroll(context.Background(), time.Now())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule monthly payroll job: %w", err)
	}

	s.cron.Start()
	log.Println("🚀 Cron service started (monthly payroll at 09:00 on the 1st)")
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("✅ Cron service stopped")
}

// RunMonthlyPayroll generates payroll for every active faculty member for the
// month preceding now. Already-generated records are skipped; every other
// failure is published as a PayrollError notification and counted.
func (s *CronService) RunMonthlyPayroll(ctx context.Context, now time.Time) {
	payMonth := domain.PreviousPayMonth(now)
	log.Printf("🚀 Monthly payroll run started for %s", payMonth)

	faculties, err := s.facultyRepo.ListActive(ctx)
	if err != nil {
		log.Printf("❌ Monthly payroll run aborted, cannot load faculty roster: %v", err)
		s.publishRunError(fmt.Sprintf("Monthly payroll run for %s aborted: %v", payMonth, err), map[string]interface{}{
			"pay_month": payMonth,
		})
		return
	}

	generated, skipped, failed := 0, 0, 0
	for _, faculty := range faculties {
		_, err := s.payrollService.Generate(ctx, faculty.ID, payMonth)
		switch {
		case err == nil:
			generated++
		case errors.Is(err, domain.ErrDuplicatePayroll):
			skipped++
		default:
			failed++
			log.Printf("❌ Payroll generation failed for %s (%s): %v", faculty.EmployeeNo, payMonth, err)
			s.publishRunError(
				fmt.Sprintf("Payroll generation failed for %s (%s): %v", faculty.EmployeeNo, payMonth, err),
				map[string]interface{}{
					"employee_no": faculty.EmployeeNo,
					"faculty_id":  faculty.ID,
					"pay_month":   payMonth,
				},
			)
		}
	}

	log.Printf("✅ Monthly payroll run for %s finished: %d generated, %d skipped, %d failed", payMonth, generated, skipped, failed)
}

func (s *CronService) publishRunError(message string, data map[string]interface{}) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishError(message, data); err != nil {
		log.Printf("⚠️ Failed to publish payroll error notification: %v", err)
	}
}
