package services

import (
	"context"
	"testing"
	"time"

	"college-cms/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMonthlyPayrollGeneratesForActiveFaculty(t *testing.T) {
	svc, payrollRepo, facultyRepo, attendanceRepo, _ := newTestPayrollService()
	cronSvc := NewCronService(svc, facultyRepo, nil)

	// Run on Aug 1st covers July.
	now := time.Date(2025, time.August, 1, 9, 0, 0, 0, time.UTC)

	facultyRepo.add(1, "FAC001", "50000", true)
	facultyRepo.add(2, "FAC002", "80000", true)
	facultyRepo.add(3, "FAC003", "60000", false)
	attendanceRepo.add(1, "2025-07", 22, 20)
	attendanceRepo.add(2, "2025-07", 22, 22)

	cronSvc.RunMonthlyPayroll(context.Background(), now)

	all, err := payrollRepo.ListAll(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, record := range all {
		assert.Equal(t, "2025-07", record.PayMonth)
		assert.Equal(t, string(domain.StatusPending), record.Status)
		assert.NotEqual(t, "FAC003", record.EmployeeNo)
	}
}

func TestRunMonthlyPayrollSkipsExistingRecords(t *testing.T) {
	svc, payrollRepo, facultyRepo, attendanceRepo, _ := newTestPayrollService()
	cronSvc := NewCronService(svc, facultyRepo, nil)

	facultyRepo.add(1, "FAC001", "50000", true)
	attendanceRepo.add(1, "2025-07", 22, 20)

	_, err := svc.Generate(context.Background(), 1, "2025-07")
	require.NoError(t, err)

	now := time.Date(2025, time.August, 1, 9, 0, 0, 0, time.UTC)
	cronSvc.RunMonthlyPayroll(context.Background(), now)

	all, err := payrollRepo.ListAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRunMonthlyPayrollReportsFailures(t *testing.T) {
	svc, payrollRepo, facultyRepo, attendanceRepo, notifier := newTestPayrollService()
	cronSvc := NewCronService(svc, facultyRepo, notifier)

	// FAC002 has no attendance for July, so its generation fails.
	facultyRepo.add(1, "FAC001", "50000", true)
	facultyRepo.add(2, "FAC002", "80000", true)
	attendanceRepo.add(1, "2025-07", 22, 20)

	now := time.Date(2025, time.August, 1, 9, 0, 0, 0, time.UTC)
	cronSvc.RunMonthlyPayroll(context.Background(), now)

	all, err := payrollRepo.ListAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.Len(t, notifier.errorMsgs, 1)
	assert.Contains(t, notifier.errorMsgs[0], "FAC002")
}
