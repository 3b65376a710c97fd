package services

import (
	"testing"

	"college-cms/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payrollRecord(dept, month, basic, deductions, net string) *models.PayrollRecord {
	return &models.PayrollRecord{
		Department:  dept,
		PayMonth:    month,
		BasicSalary: decimal.RequireFromString(basic),
		Deductions:  decimal.RequireFromString(deductions),
		NetSalary:   decimal.RequireFromString(net),
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, 0, summary.TotalEmployees)
	assert.True(t, summary.TotalPayroll.IsZero())
	assert.True(t, summary.AverageSalary.IsZero())
	assert.True(t, summary.TotalDeductions.IsZero())
	assert.True(t, summary.NetPayroll.IsZero())
	assert.Empty(t, summary.DepartmentBreakdown)
	assert.Empty(t, summary.MonthlyTrend)
}

func TestSummarizeTotals(t *testing.T) {
	records := []*models.PayrollRecord{
		payrollRecord("Computer Science", "2025-07", "50000", "16420.45", "33579.55"),
		payrollRecord("Computer Science", "2025-07", "80000", "26272.73", "53727.27"),
		payrollRecord("Mathematics", "2025-07", "60000", "19704.55", "40295.45"),
	}

	summary := Summarize(records)

	assert.Equal(t, 3, summary.TotalEmployees)
	assertMoney(t, "190000", summary.TotalPayroll)
	assertMoney(t, "63333.33", summary.AverageSalary)
	assertMoney(t, "62397.73", summary.TotalDeductions)
	assertMoney(t, "127602.27", summary.NetPayroll)
}

func TestSummarizeDepartmentBreakdown(t *testing.T) {
	records := []*models.PayrollRecord{
		payrollRecord("Mathematics", "2025-07", "60000", "19704.55", "40295.45"),
		payrollRecord("Computer Science", "2025-07", "50000", "16420.45", "33579.55"),
		payrollRecord("Computer Science", "2025-07", "80000", "26272.73", "53727.27"),
	}

	summary := Summarize(records)

	require.Len(t, summary.DepartmentBreakdown, 2)

	// Sorted by department name.
	cse := summary.DepartmentBreakdown[0]
	assert.Equal(t, "Computer Science", cse.Department)
	assert.Equal(t, 2, cse.EmployeeCount)
	assertMoney(t, "130000", cse.TotalSalary)
	assertMoney(t, "65000.00", cse.AverageSalary)

	math := summary.DepartmentBreakdown[1]
	assert.Equal(t, "Mathematics", math.Department)
	assert.Equal(t, 1, math.EmployeeCount)
	assertMoney(t, "60000", math.TotalSalary)
}

func TestSummarizeMonthlyTrendSortedChronologically(t *testing.T) {
	records := []*models.PayrollRecord{
		payrollRecord("Computer Science", "2025-07", "50000", "16420.45", "33579.55"),
		payrollRecord("Computer Science", "2024-12", "50000", "16420.45", "33579.55"),
		payrollRecord("Computer Science", "2025-01", "50000", "16420.45", "33579.55"),
		payrollRecord("Computer Science", "2025-01", "80000", "26272.73", "53727.27"),
	}

	summary := Summarize(records)

	require.Len(t, summary.MonthlyTrend, 3)
	assert.Equal(t, "2024-12", summary.MonthlyTrend[0].PayMonth)
	assert.Equal(t, "2025-01", summary.MonthlyTrend[1].PayMonth)
	assert.Equal(t, "2025-07", summary.MonthlyTrend[2].PayMonth)

	assertMoney(t, "87306.82", summary.MonthlyTrend[1].TotalPayroll)
}
