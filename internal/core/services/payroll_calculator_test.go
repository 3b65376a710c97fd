package services

import (
	"testing"

	"college-cms/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func computeInput(basic string, total, present int) ComputeInput {
	b := decimal.RequireFromString(basic)
	return ComputeInput{
		FacultyID:   "FAC001",
		PayMonth:    "2025-07",
		Role:        "Assistant Professor",
		BasicSalary: &b,
		TotalDays:   &total,
		PresentDays: &present,
	}
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestComputeStandardBreakdown(t *testing.T) {
	calc := NewPayrollCalculator(DefaultRuleSet())

	breakdown, err := calc.Compute(computeInput("50000", 22, 20))
	require.NoError(t, err)

	assert.Equal(t, 2, breakdown.AbsentDays)
	assertMoney(t, "50000.00", breakdown.BasicSalary)
	assertMoney(t, "2272.73", breakdown.PerDaySalary)
	assertMoney(t, "4545.45", breakdown.LopAmount)
	assertMoney(t, "6000.00", breakdown.PfAmount)
	assertMoney(t, "875.00", breakdown.EsiAmount)
	assertMoney(t, "5000.00", breakdown.TaxAmount)
	assertMoney(t, "16420.45", breakdown.Deductions)
	assertMoney(t, "33579.55", breakdown.NetSalary)
	assert.Equal(t, DefaultRuleVersion, breakdown.RuleVersion)
}

func TestComputeNetPlusDeductionsEqualsBasic(t *testing.T) {
	calc := NewPayrollCalculator(DefaultRuleSet())

	for _, tc := range []struct {
		basic          string
		total, present int
	}{
		{"50000", 22, 20},
		{"80000", 22, 22},
		{"33333.33", 30, 17},
		{"64999.99", 31, 1},
	} {
		breakdown, err := calc.Compute(computeInput(tc.basic, tc.total, tc.present))
		require.NoError(t, err)

		sum := breakdown.NetSalary.Add(breakdown.Deductions)
		assert.True(t, sum.Equal(breakdown.BasicSalary),
			"basic %s: net %s + deductions %s = %s", tc.basic, breakdown.NetSalary, breakdown.Deductions, sum)
	}
}

func TestComputeDeterministic(t *testing.T) {
	calc := NewPayrollCalculator(DefaultRuleSet())

	first, err := calc.Compute(computeInput("61234.56", 26, 23))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := calc.Compute(computeInput("61234.56", 26, 23))
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestComputeFullAttendanceHasNoLop(t *testing.T) {
	calc := NewPayrollCalculator(DefaultRuleSet())

	breakdown, err := calc.Compute(computeInput("50000", 22, 22))
	require.NoError(t, err)

	assert.True(t, breakdown.LopAmount.IsZero())
}

func TestComputeZeroPresentDaysIsValid(t *testing.T) {
	calc := NewPayrollCalculator(DefaultRuleSet())

	breakdown, err := calc.Compute(computeInput("50000", 22, 0))
	require.NoError(t, err)

	// Whole salary lost to absence on top of the percentage deductions.
	assertMoney(t, "50000.00", breakdown.LopAmount)
}

func TestComputeReportsEveryMissingField(t *testing.T) {
	calc := NewPayrollCalculator(DefaultRuleSet())

	_, err := calc.Compute(ComputeInput{})
	require.Error(t, err)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.ElementsMatch(t,
		[]string{"faculty_id", "pay_month", "role", "basic_salary", "total_days", "present_days"},
		validationErr.Fields)
}

func TestComputeReportsOnlyMissingFields(t *testing.T) {
	calc := NewPayrollCalculator(DefaultRuleSet())

	input := computeInput("50000", 22, 20)
	input.PayMonth = ""
	input.BasicSalary = nil

	_, err := calc.Compute(input)
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.ElementsMatch(t, []string{"pay_month", "basic_salary"}, validationErr.Fields)
}

func TestComputeRejectsInvalidAttendance(t *testing.T) {
	calc := NewPayrollCalculator(DefaultRuleSet())

	for _, tc := range []struct {
		name           string
		total, present int
	}{
		{"present exceeds total", 22, 23},
		{"zero total days", 0, 0},
		{"negative total days", -1, 0},
		{"negative present days", 22, -1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := calc.Compute(computeInput("50000", tc.total, tc.present))

			var attendanceErr *domain.InvalidAttendanceError
			require.ErrorAs(t, err, &attendanceErr)
			assert.Equal(t, tc.total, attendanceErr.TotalDays)
			assert.Equal(t, tc.present, attendanceErr.PresentDays)
		})
	}
}

func TestComputeRejectsNonPositiveSalary(t *testing.T) {
	calc := NewPayrollCalculator(DefaultRuleSet())

	for _, basic := range []string{"0", "-50000"} {
		_, err := calc.Compute(computeInput(basic, 22, 20))

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, []string{"basic_salary"}, validationErr.Fields)
	}
}

func TestRuleSetRegistry(t *testing.T) {
	rs, ok := RuleSetByVersion(DefaultRuleVersion)
	require.True(t, ok)
	assert.Equal(t, DefaultRuleVersion, rs.Version)

	_, ok = RuleSetByVersion("1999.9")
	assert.False(t, ok)
}
