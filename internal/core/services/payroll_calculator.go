package services

import (
	"college-cms/internal/core/domain"
	"college-cms/internal/pkg/validation"

	"github.com/shopspring/decimal"
)

// PayrollCalculator derives a salary breakdown from attendance and basic
// salary. It is pure: it never persists and never notifies.
type PayrollCalculator struct {
	rules DeductionRuleSet
}

// NewPayrollCalculator creates a calculator bound to one rule set.
func NewPayrollCalculator(rules DeductionRuleSet) *PayrollCalculator {
	return &PayrollCalculator{rules: rules}
}

// ComputeInput carries the six required calculation fields. The numeric
// fields are pointers so that an absent field and a legitimate zero
// (present_days may be 0) stay distinguishable.
type ComputeInput struct {
	FacultyID   string           `json:"faculty_id" validate:"required"`
	PayMonth    string           `json:"pay_month" validate:"required"`
	Role        string           `json:"role" validate:"required"`
	BasicSalary *decimal.Decimal `json:"basic_salary" validate:"required"`
	TotalDays   *int             `json:"total_days" validate:"required"`
	PresentDays *int             `json:"present_days" validate:"required"`
}

// SalaryBreakdown is the computed result. Every money figure is rounded
// half-up to 2 decimal places at output; intermediates are kept exact so
// the same input and rule version always reproduce the same figures.
type SalaryBreakdown struct {
	FacultyID    string          `json:"faculty_id"`
	PayMonth     string          `json:"pay_month"`
	Role         string          `json:"role"`
	TotalDays    int             `json:"total_days"`
	PresentDays  int             `json:"present_days"`
	AbsentDays   int             `json:"absent_days"`
	BasicSalary  decimal.Decimal `json:"basic_salary"`
	PerDaySalary decimal.Decimal `json:"per_day_salary"`
	LopAmount    decimal.Decimal `json:"lop_amount"`
	PfAmount     decimal.Decimal `json:"pf_amount"`
	EsiAmount    decimal.Decimal `json:"esi_amount"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	Deductions   decimal.Decimal `json:"deductions"`
	NetSalary    decimal.Decimal `json:"net_salary"`
	RuleVersion  string          `json:"rule_version"`
}

// money applies the single output rounding rule: half-up, 2 decimal places.
// decimal.Round rounds half away from zero, which is half-up for the
// non-negative figures produced here.
func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Compute validates the input and produces a salary breakdown using the
// calculator's rule set.
func (c *PayrollCalculator) Compute(input ComputeInput) (*SalaryBreakdown, error) {
	if fields := validation.FailingFields(input); len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	totalDays := *input.TotalDays
	presentDays := *input.PresentDays
	basic := *input.BasicSalary

	if totalDays <= 0 || presentDays < 0 || presentDays > totalDays {
		return nil, &domain.InvalidAttendanceError{TotalDays: totalDays, PresentDays: presentDays}
	}
	if !basic.IsPositive() {
		return nil, &domain.ValidationError{Fields: []string{"basic_salary"}}
	}

	absentDays := totalDays - presentDays
	perDay := basic.Div(decimal.NewFromInt(int64(totalDays)))
	lop := c.rules.LossOfPay(basic, totalDays, absentDays)
	pf := c.rules.ProvidentFund(basic)
	esi := c.rules.EmployeeInsurance(basic)
	tax := c.rules.IncomeTax(basic)
	deductions := money(pf.Add(esi).Add(tax).Add(lop))
	// Derived from the rounded deduction total so that net + deductions
	// always reproduces the basic salary exactly.
	net := money(basic).Sub(deductions)

	return &SalaryBreakdown{
		FacultyID:    input.FacultyID,
		PayMonth:     input.PayMonth,
		Role:         input.Role,
		TotalDays:    totalDays,
		PresentDays:  presentDays,
		AbsentDays:   absentDays,
		BasicSalary:  money(basic),
		PerDaySalary: money(perDay),
		LopAmount:    money(lop),
		PfAmount:     money(pf),
		EsiAmount:    money(esi),
		TaxAmount:    money(tax),
		Deductions:   deductions,
		NetSalary:    net,
		RuleVersion:  c.rules.Version,
	}, nil
}
