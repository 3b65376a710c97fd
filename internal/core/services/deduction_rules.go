package services

import (
	"github.com/shopspring/decimal"
)

// DeductionRuleSet is a named, versioned set of percentage rules applied to
// basic salary, plus the per-absent-day loss-of-pay rule. Rule sets are never
// mutated at runtime; a policy change ships as a new version so historical
// records stay interpretable under the version that produced them.
type DeductionRuleSet struct {
	Version string
	PFRate  decimal.Decimal
	ESIRate decimal.Decimal
	TaxRate decimal.Decimal
}

// DefaultRuleVersion is the rule set applied to new payroll runs.
const DefaultRuleVersion = "2024.1"

var ruleRegistry = map[string]DeductionRuleSet{
	DefaultRuleVersion: {
		Version: DefaultRuleVersion,
		PFRate:  decimal.NewFromFloat(0.12),
		ESIRate: decimal.NewFromFloat(0.0175),
		TaxRate: decimal.NewFromFloat(0.10),
	},
}

// DefaultRuleSet returns the active rule set.
func DefaultRuleSet() DeductionRuleSet {
	return ruleRegistry[DefaultRuleVersion]
}

// RuleSetByVersion looks up a historical rule set.
func RuleSetByVersion(version string) (DeductionRuleSet, bool) {
	rs, ok := ruleRegistry[version]
	return rs, ok
}

// ProvidentFund returns the PF deduction for a basic salary, unrounded.
func (r DeductionRuleSet) ProvidentFund(basic decimal.Decimal) decimal.Decimal {
	return basic.Mul(r.PFRate)
}

// EmployeeInsurance returns the ESI deduction for a basic salary, unrounded.
func (r DeductionRuleSet) EmployeeInsurance(basic decimal.Decimal) decimal.Decimal {
	return basic.Mul(r.ESIRate)
}

// IncomeTax returns the simplified tax deduction for a basic salary, unrounded.
func (r DeductionRuleSet) IncomeTax(basic decimal.Decimal) decimal.Decimal {
	return basic.Mul(r.TaxRate)
}

// LossOfPay returns the per-absent-day deduction, unrounded. The day rate is
// the basic salary spread over the month's working days.
func (r DeductionRuleSet) LossOfPay(basic decimal.Decimal, totalDays, absentDays int) decimal.Decimal {
	perDay := basic.Div(decimal.NewFromInt(int64(totalDays)))
	return perDay.Mul(decimal.NewFromInt(int64(absentDays)))
}
