package services

import (
	"context"
	"sort"
	"time"

	"college-cms/internal/adapters/persistence/models"
	"college-cms/internal/core/domain"

	"github.com/shopspring/decimal"
)

// ReportService aggregates persisted payroll records into dashboard figures.
// Summarize itself is pure; the repository-backed entry point is Dashboard.
type ReportService struct {
	payrollRepo PayrollRepository
	timeout     time.Duration
}

// NewReportService creates a new report service.
func NewReportService(payrollRepo PayrollRepository) *ReportService {
	return &ReportService{
		payrollRepo: payrollRepo,
		timeout:     DefaultWorkflowTimeout,
	}
}

// DepartmentSummary is one department's slice of a payroll summary.
type DepartmentSummary struct {
	Department    string          `json:"department"`
	EmployeeCount int             `json:"employee_count"`
	TotalSalary   decimal.Decimal `json:"total_salary"`
	AverageSalary decimal.Decimal `json:"average_salary"`
}

// MonthlyTrendPoint is total payroll for one pay month.
type MonthlyTrendPoint struct {
	PayMonth     string          `json:"pay_month"`
	TotalPayroll decimal.Decimal `json:"total_payroll"`
}

// PayrollSummary is the dashboard aggregate over a set of payroll records.
type PayrollSummary struct {
	TotalEmployees      int                 `json:"total_employees"`
	TotalPayroll        decimal.Decimal     `json:"total_payroll"`
	AverageSalary       decimal.Decimal     `json:"average_salary"`
	TotalDeductions     decimal.Decimal     `json:"total_deductions"`
	NetPayroll          decimal.Decimal     `json:"net_payroll"`
	DepartmentBreakdown []DepartmentSummary `json:"department_breakdown"`
	MonthlyTrend        []MonthlyTrendPoint `json:"monthly_trend"`
}

// Dashboard loads records matching the filter and summarizes them.
func (s *ReportService) Dashboard(ctx context.Context, filter *domain.PayrollFilter) (*PayrollSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	records, err := s.payrollRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return Summarize(records), nil
}

// Summarize computes summary statistics over a set of payroll records. It is
// pure and read-only; an empty input yields an all-zero summary, never an
// error. The monthly trend is sorted chronologically, which for "YYYY-MM"
// keys is plain string order.
func Summarize(records []*models.PayrollRecord) *PayrollSummary {
	summary := &PayrollSummary{
		TotalPayroll:        decimal.Zero,
		AverageSalary:       decimal.Zero,
		TotalDeductions:     decimal.Zero,
		NetPayroll:          decimal.Zero,
		DepartmentBreakdown: []DepartmentSummary{},
		MonthlyTrend:        []MonthlyTrendPoint{},
	}

	if len(records) == 0 {
		return summary
	}

	type deptAcc struct {
		count int
		total decimal.Decimal
	}
	departments := make(map[string]*deptAcc)
	months := make(map[string]decimal.Decimal)

	for _, r := range records {
		summary.TotalEmployees++
		summary.TotalPayroll = summary.TotalPayroll.Add(r.BasicSalary)
		summary.TotalDeductions = summary.TotalDeductions.Add(r.Deductions)
		summary.NetPayroll = summary.NetPayroll.Add(r.NetSalary)

		acc, ok := departments[r.Department]
		if !ok {
			acc = &deptAcc{total: decimal.Zero}
			departments[r.Department] = acc
		}
		acc.count++
		acc.total = acc.total.Add(r.BasicSalary)

		months[r.PayMonth] = months[r.PayMonth].Add(r.NetSalary)
	}

	count := decimal.NewFromInt(int64(summary.TotalEmployees))
	summary.AverageSalary = summary.TotalPayroll.Div(count).Round(2)

	for dept, acc := range departments {
		summary.DepartmentBreakdown = append(summary.DepartmentBreakdown, DepartmentSummary{
			Department:    dept,
			EmployeeCount: acc.count,
			TotalSalary:   acc.total,
			AverageSalary: acc.total.Div(decimal.NewFromInt(int64(acc.count))).Round(2),
		})
	}
	sort.Slice(summary.DepartmentBreakdown, func(i, j int) bool {
		return summary.DepartmentBreakdown[i].Department < summary.DepartmentBreakdown[j].Department
	})

	for month, total := range months {
		summary.MonthlyTrend = append(summary.MonthlyTrend, MonthlyTrendPoint{
			PayMonth:     month,
			TotalPayroll: total,
		})
	}
	sort.Slice(summary.MonthlyTrend, func(i, j int) bool {
		return summary.MonthlyTrend[i].PayMonth < summary.MonthlyTrend[j].PayMonth
	})

	return summary
}
