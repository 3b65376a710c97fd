package models

import (
	"time"

	"college-cms/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	EmployeeNo string         `gorm:"uniqueIndex;size:20;not null" json:"employee_no"`
	Username   string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email      string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password   string         `gorm:"size:255;not null" json:"-"`
	Role       string         `gorm:"size:20;default:'FACULTY'" json:"role"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID         uint      `json:"id"`
	EmployeeNo string    `json:"employee_no"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		EmployeeNo: u.EmployeeNo,
		Username:   u.Username,
		Email:      u.Email,
		Role:       u.Role,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Master Tables
// ============================================================

// Department represents departments table (Master)
type Department struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Code      string         `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Department) TableName() string {
	return "departments"
}

// Faculty represents the faculty roster (Master)
type Faculty struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	EmployeeNo   string          `gorm:"size:20;uniqueIndex;not null" json:"employee_no"`
	FullName     string          `gorm:"size:100;not null" json:"full_name"`
	Designation  string          `gorm:"size:100" json:"designation"`
	DepartmentID uint            `gorm:"not null;index" json:"department_id"`
	BasicSalary  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"basic_salary"`
	JoinDate     *time.Time      `gorm:"type:date" json:"join_date"`
	IsActive     bool            `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relations
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

func (Faculty) TableName() string {
	return "faculties"
}

// AttendanceSummary holds per-month attendance totals used as payroll input
type AttendanceSummary struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FacultyID   uint      `gorm:"not null;uniqueIndex:idx_attendance_faculty_month" json:"faculty_id"`
	Month       string    `gorm:"size:7;not null;uniqueIndex:idx_attendance_faculty_month" json:"month"`
	TotalDays   int       `gorm:"not null" json:"total_days"`
	PresentDays int       `gorm:"not null" json:"present_days"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Faculty *Faculty `gorm:"foreignKey:FacultyID" json:"faculty,omitempty"`
}

func (AttendanceSummary) TableName() string {
	return "attendance_summaries"
}

// ============================================================
// Payroll Table
// ============================================================

// PayrollRecord is one faculty member's computed pay data for one month.
// Exactly one record may exist per (faculty_id, pay_month) pair; status moves
// Pending -> Approved -> Paid, or to Cancelled from a non-terminal state, and
// nothing outside the workflow service writes the status column.
type PayrollRecord struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	FacultyID   uint   `gorm:"not null;uniqueIndex:idx_payroll_faculty_month" json:"faculty_id"`
	EmployeeNo  string `gorm:"size:20;not null;index" json:"employee_no"`
	PayMonth    string `gorm:"size:7;not null;uniqueIndex:idx_payroll_faculty_month" json:"pay_month"`
	Department  string `gorm:"size:100" json:"department"`
	Designation string `gorm:"size:100" json:"designation"`

	// Attendance inputs
	TotalDays   int `gorm:"not null" json:"total_days"`
	PresentDays int `gorm:"not null" json:"present_days"`
	AbsentDays  int `gorm:"not null" json:"absent_days"`

	// Money figures, all rounded to 2 decimal places
	BasicSalary  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"basic_salary"`
	PerDaySalary decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"per_day_salary"`
	LopAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"lop_amount"`
	PfAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"pf_amount"`
	EsiAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"esi_amount"`
	TaxAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"tax_amount"`
	Deductions   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"deductions"`
	NetSalary    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"net_salary"`
	RuleVersion  string          `gorm:"size:20;not null" json:"rule_version"`

	// Lifecycle
	Status      string     `gorm:"size:20;not null;default:'Pending';index" json:"status"`
	ApprovedBy  *uint      `json:"approved_by"`
	ApprovedAt  *time.Time `json:"approved_at"`
	PaidAt      *time.Time `json:"paid_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Faculty  *Faculty `gorm:"foreignKey:FacultyID" json:"faculty,omitempty"`
	Approver *User    `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
}

func (PayrollRecord) TableName() string {
	return "payroll_records"
}

// PayrollStatus returns the record status as a domain value.
func (p *PayrollRecord) PayrollStatus() domain.PayrollStatus {
	return domain.PayrollStatus(p.Status)
}

// PayrollResponse DTO
type PayrollResponse struct {
	ID           uint            `json:"id"`
	FacultyID    uint            `json:"faculty_id"`
	EmployeeNo   string          `json:"employee_no"`
	FacultyName  string          `json:"faculty_name,omitempty"`
	PayMonth     string          `json:"pay_month"`
	Department   string          `json:"department"`
	Designation  string          `json:"designation"`
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
	Status       string          `json:"status"`
	ApprovedBy   *uint           `json:"approved_by"`
	ApprovedAt   *time.Time      `json:"approved_at"`
	PaidAt       *time.Time      `json:"paid_at"`
	CancelledAt  *time.Time      `json:"cancelled_at"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (p *PayrollRecord) ToResponse() *PayrollResponse {
	resp := &PayrollResponse{
		ID:           p.ID,
		FacultyID:    p.FacultyID,
		EmployeeNo:   p.EmployeeNo,
		PayMonth:     p.PayMonth,
		Department:   p.Department,
		Designation:  p.Designation,
		TotalDays:    p.TotalDays,
		PresentDays:  p.PresentDays,
		AbsentDays:   p.AbsentDays,
		BasicSalary:  p.BasicSalary,
		PerDaySalary: p.PerDaySalary,
		LopAmount:    p.LopAmount,
		PfAmount:     p.PfAmount,
		EsiAmount:    p.EsiAmount,
		TaxAmount:    p.TaxAmount,
		Deductions:   p.Deductions,
		NetSalary:    p.NetSalary,
		RuleVersion:  p.RuleVersion,
		Status:       p.Status,
		ApprovedBy:   p.ApprovedBy,
		ApprovedAt:   p.ApprovedAt,
		PaidAt:       p.PaidAt,
		CancelledAt:  p.CancelledAt,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}

	if p.Faculty != nil {
		resp.FacultyName = p.Faculty.FullName
	}

	return resp
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Department{},
		&Faculty{},
		&AttendanceSummary{},
		&PayrollRecord{},
	)
}
