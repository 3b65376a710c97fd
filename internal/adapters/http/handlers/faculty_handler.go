package handlers

import (
	"errors"

	"college-cms/internal/adapters/persistence/models"
	"college-cms/internal/adapters/persistence/repositories"
	"college-cms/internal/core/domain"
	"college-cms/internal/pkg/pagination"
	"college-cms/internal/pkg/response"
	"college-cms/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FacultyHandler handles faculty roster and attendance endpoints
type FacultyHandler struct {
	facultyRepo    repositories.FacultyRepository
	attendanceRepo repositories.AttendanceRepository
}

// NewFacultyHandler creates a new faculty handler
func NewFacultyHandler(facultyRepo repositories.FacultyRepository, attendanceRepo repositories.AttendanceRepository) *FacultyHandler {
	return &FacultyHandler{
		facultyRepo:    facultyRepo,
		attendanceRepo: attendanceRepo,
	}
}

// CreateFacultyRequest represents faculty creation request body
type CreateFacultyRequest struct {
	EmployeeNo   string          `json:"employee_no" validate:"required"`
	FullName     string          `json:"full_name" validate:"required"`
	Designation  string          `json:"designation" validate:"required"`
	DepartmentID uint            `json:"department_id" validate:"required"`
	BasicSalary  decimal.Decimal `json:"basic_salary" validate:"required"`
}

// UpdateFacultyRequest represents faculty update request body
type UpdateFacultyRequest struct {
	FullName    *string          `json:"full_name"`
	Designation *string          `json:"designation"`
	BasicSalary *decimal.Decimal `json:"basic_salary"`
	IsActive    *bool            `json:"is_active"`
}

// AttendanceRequest represents attendance upsert request body
type AttendanceRequest struct {
	FacultyID   uint   `json:"faculty_id" validate:"required"`
	Month       string `json:"month" validate:"required"`
	TotalDays   *int   `json:"total_days" validate:"required"`
	PresentDays *int   `json:"present_days" validate:"required"`
}

// List lists faculty with pagination
func (h *FacultyHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	faculties, total, err := h.facultyRepo.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list faculty")
	}

	return response.Success(c, "Faculty retrieved", pagination.NewResponse(faculties, params, total))
}

// Get returns one faculty member
func (h *FacultyHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid faculty ID")
	}

	faculty, err := h.facultyRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Faculty not found")
		}
		return response.InternalServerError(c, "Failed to get faculty")
	}

	return response.Success(c, "Faculty retrieved", faculty)
}

// Create adds a faculty member to the roster
func (h *FacultyHandler) Create(c *fiber.Ctx) error {
	var req CreateFacultyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if fields := validation.FailingFields(req); len(fields) > 0 {
		return response.BadRequest(c, (&domain.ValidationError{Fields: fields}).Error())
	}
	if !req.BasicSalary.IsPositive() {
		return response.BadRequest(c, "Basic salary must be positive")
	}

	faculty := &models.Faculty{
		EmployeeNo:   req.EmployeeNo,
		FullName:     req.FullName,
		Designation:  req.Designation,
		DepartmentID: req.DepartmentID,
		BasicSalary:  req.BasicSalary,
		IsActive:     true,
	}

	if err := h.facultyRepo.Create(c.Context(), faculty); err != nil {
		return response.InternalServerError(c, "Failed to create faculty")
	}

	return response.Created(c, "Faculty created successfully", faculty)
}

// Update modifies a faculty member's roster entry
func (h *FacultyHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid faculty ID")
	}

	faculty, err := h.facultyRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Faculty not found")
		}
		return response.InternalServerError(c, "Failed to get faculty")
	}

	var req UpdateFacultyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.FullName != nil {
		faculty.FullName = *req.FullName
	}
	if req.Designation != nil {
		faculty.Designation = *req.Designation
	}
	if req.BasicSalary != nil {
		if !req.BasicSalary.IsPositive() {
			return response.BadRequest(c, "Basic salary must be positive")
		}
		faculty.BasicSalary = *req.BasicSalary
	}
	if req.IsActive != nil {
		faculty.IsActive = *req.IsActive
	}

	if err := h.facultyRepo.Update(c.Context(), faculty); err != nil {
		return response.InternalServerError(c, "Failed to update faculty")
	}

	return response.Success(c, "Faculty updated successfully", faculty)
}

// Departments lists active departments
func (h *FacultyHandler) Departments(c *fiber.Ctx) error {
	departments, err := h.facultyRepo.ListDepartments(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list departments")
	}

	return response.Success(c, "Departments retrieved", departments)
}

// UpsertAttendance creates or replaces a monthly attendance summary
func (h *FacultyHandler) UpsertAttendance(c *fiber.Ctx) error {
	var req AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if fields := validation.FailingFields(req); len(fields) > 0 {
		return response.BadRequest(c, (&domain.ValidationError{Fields: fields}).Error())
	}

	month, err := domain.ParsePayMonth(req.Month)
	if err != nil {
		return response.BadRequest(c, "Invalid month, use YYYY-MM")
	}

	totalDays, presentDays := *req.TotalDays, *req.PresentDays
	if totalDays <= 0 || presentDays < 0 || presentDays > totalDays {
		return response.BadRequest(c, (&domain.InvalidAttendanceError{TotalDays: totalDays, PresentDays: presentDays}).Error())
	}

	if _, err := h.facultyRepo.GetByID(c.Context(), req.FacultyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Faculty not found")
		}
		return response.InternalServerError(c, "Failed to get faculty")
	}

	summary := &models.AttendanceSummary{
		FacultyID:   req.FacultyID,
		Month:       month,
		TotalDays:   totalDays,
		PresentDays: presentDays,
	}

	if err := h.attendanceRepo.Upsert(c.Context(), summary); err != nil {
		return response.InternalServerError(c, "Failed to save attendance")
	}

	return response.Success(c, "Attendance saved successfully", summary)
}

// AttendanceByMonth lists attendance summaries for one month
func (h *FacultyHandler) AttendanceByMonth(c *fiber.Ctx) error {
	month, err := domain.ParsePayMonth(c.Query("month"))
	if err != nil {
		return response.BadRequest(c, "Invalid month, use YYYY-MM")
	}

	summaries, err := h.attendanceRepo.ListByMonth(c.Context(), month)
	if err != nil {
		return response.InternalServerError(c, "Failed to list attendance")
	}

	return response.Success(c, "Attendance retrieved", summaries)
}
