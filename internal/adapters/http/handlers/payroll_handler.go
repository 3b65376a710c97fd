package handlers

import (
	"errors"
	"strconv"

	"college-cms/internal/adapters/persistence/models"
	"college-cms/internal/core/domain"
	"college-cms/internal/core/services"
	"college-cms/internal/pkg/pagination"
	"college-cms/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PayrollHandler handles payroll endpoints
type PayrollHandler struct {
	payrollService *services.PayrollService
	workflow       *services.PayrollWorkflow
	bulkApproval   *services.BulkApprovalCoordinator
}

// NewPayrollHandler creates a new payroll handler
func NewPayrollHandler(
	payrollService *services.PayrollService,
	workflow *services.PayrollWorkflow,
	bulkApproval *services.BulkApprovalCoordinator,
) *PayrollHandler {
	return &PayrollHandler{
		payrollService: payrollService,
		workflow:       workflow,
		bulkApproval:   bulkApproval,
	}
}

// GenerateRequest represents payroll generation request body
type GenerateRequest struct {
	FacultyID uint   `json:"faculty_id"`
	PayMonth  string `json:"pay_month"`
}

// BulkApproveRequest represents bulk approval request body
type BulkApproveRequest struct {
	IDs []uint `json:"ids"`
}

// Preview computes a salary breakdown without persisting it
func (h *PayrollHandler) Preview(c *fiber.Ctx) error {
	var input services.ComputeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	breakdown, err := h.payrollService.Preview(input)
	if err != nil {
		return payrollError(c, err)
	}

	return response.Success(c, "Salary breakdown computed", breakdown)
}

// Generate creates a Pending payroll record for one faculty and month
func (h *PayrollHandler) Generate(c *fiber.Ctx) error {
	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.FacultyID == 0 {
		return response.BadRequest(c, "Faculty ID is required")
	}
	if req.PayMonth == "" {
		return response.BadRequest(c, "Pay month is required")
	}

	record, err := h.payrollService.Generate(c.Context(), req.FacultyID, req.PayMonth)
	if err != nil {
		return payrollError(c, err)
	}

	return response.Created(c, "Payroll generated successfully", record.ToResponse())
}

// List lists payroll records with filters and pagination
func (h *PayrollHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	filter := &domain.PayrollFilter{
		PayMonth:   c.Query("pay_month"),
		Status:     c.Query("status"),
		Department: c.Query("department"),
	}

	records, total, err := h.payrollService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list payroll records")
	}

	responses := make([]*models.PayrollResponse, len(records))
	for i, record := range records {
		responses[i] = record.ToResponse()
	}

	return response.Success(c, "Payroll records retrieved", pagination.NewResponse(responses, params, total))
}

// Get returns one payroll record
func (h *PayrollHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid payroll ID")
	}

	record, err := h.payrollService.GetByID(c.Context(), id)
	if err != nil {
		return payrollError(c, err)
	}

	return response.Success(c, "Payroll record retrieved", record.ToResponse())
}

// MyPayrolls lists the authenticated user's own payroll records
func (h *PayrollHandler) MyPayrolls(c *fiber.Ctx) error {
	employeeNo, ok := c.Locals("employeeNo").(string)
	if !ok || employeeNo == "" {
		return response.Unauthorized(c, "Unauthorized")
	}

	records, err := h.payrollService.GetMyPayrolls(c.Context(), employeeNo)
	if err != nil {
		return response.InternalServerError(c, "Failed to list payroll records")
	}

	responses := make([]*models.PayrollResponse, len(records))
	for i, record := range records {
		responses[i] = record.ToResponse()
	}

	return response.Success(c, "Payroll records retrieved", responses)
}

// Approve moves a Pending record to Approved
func (h *PayrollHandler) Approve(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid payroll ID")
	}

	record, err := h.workflow.Approve(c.Context(), id, actorID(c))
	if err != nil {
		return payrollError(c, err)
	}

	return response.Success(c, "Payroll approved successfully", record.ToResponse())
}

// Pay moves an Approved record to Paid
func (h *PayrollHandler) Pay(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid payroll ID")
	}

	record, err := h.workflow.MarkPaid(c.Context(), id, actorID(c))
	if err != nil {
		return payrollError(c, err)
	}

	return response.Success(c, "Payroll marked as paid", record.ToResponse())
}

// Cancel moves a Pending or Approved record to Cancelled
func (h *PayrollHandler) Cancel(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid payroll ID")
	}

	record, err := h.workflow.Cancel(c.Context(), id, actorID(c))
	if err != nil {
		return payrollError(c, err)
	}

	return response.Success(c, "Payroll cancelled", record.ToResponse())
}

// BulkApprove approves a batch of records with per-item accounting
func (h *PayrollHandler) BulkApprove(c *fiber.Ctx) error {
	var req BulkApproveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if len(req.IDs) == 0 {
		return response.BadRequest(c, "At least one payroll ID is required")
	}

	result := h.bulkApproval.BulkApprove(c.Context(), req.IDs, actorID(c))

	return response.Success(c, "Bulk approval completed", result)
}

// Payslip returns a record for payslip rendering. Faculty can only view
// their own payslips; HR and admin can view any.
func (h *PayrollHandler) Payslip(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid payroll ID")
	}

	record, err := h.payrollService.GetByID(c.Context(), id)
	if err != nil {
		return payrollError(c, err)
	}

	role, _ := c.Locals("role").(string)
	employeeNo, _ := c.Locals("employeeNo").(string)
	if domain.Role(role) == domain.RoleFaculty && record.EmployeeNo != employeeNo {
		return response.Forbidden(c, "You can only view your own payslips")
	}

	record, err = h.payrollService.Payslip(c.Context(), id)
	if err != nil {
		return payrollError(c, err)
	}

	return response.Success(c, "Payslip retrieved", record.ToResponse())
}

// parseID parses the :id route parameter
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// actorID returns the authenticated user's ID, if present
func actorID(c *fiber.Ctx) *uint {
	if userID, ok := c.Locals("userID").(uint); ok {
		return &userID
	}
	return nil
}

// payrollError maps payroll domain errors onto HTTP responses
func payrollError(c *fiber.Ctx, err error) error {
	var (
		validationErr *domain.ValidationError
		attendanceErr *domain.InvalidAttendanceError
		stateErr      *domain.InvalidStateTransitionError
		alreadyErr    *domain.AlreadyInStateError
	)

	switch {
	case errors.As(err, &validationErr):
		return response.BadRequest(c, validationErr.Error())
	case errors.As(err, &attendanceErr):
		return response.BadRequest(c, attendanceErr.Error())
	case errors.As(err, &stateErr):
		return response.Conflict(c, stateErr.Error())
	case errors.As(err, &alreadyErr):
		return response.Conflict(c, alreadyErr.Error())
	case errors.Is(err, domain.ErrPayrollNotFound):
		return response.NotFound(c, "Payroll record not found")
	case errors.Is(err, domain.ErrFacultyNotFound):
		return response.NotFound(c, "Faculty not found")
	case errors.Is(err, domain.ErrNoAttendance):
		return response.BadRequest(c, "No attendance summary for this faculty and month")
	case errors.Is(err, domain.ErrDuplicatePayroll):
		return response.Conflict(c, "Payroll already exists for this faculty and month")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())
	default:
		return response.InternalServerError(c, "Payroll operation failed")
	}
}
