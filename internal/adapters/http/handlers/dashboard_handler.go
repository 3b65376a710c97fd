package handlers

import (
	"college-cms/internal/core/domain"
	"college-cms/internal/core/services"
	"college-cms/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	reportService *services.ReportService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(reportService *services.ReportService) *DashboardHandler {
	return &DashboardHandler{reportService: reportService}
}

// Summary returns aggregate payroll statistics for the dashboard
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	filter := &domain.PayrollFilter{
		PayMonth:   c.Query("pay_month"),
		Status:     c.Query("status"),
		Department: c.Query("department"),
	}

	summary, err := h.reportService.Dashboard(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to compute payroll summary")
	}

	return response.Success(c, "Payroll summary retrieved", summary)
}
