package handlers

import (
	"time"

	"college-cms/internal/config"
	"college-cms/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	startedAt time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

// Root returns a minimal service banner
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return response.Success(c, "College CMS API", fiber.Map{
		"service": "college-cms",
		"status":  "running",
	})
}

// Health returns service liveness and database status
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	dbStatus := "up"
	if err := config.HealthCheck(); err != nil {
		dbStatus = "down"
	}

	return response.Success(c, "OK", fiber.Map{
		"status":   "healthy",
		"database": dbStatus,
		"uptime":   time.Since(h.startedAt).Round(time.Second).String(),
	})
}
