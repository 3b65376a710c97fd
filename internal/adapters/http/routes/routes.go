package routes

import (
	"os"

	"college-cms/internal/adapters/http/handlers"
	"college-cms/internal/adapters/http/middleware"
	"college-cms/internal/adapters/persistence/repositories"
	"college-cms/internal/config"
	"college-cms/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application and returns the background
// services main needs to manage (cron scheduler, notification store).
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) (*services.CronService, *services.NotificationService) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	facultyRepo := repositories.NewFacultyRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	payrollRepo := repositories.NewPayrollRepository(db)

	// Notification store with optional webhook delivery
	channels := []services.DeliveryChannel{services.LogChannel{}}
	if url := os.Getenv("NOTIFY_WEBHOOK_URL"); url != "" {
		channels = append(channels, services.NewWebhookChannel(url))
	}
	notificationService := services.NewNotificationService(services.DefaultLogCapacity, channels...)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, facultyRepo, cfg)
	userService := services.NewUserService(userRepo)
	calculator := services.NewPayrollCalculator(services.DefaultRuleSet())
	payrollService := services.NewPayrollService(payrollRepo, facultyRepo, attendanceRepo, calculator, notificationService)
	workflow := services.NewPayrollWorkflow(payrollRepo, notificationService)
	bulkApproval := services.NewBulkApprovalCoordinator(workflow)
	reportService := services.NewReportService(payrollRepo)
	cronService := services.NewCronService(payrollService, facultyRepo, notificationService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	payrollHandler := handlers.NewPayrollHandler(payrollService, workflow, bulkApproval)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	dashboardHandler := handlers.NewDashboardHandler(reportService)
	facultyHandler := handlers.NewFacultyHandler(facultyRepo, attendanceRepo)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.Health)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (stricter rate limit)
	auth := apiV1.Group("/auth")
	auth.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/logout-all", middleware.AuthMiddleware(cfg), authHandler.LogoutAll)
	auth.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// Everything below requires authentication
	protected := apiV1.Group("", middleware.AuthMiddleware(cfg))

	// Profile routes (self)
	profile := protected.Group("/profile")
	profile.Put("", userHandler.UpdateProfile)
	profile.Put("/password", userHandler.ChangePassword)

	// User management routes (admin)
	users := protected.Group("/users", middleware.AdminOnly())
	users.Get("", userHandler.List)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Faculty & attendance routes (HR/admin; read open to all authenticated)
	faculty := protected.Group("/faculty")
	faculty.Get("", facultyHandler.List)
	faculty.Get("/departments", facultyHandler.Departments)
	faculty.Get("/:id", facultyHandler.Get)
	faculty.Post("", middleware.HROrAdmin(), facultyHandler.Create)
	faculty.Put("/:id", middleware.HROrAdmin(), facultyHandler.Update)

	attendance := protected.Group("/attendance", middleware.HROrAdmin())
	attendance.Get("", facultyHandler.AttendanceByMonth)
	attendance.Post("", facultyHandler.UpsertAttendance)

	// Payroll routes
	payroll := protected.Group("/payroll")
	payroll.Get("/my", payrollHandler.MyPayrolls)
	payroll.Get("/:id/payslip", payrollHandler.Payslip)
	payroll.Post("/preview", middleware.HROrAdmin(), payrollHandler.Preview)
	payroll.Post("/generate", middleware.HROrAdmin(), payrollHandler.Generate)
	payroll.Get("", middleware.HROrAdmin(), payrollHandler.List)
	payroll.Get("/:id", middleware.HROrAdmin(), payrollHandler.Get)
	payroll.Post("/:id/approve", middleware.RoleMiddleware("HR"), payrollHandler.Approve)
	payroll.Post("/:id/pay", middleware.RoleMiddleware("HR"), payrollHandler.Pay)
	payroll.Post("/:id/cancel", middleware.RoleMiddleware("HR"), payrollHandler.Cancel)
	payroll.Post("/bulk-approve", middleware.RoleMiddleware("HR"), payrollHandler.BulkApprove)

	// Notification routes
	notifications := protected.Group("/notifications")
	notifications.Get("", notificationHandler.List)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Put("/:id/read", notificationHandler.MarkAsRead)
	notifications.Delete("", notificationHandler.Clear)

	// Dashboard routes (HR/admin)
	dashboard := protected.Group("/dashboard", middleware.HROrAdmin())
	dashboard.Get("/summary", dashboardHandler.Summary)

	return cronService, notificationService
}
