// Package server assembles the fiber application and its routes.
package server

import (
	"errors"
	"strings"
	"time"

	"cafe-backend/internal/audit"
	"cafe-backend/internal/auth"
	"cafe-backend/internal/config"
	"cafe-backend/internal/dashboard"
	"cafe-backend/internal/expense"
	"cafe-backend/internal/financial"
	"cafe-backend/internal/inventory"
	"cafe-backend/internal/logging"
	"cafe-backend/internal/models"
	"cafe-backend/internal/pos"
	"cafe-backend/internal/staff"
	"cafe-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

type Deps struct {
	Config   *config.Config
	Store    *store.Store
	Accounts *auth.Accounts
	Trail    *audit.Trail
	Logger   *zap.Logger
}

// statusFor maps store errors onto HTTP status codes.
func statusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, store.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, store.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, store.ErrInsufficientStock):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// errorHandler renders errors as JSON. Logging is left to the request
// middleware, which sees every error including recovered panics.
func errorHandler(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	if code == fiber.StatusInternalServerError {
		return c.Status(code).JSON(fiber.Map{
			"error": "unexpected server error",
		})
	}

	msg := err.Error()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		msg = fe.Message
	}
	return c.Status(code).JSON(fiber.Map{
		"error": msg,
	})
}

func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "cafe-backend",
		ErrorHandler: errorHandler,
	})

	app.Use(logging.Middleware(d.Logger))
	app.Use(recover.New())

	corsOrigins := strings.Split(d.Config.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	st, trail := d.Store, d.Trail

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/login", auth.LoginHandler(d.Config.JWTSecret, d.Accounts, time.Now))

	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(d.Config.JWTSecret))

	protected.Get("/auth/me", auth.MeHandler(d.Accounts))

	// Manager only
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.StaffRoleManager))

	adminRoutes.Post("/products", inventory.CreateProductHandler(st, trail))
	adminRoutes.Put("/products/:id", inventory.UpdateProductHandler(st, trail))
	adminRoutes.Delete("/products/:id", inventory.DeleteProductHandler(st, trail))

	adminRoutes.Post("/staff", staff.CreateStaffHandler(st, trail))
	adminRoutes.Put("/staff/:id", staff.UpdateStaffHandler(st, trail))
	adminRoutes.Delete("/staff/:id", staff.DeleteStaffHandler(st, trail))

	adminRoutes.Post("/expenses", expense.CreateExpenseHandler(st, trail))

	adminRoutes.Post("/accounts", auth.CreateAccountHandler(d.Accounts, trail))
	adminRoutes.Get("/accounts", auth.ListAccountsHandler(d.Accounts))

	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler(trail))

	// Catalog
	protected.Get("/suppliers", inventory.ListSuppliersHandler(st))
	protected.Get("/products", inventory.ListProductsHandler(st))
	protected.Get("/products/categories", inventory.ListCategoriesHandler(st))
	protected.Get("/products/low-stock", inventory.LowStockHandler(st))

	// Till
	protected.Post("/orders", pos.CheckoutHandler(st, trail))
	protected.Get("/orders", pos.ListBillsHandler(st))
	protected.Get("/orders/:id", pos.GetBillHandler(st))

	protected.Get("/dashboard", dashboard.Handler(st))

	// Staff
	protected.Get("/staff", staff.ListStaffHandler(st))
	protected.Get("/staff/payroll", staff.PayrollHandler(st))
	protected.Get("/attendance", staff.AttendanceSheetHandler(st))
	protected.Post("/attendance", staff.MarkAttendanceHandler(st, trail))

	// Money
	protected.Get("/financial-summary", financial.SummaryHandler(st))
	protected.Get("/expenses", expense.ListExpensesHandler(st))

	return app
}
