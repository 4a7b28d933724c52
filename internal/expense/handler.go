package expense

import (
	"strings"
	"time"

	"cafe-backend/internal/audit"
	"cafe-backend/internal/auth"
	"cafe-backend/internal/financial"
	"cafe-backend/internal/models"
	"cafe-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateExpenseRequest struct {
	Date        string          `json:"date"` // "2024-06-15", empty means today
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// GET /api/expenses?category=Rent
func ListExpensesHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		expenses := financial.RecentExpenses(st.Snapshot().Expenses)

		category := strings.TrimSpace(c.Query("category"))
		if category == "" {
			return c.JSON(expenses)
		}

		filtered := make([]models.Expense, 0, len(expenses))
		for _, e := range expenses {
			if strings.EqualFold(e.Category, category) {
				filtered = append(filtered, e)
			}
		}
		return c.JSON(filtered)
	}
}

// POST /api/admin/expenses
func CreateExpenseHandler(st *store.Store, trail *audit.Trail) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid expense payload")
		}

		date := st.Now()
		if body.Date != "" {
			d, err := time.ParseInLocation("2006-01-02", body.Date, st.Location())
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
			}
			date = d
		}

		created, err := st.CreateExpense(models.ExpenseInput{
			Description: strings.TrimSpace(body.Description),
			Amount:      body.Amount,
			Category:    strings.TrimSpace(body.Category),
			Date:        date,
		})
		if err != nil {
			return err
		}

		actor, role := auth.Actor(c)
		trail.WriteLog(audit.LogOptions{
			Actor: actor, ActorRole: role,
			EntityType: "expense", EntityID: created.ID,
			Action:      models.AuditActionCreate,
			Description: "expense recorded: " + created.Description + " " + created.Amount.StringFixed(2),
			After:       created,
		})

		return c.Status(fiber.StatusCreated).JSON(created)
	}
}
