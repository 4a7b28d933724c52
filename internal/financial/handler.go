package financial

import (
	"cafe-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// GET /api/financial-summary
func SummaryHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(Summarize(st.Snapshot()))
	}
}
