package dashboard

import (
	"cafe-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// GET /api/dashboard
func Handler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(Build(st.Snapshot(), st.Now()))
	}
}
