package audit

import (
	"cafe-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuditLogResponse struct {
	ID          uint64             `json:"id"`
	CreatedAt   string             `json:"created_at"`
	Actor       string             `json:"actor"`
	ActorRole   models.StaffRole   `json:"actor_role"`
	EntityType  string             `json:"entity_type"`
	EntityID    string             `json:"entity_id"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
	BeforeData  string             `json:"before_data"`
	AfterData   string             `json:"after_data"`
}

// GET /api/admin/audit-logs?entity_type=product&entity_id=prod1&actor=a@b.c&limit=50
func ListAuditLogsHandler(trail *Trail) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 100)
		if limit < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "limit must not be negative")
		}

		logs := trail.List(Filter{
			EntityType: c.Query("entity_type"),
			EntityID:   c.Query("entity_id"),
			Actor:      c.Query("actor"),
			Limit:      limit,
		})

		res := make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			res = append(res, AuditLogResponse{
				ID:          l.ID,
				CreatedAt:   l.CreatedAt.Format("2006-01-02 15:04:05"),
				Actor:       l.Actor,
				ActorRole:   l.ActorRole,
				EntityType:  l.EntityType,
				EntityID:    l.EntityID,
				Action:      l.Action,
				Description: l.Description,
				BeforeData:  l.BeforeData,
				AfterData:   l.AfterData,
			})
		}
		return c.JSON(res)
	}
}
