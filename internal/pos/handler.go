package pos

import (
	"fmt"
	"strings"

	"cafe-backend/internal/audit"
	"cafe-backend/internal/auth"
	"cafe-backend/internal/models"
	"cafe-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CheckoutItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CheckoutRequest struct {
	Items       []CheckoutItem     `json:"items"`
	Discount    decimal.Decimal    `json:"discount"`
	PaymentMode models.PaymentMode `json:"payment_mode"`
}

// POST /api/orders
// Prices are taken from the catalog at checkout, the client only sends
// quantities.
func CheckoutHandler(st *store.Store, trail *audit.Trail) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CheckoutRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid order payload")
		}
		if len(body.Items) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "cart is empty")
		}

		in := models.OrderInput{
			Discount:    body.Discount,
			PaymentMode: models.PaymentMode(strings.TrimSpace(string(body.PaymentMode))),
		}
		for _, it := range body.Items {
			p, ok := st.Product(it.ProductID)
			if !ok {
				return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unknown product %q", it.ProductID))
			}
			in.Items = append(in.Items, models.OrderItem{
				ProductID: p.ID,
				Quantity:  it.Quantity,
				Price:     p.Price,
			})
		}

		order, err := st.CreateOrder(in)
		if err != nil {
			return err
		}

		actor, role := auth.Actor(c)
		trail.WriteLog(audit.LogOptions{
			Actor: actor, ActorRole: role,
			EntityType: "order", EntityID: order.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("checkout %s, %d lines, total %s", order.PaymentMode, len(order.Items), order.Total.StringFixed(2)),
			After:       order,
		})

		return c.Status(fiber.StatusCreated).JSON(NewBill(order, st.Snapshot().Products))
	}
}

// GET /api/orders
func ListBillsHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(Bills(st.Snapshot()))
	}
}

// GET /api/orders/:id
func GetBillHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		order, ok := st.Order(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return c.JSON(NewBill(order, st.Snapshot().Products))
	}
}
