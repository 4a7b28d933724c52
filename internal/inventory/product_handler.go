package inventory

import (
	"strings"

	"cafe-backend/internal/audit"
	"cafe-backend/internal/auth"
	"cafe-backend/internal/dashboard"
	"cafe-backend/internal/models"
	"cafe-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Price             decimal.Decimal `json:"price"`
	Stock             int             `json:"stock"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	LowStock          bool            `json:"low_stock"`
	SupplierID        string          `json:"supplier_id"`
	SupplierName      string          `json:"supplier_name"`
}

type UpdateProductRequest struct {
	Name              *string          `json:"name"`
	Category          *string          `json:"category"`
	Price             *decimal.Decimal `json:"price"`
	Stock             *int             `json:"stock"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
	SupplierID        *string          `json:"supplier_id"`
}

func toResponse(p models.Product, suppliers []models.Supplier) ProductResponse {
	res := ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Category:          p.Category,
		Price:             p.Price,
		Stock:             p.Stock,
		LowStockThreshold: p.LowStockThreshold,
		LowStock:          p.IsLowStock(),
		SupplierID:        p.SupplierID,
	}
	for _, s := range suppliers {
		if s.ID == p.SupplierID {
			res.SupplierName = s.Name
			break
		}
	}
	return res
}

func toResponses(products []models.Product, suppliers []models.Supplier) []ProductResponse {
	res := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, toResponse(p, suppliers))
	}
	return res
}

// GET /api/products?category=Snacks&q=sam
func ListProductsHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap := st.Snapshot()
		products := Filter(snap.Products, c.Query("category"), c.Query("q"))
		return c.JSON(toResponses(products, snap.Suppliers))
	}
}

// GET /api/products/categories
func ListCategoriesHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(Categories(st.Snapshot().Products))
	}
}

// GET /api/products/low-stock
func LowStockHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap := st.Snapshot()
		return c.JSON(toResponses(dashboard.LowStock(snap.Products), snap.Suppliers))
	}
}

// GET /api/suppliers
func ListSuppliersHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(st.Snapshot().Suppliers)
	}
}

// POST /api/admin/products (Manager only)
func CreateProductHandler(st *store.Store, trail *audit.Trail) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body models.ProductInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid product payload")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Category = strings.TrimSpace(body.Category)

		p, err := st.CreateProduct(body)
		if err != nil {
			return err
		}

		actor, role := auth.Actor(c)
		trail.WriteLog(audit.LogOptions{
			Actor: actor, ActorRole: role,
			EntityType: "product", EntityID: p.ID,
			Action:      models.AuditActionCreate,
			Description: "product added: " + p.Name,
			After:       p,
		})

		return c.Status(fiber.StatusCreated).JSON(toResponse(p, st.Snapshot().Suppliers))
	}
}

// PUT /api/admin/products/:id
func UpdateProductHandler(st *store.Store, trail *audit.Trail) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid product payload")
		}

		before, saved, err := st.PatchProduct(id, func(p *models.Product) {
			if body.Name != nil {
				p.Name = strings.TrimSpace(*body.Name)
			}
			if body.Category != nil {
				p.Category = strings.TrimSpace(*body.Category)
			}
			if body.Price != nil {
				p.Price = *body.Price
			}
			if body.Stock != nil {
				p.Stock = *body.Stock
			}
			if body.LowStockThreshold != nil {
				p.LowStockThreshold = *body.LowStockThreshold
			}
			if body.SupplierID != nil {
				p.SupplierID = *body.SupplierID
			}
		})
		if err != nil {
			return err
		}

		actor, role := auth.Actor(c)
		trail.WriteLog(audit.LogOptions{
			Actor: actor, ActorRole: role,
			EntityType: "product", EntityID: id,
			Action:      models.AuditActionUpdate,
			Description: "product updated: " + saved.Name,
			Before:      before,
			After:       saved,
		})

		return c.JSON(toResponse(saved, st.Snapshot().Suppliers))
	}
}

// DELETE /api/admin/products/:id
func DeleteProductHandler(st *store.Store, trail *audit.Trail) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		before, _ := st.Product(id)

		if err := st.DeleteProduct(id); err != nil {
			return err
		}

		actor, role := auth.Actor(c)
		trail.WriteLog(audit.LogOptions{
			Actor: actor, ActorRole: role,
			EntityType: "product", EntityID: id,
			Action:      models.AuditActionDelete,
			Description: "product removed: " + before.Name,
			Before:      before,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
