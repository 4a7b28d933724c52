// Package pos serves the till: checkout and the bills built from recorded
// orders.
package pos

import (
	"sort"
	"time"

	"cafe-backend/internal/dashboard"
	"cafe-backend/internal/models"
	"cafe-backend/internal/store"

	"github.com/shopspring/decimal"
)

type BillLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type Bill struct {
	OrderID     string             `json:"order_id"`
	CreatedAt   time.Time          `json:"created_at"`
	PaymentMode models.PaymentMode `json:"payment_mode"`
	Lines       []BillLine         `json:"lines"`
	SubTotal    decimal.Decimal    `json:"sub_total"`
	Tax         decimal.Decimal    `json:"tax"`
	Discount    decimal.Decimal    `json:"discount"`
	Total       decimal.Decimal    `json:"total"`
}

// NewBill renders an order for printing. Lines keep the price captured at
// checkout; products deleted since then show as unknown.
func NewBill(o models.Order, products []models.Product) Bill {
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	lines := make([]BillLine, 0, len(o.Items))
	for _, it := range o.Items {
		name, ok := names[it.ProductID]
		if !ok {
			name = dashboard.UnknownProduct
		}
		lines = append(lines, BillLine{
			ProductID: it.ProductID,
			Name:      name,
			Quantity:  it.Quantity,
			Price:     it.Price,
			LineTotal: it.LineTotal(),
		})
	}

	return Bill{
		OrderID:     o.ID,
		CreatedAt:   o.CreatedAt,
		PaymentMode: o.PaymentMode,
		Lines:       lines,
		SubTotal:    o.SubTotal,
		Tax:         o.Tax,
		Discount:    o.Discount,
		Total:       o.Total,
	}
}

// Bills returns a bill per order, newest first. Orders with the same
// timestamp keep reverse insertion order.
func Bills(snap store.Snapshot) []Bill {
	orders := make([]models.Order, len(snap.Orders))
	for i, o := range snap.Orders {
		orders[len(orders)-1-i] = o
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	bills := make([]Bill, 0, len(orders))
	for _, o := range orders {
		bills = append(bills, NewBill(o, snap.Products))
	}
	return bills
}
