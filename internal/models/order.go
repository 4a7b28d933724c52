package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMode string

const (
	PaymentModeCash PaymentMode = "Cash"
	PaymentModeCard PaymentMode = "Card"
	PaymentModeUPI  PaymentMode = "UPI"
)

func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentModeCash, PaymentModeCard, PaymentModeUPI:
		return true
	}
	return false
}

// TaxRate is applied to the order subtotal at checkout.
var TaxRate = decimal.RequireFromString("0.08")

// OrderItem carries the unit price captured when the item was rung up.
type OrderItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// LineTotal is price x quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Order struct {
	ID          string          `json:"id"`
	Items       []OrderItem     `json:"items"`
	SubTotal    decimal.Decimal `json:"sub_total"`
	Tax         decimal.Decimal `json:"tax"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
	PaymentMode PaymentMode     `json:"payment_mode"`
	CreatedAt   time.Time       `json:"created_at"`
}

// OrderInput is a checkout request. Totals are computed by the store.
type OrderInput struct {
	Items       []OrderItem     `json:"items"`
	Discount    decimal.Decimal `json:"discount"`
	PaymentMode PaymentMode     `json:"payment_mode"`
}

// OrderTotals holds the amounts derived from a list of items.
type OrderTotals struct {
	SubTotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals returns subTotal, tax and total for the given items and discount.
func ComputeTotals(items []OrderItem, discount decimal.Decimal) OrderTotals {
	sub := decimal.Zero
	for _, it := range items {
		sub = sub.Add(it.LineTotal())
	}
	tax := sub.Mul(TaxRate)
	return OrderTotals{
		SubTotal: sub,
		Tax:      tax,
		Total:    sub.Add(tax).Sub(discount),
	}
}

// Clone returns a copy that does not share the items slice.
func (o Order) Clone() Order {
	items := make([]OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}
