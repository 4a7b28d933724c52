package models

import "github.com/shopspring/decimal"

type Product struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Price             decimal.Decimal `json:"price"`
	Stock             int             `json:"stock"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	SupplierID        string          `json:"supplier_id"`
}

// ProductInput is the payload for creating a product; the id is assigned by the store.
type ProductInput struct {
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Price             decimal.Decimal `json:"price"`
	Stock             int             `json:"stock"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	SupplierID        string          `json:"supplier_id"`
}

// IsLowStock reports whether stock has reached the reorder threshold.
func (p Product) IsLowStock() bool {
	return p.Stock <= p.LowStockThreshold
}
