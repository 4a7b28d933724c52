package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"cafe-backend/internal/models"
	"cafe-backend/internal/store"
)

// UnknownProduct labels order lines whose product has since been deleted.
const UnknownProduct = "Unknown Product"

type SalesPoint struct {
	Date    string          `json:"date"`    // 2006-01-02
	Weekday string          `json:"weekday"` // Mon, Tue, ...
	Sales   decimal.Decimal `json:"sales"`
}

type BestSeller struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

// TodaySales sums the totals of orders created on now's calendar day.
func TodaySales(orders []models.Order, now time.Time) decimal.Decimal {
	return salesOn(orders, now)
}

func salesOn(orders []models.Order, day time.Time) decimal.Decimal {
	loc := day.Location()
	sum := decimal.Zero
	for _, o := range orders {
		if models.SameDay(o.CreatedAt, day, loc) {
			sum = sum.Add(o.Total)
		}
	}
	return sum
}

// LowStock returns the products at or below their threshold, in catalog order.
func LowStock(products []models.Product) []models.Product {
	out := make([]models.Product, 0)
	for _, p := range products {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out
}

// WeeklySales returns seven daily totals ending today, oldest first.
// Days without orders are reported as zero.
func WeeklySales(orders []models.Order, now time.Time) []SalesPoint {
	today := models.DayKey(now, now.Location())
	points := make([]SalesPoint, 7)
	for i := range points {
		day := today.AddDate(0, 0, i-6)
		points[i] = SalesPoint{
			Date:    day.Format("2006-01-02"),
			Weekday: day.Format("Mon"),
			Sales:   salesOn(orders, day),
		}
	}
	return points
}

// MonthlyBestSeller finds the product with the largest quantity sold in
// now's month. Ties go to the product that was sold first in order sequence.
// ok is false when nothing was sold this month.
func MonthlyBestSeller(snap store.Snapshot, now time.Time) (best BestSeller, ok bool) {
	loc := now.Location()
	qty := make(map[string]int)
	var firstSeen []string

	for _, o := range snap.Orders {
		if !models.SameMonth(o.CreatedAt, now, loc) {
			continue
		}
		for _, it := range o.Items {
			if _, seen := qty[it.ProductID]; !seen {
				firstSeen = append(firstSeen, it.ProductID)
			}
			qty[it.ProductID] += it.Quantity
		}
	}
	if len(firstSeen) == 0 {
		return BestSeller{}, false
	}

	bestID := firstSeen[0]
	for _, id := range firstSeen[1:] {
		if qty[id] > qty[bestID] {
			bestID = id
		}
	}

	name := UnknownProduct
	if p, found := snap.ProductByID(bestID); found {
		name = p.Name
	}
	return BestSeller{ProductID: bestID, Name: name, Quantity: qty[bestID]}, true
}

type Dashboard struct {
	GeneratedAt       time.Time        `json:"generated_at"`
	TodaySales        decimal.Decimal  `json:"today_sales"`
	TodayOrders       int              `json:"today_orders"`
	TotalProducts     int              `json:"total_products"`
	TotalStaff        int              `json:"total_staff"`
	WeeklySales       []SalesPoint     `json:"weekly_sales"`
	MonthlyBestSeller *BestSeller      `json:"monthly_best_seller"` // null when no sales this month
	LowStock          []models.Product `json:"low_stock"`
}

// Build computes every dashboard metric from one snapshot.
func Build(snap store.Snapshot, now time.Time) Dashboard {
	d := Dashboard{
		GeneratedAt:   now,
		TodaySales:    TodaySales(snap.Orders, now),
		TotalProducts: len(snap.Products),
		TotalStaff:    len(snap.Staff),
		WeeklySales:   WeeklySales(snap.Orders, now),
		LowStock:      LowStock(snap.Products),
	}
	for _, o := range snap.Orders {
		if models.SameDay(o.CreatedAt, now, now.Location()) {
			d.TodayOrders++
		}
	}
	if best, ok := MonthlyBestSeller(snap, now); ok {
		d.MonthlyBestSeller = &best
	}
	return d
}
