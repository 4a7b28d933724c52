package store

import (
	"fmt"

	"cafe-backend/internal/models"
)

// CreateOrder is the checkout transaction. It computes the order totals,
// decrements the stock of every referenced product and records the order.
// Stock changes and the order append happen under one lock, so no reader can
// observe one without the other.
func (s *Store) CreateOrder(in models.OrderInput) (models.Order, error) {
	if len(in.Items) == 0 {
		return models.Order{}, invalid("order has no items")
	}
	if !in.PaymentMode.Valid() {
		return models.Order{}, invalid("unknown payment mode %q", in.PaymentMode)
	}
	if in.Discount.IsNegative() {
		return models.Order{}, invalid("discount must not be negative")
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return models.Order{}, invalid("quantity for %q must be positive", it.ProductID)
		}
		if it.Price.IsNegative() {
			return models.Order{}, invalid("price for %q must not be negative", it.ProductID)
		}
	}

	totals := models.ComputeTotals(in.Items, in.Discount)
	if totals.Total.IsNegative() {
		return models.Order{}, invalid("discount exceeds order amount")
	}

	// quantity per product, the same product may appear on several lines;
	// products are checked in the order they first appear
	demand := make(map[string]int, len(in.Items))
	var productIDs []string
	for _, it := range in.Items {
		if _, seen := demand[it.ProductID]; !seen {
			productIDs = append(productIDs, it.ProductID)
		}
		demand[it.ProductID] += it.Quantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := make(map[string]int, len(demand))
	for _, id := range productIDs {
		i := s.productIndex(id)
		if i < 0 {
			return models.Order{}, invalid("unknown product %q", id)
		}
		if s.products[i].Stock < demand[id] {
			return models.Order{}, fmt.Errorf("%w: %s has %d, requested %d",
				ErrInsufficientStock, s.products[i].Name, s.products[i].Stock, demand[id])
		}
		idx[id] = i
	}

	items := make([]models.OrderItem, len(in.Items))
	copy(items, in.Items)

	order := models.Order{
		ID:          s.ids.NewID(prefixOrder),
		Items:       items,
		SubTotal:    totals.SubTotal,
		Tax:         totals.Tax,
		Discount:    in.Discount,
		Total:       totals.Total,
		PaymentMode: in.PaymentMode,
		CreatedAt:   s.clock(),
	}

	for id, qty := range demand {
		s.products[idx[id]].Stock -= qty
	}
	s.orders = append(s.orders, order)

	return order.Clone(), nil
}
