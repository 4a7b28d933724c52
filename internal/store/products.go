package store

import (
	"fmt"

	"cafe-backend/internal/models"
)

func (s *Store) CreateProduct(in models.ProductInput) (models.Product, error) {
	if err := validateProduct(in.Name, in.Price, in.Stock, in.LowStockThreshold); err != nil {
		return models.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasSupplier(in.SupplierID) {
		return models.Product{}, invalid("unknown supplier %q", in.SupplierID)
	}

	p := models.Product{
		ID:                s.ids.NewID(prefixProduct),
		Name:              in.Name,
		Category:          in.Category,
		Price:             in.Price,
		Stock:             in.Stock,
		LowStockThreshold: in.LowStockThreshold,
		SupplierID:        in.SupplierID,
	}
	s.products = append(s.products, p)
	return p, nil
}

// UpdateProduct replaces the product with the same id. An unknown id yields
// ErrNotFound and changes nothing.
func (s *Store) UpdateProduct(p models.Product) (models.Product, error) {
	_, after, err := s.PatchProduct(p.ID, func(dst *models.Product) { *dst = p })
	return after, err
}

// PatchProduct applies edit to the current record and stores the result
// under the same lock, so stock moved by a concurrent checkout is never
// written back stale. The id cannot be changed. It returns the record
// before and after the edit.
func (s *Store) PatchProduct(id string, edit func(*models.Product)) (before, after models.Product, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(id)
	if i < 0 {
		return before, after, fmt.Errorf("product %q: %w", id, ErrNotFound)
	}

	before = s.products[i]
	after = before
	edit(&after)
	after.ID = id

	if err := validateProduct(after.Name, after.Price, after.Stock, after.LowStockThreshold); err != nil {
		return before, models.Product{}, err
	}
	if after.SupplierID != before.SupplierID && !s.hasSupplier(after.SupplierID) {
		return before, models.Product{}, invalid("unknown supplier %q", after.SupplierID)
	}

	s.products[i] = after
	return before, after, nil
}

// DeleteProduct removes the product. Orders that reference it are kept as is.
func (s *Store) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(id)
	if i < 0 {
		return fmt.Errorf("product %q: %w", id, ErrNotFound)
	}
	s.products = append(s.products[:i:i], s.products[i+1:]...)
	return nil
}
