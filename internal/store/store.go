// Package store holds the café's authoritative in-memory collections and
// the actions that mutate them. Every action runs under a single lock and
// either applies completely or leaves the store untouched.
package store

import (
	"sync"
	"time"

	"cafe-backend/internal/models"
)

// Snapshot is a point-in-time copy of every collection in insertion order.
// It shares no memory with the store.
type Snapshot struct {
	Products   []models.Product    `json:"products"`
	Suppliers  []models.Supplier   `json:"suppliers"`
	Orders     []models.Order      `json:"orders"`
	Staff      []models.Staff      `json:"staff"`
	Expenses   []models.Expense    `json:"expenses"`
	Attendance []models.Attendance `json:"attendance"`
}

// ProductByID returns the product with the given id, if it is still present.
func (s Snapshot) ProductByID(id string) (models.Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

type Store struct {
	mu sync.RWMutex

	products   []models.Product
	suppliers  []models.Supplier
	orders     []models.Order
	staff      []models.Staff
	expenses   []models.Expense
	attendance []models.Attendance

	ids   IDGenerator
	clock func() time.Time
	loc   *time.Location
}

type Option func(*Store)

// WithIDGenerator replaces the default uuid based generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

// WithClock sets the time source used for order timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.clock = now }
}

// WithLocation sets the timezone that defines calendar days for attendance.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) { s.loc = loc }
}

func New(opts ...Option) *Store {
	s := &Store{
		ids:   UUIDGenerator(),
		clock: time.Now,
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location returns the timezone used for day keys.
func (s *Store) Location() *time.Location { return s.loc }

// Now returns the store clock's current time in the store location.
func (s *Store) Now() time.Time { return s.clock().In(s.loc) }

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]models.Order, len(s.orders))
	for i, o := range s.orders {
		orders[i] = o.Clone()
	}
	return Snapshot{
		Products:   append([]models.Product(nil), s.products...),
		Suppliers:  append([]models.Supplier(nil), s.suppliers...),
		Orders:     orders,
		Staff:      append([]models.Staff(nil), s.staff...),
		Expenses:   append([]models.Expense(nil), s.expenses...),
		Attendance: append([]models.Attendance(nil), s.attendance...),
	}
}

func (s *Store) Product(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.productIndex(id); i >= 0 {
		return s.products[i], true
	}
	return models.Product{}, false
}

func (s *Store) Staff(id string) (models.Staff, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.staffIndex(id); i >= 0 {
		return s.staff[i], true
	}
	return models.Staff{}, false
}

func (s *Store) Order(id string) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o.Clone(), true
		}
	}
	return models.Order{}, false
}

func (s *Store) productIndex(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) staffIndex(id string) int {
	for i := range s.staff {
		if s.staff[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) hasSupplier(id string) bool {
	for _, sup := range s.suppliers {
		if sup.ID == id {
			return true
		}
	}
	return false
}
