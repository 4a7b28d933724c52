package store

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"cafe-backend/internal/models"
)

// SeedData is a full set of collections loaded as-is, ids included.
type SeedData struct {
	Suppliers  []models.Supplier
	Products   []models.Product
	Staff      []models.Staff
	Orders     []models.Order
	Expenses   []models.Expense
	Attendance []models.Attendance
}

// Seed appends data to the store. It fails without changes if any id is
// already taken.
func (s *Store) Seed(data SeedData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{})
	claim := func(kind, id string) error {
		key := kind + "/" + id
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: duplicate %s id %q", ErrInvalidInput, kind, id)
		}
		seen[key] = struct{}{}
		return nil
	}

	for _, v := range s.suppliers {
		seen["supplier/"+v.ID] = struct{}{}
	}
	for _, v := range s.products {
		seen["product/"+v.ID] = struct{}{}
	}
	for _, v := range s.staff {
		seen["staff/"+v.ID] = struct{}{}
	}
	for _, v := range s.orders {
		seen["order/"+v.ID] = struct{}{}
	}
	for _, v := range s.expenses {
		seen["expense/"+v.ID] = struct{}{}
	}
	for _, v := range s.attendance {
		seen["attendance/"+v.ID] = struct{}{}
	}

	for _, v := range data.Suppliers {
		if err := claim("supplier", v.ID); err != nil {
			return err
		}
	}
	for _, v := range data.Products {
		if err := claim("product", v.ID); err != nil {
			return err
		}
	}
	for _, v := range data.Staff {
		if err := claim("staff", v.ID); err != nil {
			return err
		}
	}
	for _, v := range data.Orders {
		if err := claim("order", v.ID); err != nil {
			return err
		}
	}
	for _, v := range data.Expenses {
		if err := claim("expense", v.ID); err != nil {
			return err
		}
	}
	for _, v := range data.Attendance {
		if err := claim("attendance", v.ID); err != nil {
			return err
		}
	}

	s.suppliers = append(s.suppliers, data.Suppliers...)
	s.products = append(s.products, data.Products...)
	s.staff = append(s.staff, data.Staff...)
	for _, o := range data.Orders {
		s.orders = append(s.orders, o.Clone())
	}
	s.expenses = append(s.expenses, data.Expenses...)
	s.attendance = append(s.attendance, data.Attendance...)
	return nil
}

// DemoData returns the café's sample dataset with dates relative to now.
func DemoData(now time.Time) SeedData {
	d := decimal.NewFromInt
	daysAgo := func(n int) time.Time { return now.AddDate(0, 0, -n) }
	dayOfMonth := func(day int) time.Time {
		return time.Date(now.Year(), now.Month(), day, now.Hour(), now.Minute(), now.Second(), 0, now.Location())
	}
	date := func(y int, m time.Month, day int) time.Time {
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	}
	order := func(id string, mode models.PaymentMode, at time.Time, items ...models.OrderItem) models.Order {
		t := models.ComputeTotals(items, decimal.Zero)
		return models.Order{
			ID:          id,
			Items:       items,
			SubTotal:    t.SubTotal,
			Tax:         t.Tax,
			Discount:    decimal.Zero,
			Total:       t.Total,
			PaymentMode: mode,
			CreatedAt:   at,
		}
	}
	item := func(productID string, qty int, price int64) models.OrderItem {
		return models.OrderItem{ProductID: productID, Quantity: qty, Price: d(price)}
	}
	mark := func(id, staffID string, day int, status models.AttendanceStatus) models.Attendance {
		return models.Attendance{ID: id, StaffID: staffID, Date: dayOfMonth(day), Status: status}
	}

	return SeedData{
		Suppliers: []models.Supplier{
			{ID: "sup1", Name: "Fresh Teas Co.", Contact: "contact@freshteas.com"},
			{ID: "sup2", Name: "Bakery Delights", Contact: "sales@bakerydelights.com"},
			{ID: "sup3", Name: "Dairy Farms Inc.", Contact: "orders@dairyfarms.com"},
		},
		Products: []models.Product{
			{ID: "prod1", Name: "Masala Chai", Category: "Hot Teas", Price: d(20), Stock: 100, LowStockThreshold: 20, SupplierID: "sup1"},
			{ID: "prod2", Name: "Green Tea", Category: "Hot Teas", Price: d(25), Stock: 18, LowStockThreshold: 20, SupplierID: "sup1"},
			{ID: "prod3", Name: "Iced Lemon Tea", Category: "Iced Teas", Price: d(40), Stock: 60, LowStockThreshold: 15, SupplierID: "sup1"},
			{ID: "prod4", Name: "Peach Iced Tea", Category: "Iced Teas", Price: d(50), Stock: 12, LowStockThreshold: 15, SupplierID: "sup1"},
			{ID: "prod5", Name: "Samosa", Category: "Snacks", Price: d(15), Stock: 120, LowStockThreshold: 30, SupplierID: "sup2"},
			{ID: "prod6", Name: "Croissant", Category: "Snacks", Price: d(60), Stock: 10, LowStockThreshold: 10, SupplierID: "sup2"},
			{ID: "prod7", Name: "Milk Unit", Category: "Ingredients", Price: d(10), Stock: 200, LowStockThreshold: 50, SupplierID: "sup3"},
			{ID: "prod8", Name: "Sugar Unit", Category: "Ingredients", Price: d(5), Stock: 500, LowStockThreshold: 100, SupplierID: "sup3"},
		},
		Staff: []models.Staff{
			{ID: "staff1", Name: "Alice Johnson", Role: models.StaffRoleManager, Shift: "Morning", Salary: d(30000), JoinDate: date(2023, time.January, 15)},
			{ID: "staff2", Name: "Bob Williams", Role: models.StaffRoleCashier, Shift: "Morning", Salary: d(18000), JoinDate: date(2023, time.March, 1)},
			{ID: "staff3", Name: "Charlie Brown", Role: models.StaffRoleChef, Shift: "Morning", Salary: d(22000), JoinDate: date(2023, time.February, 20)},
			{ID: "staff4", Name: "Diana Miller", Role: models.StaffRoleCashier, Shift: "Evening", Salary: d(18000), JoinDate: date(2023, time.May, 10)},
		},
		Orders: []models.Order{
			order("ord1", models.PaymentModeCard, daysAgo(2), item("prod1", 2, 20), item("prod5", 1, 15)),
			order("ord2", models.PaymentModeUPI, daysAgo(1), item("prod3", 1, 40)),
			order("ord3", models.PaymentModeCash, now, item("prod2", 1, 25), item("prod6", 1, 60)),
		},
		Expenses: []models.Expense{
			{ID: "exp1", Description: "Monthly Rent", Amount: d(20000), Category: "Rent", Date: dayOfMonth(1)},
			{ID: "exp2", Description: "Tea & Snacks Purchase", Amount: d(8000), Category: "Supplies", Date: daysAgo(5)},
			{ID: "exp3", Description: "Electricity Bill", Amount: d(4500), Category: "Utilities", Date: daysAgo(3)},
		},
		Attendance: []models.Attendance{
			mark("att1", "staff1", 1, models.AttendancePresent),
			mark("att2", "staff1", 2, models.AttendancePresent),
			mark("att3", "staff1", 3, models.AttendanceLeave),
			mark("att4", "staff1", 4, models.AttendancePresent),
			mark("att5", "staff2", 1, models.AttendancePresent),
			mark("att6", "staff2", 2, models.AttendanceAbsent),
			mark("att7", "staff2", 3, models.AttendancePresent),
			mark("att8", "staff2", 4, models.AttendancePresent),
		},
	}
}
