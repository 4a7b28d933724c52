package financial

import (
	"sort"

	"cafe-backend/internal/models"
	"cafe-backend/internal/store"

	"github.com/shopspring/decimal"
)

const recentLimit = 10

type MethodRevenue struct {
	Method models.PaymentMode `json:"method"`
	Total  decimal.Decimal    `json:"total"`
}

type ExpenseByCategory struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

type Summary struct {
	TotalRevenue       decimal.Decimal     `json:"total_revenue"`
	TotalExpenses      decimal.Decimal     `json:"total_expenses"`
	Profit             decimal.Decimal     `json:"profit"`
	RevenueByMethod    []MethodRevenue     `json:"revenue_by_method"`
	ExpensesByCategory []ExpenseByCategory `json:"expenses_by_category"`
	RecentOrders       []models.Order      `json:"recent_orders"`
	RecentExpenses     []models.Expense    `json:"recent_expenses"`
}

// Summarize totals every order and expense ever recorded. Profit is revenue
// minus expenses and goes negative when the café runs at a loss.
func Summarize(snap store.Snapshot) Summary {
	revenue := decimal.Zero
	byMethod := map[models.PaymentMode]decimal.Decimal{}
	for _, o := range snap.Orders {
		revenue = revenue.Add(o.Total)
		byMethod[o.PaymentMode] = byMethod[o.PaymentMode].Add(o.Total)
	}

	expenses := decimal.Zero
	var categories []string
	byCategory := map[string]decimal.Decimal{}
	for _, e := range snap.Expenses {
		expenses = expenses.Add(e.Amount)
		if _, ok := byCategory[e.Category]; !ok {
			categories = append(categories, e.Category)
		}
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
	}

	s := Summary{
		TotalRevenue:       revenue,
		TotalExpenses:      expenses,
		Profit:             revenue.Sub(expenses),
		RevenueByMethod:    make([]MethodRevenue, 0, 3),
		ExpensesByCategory: make([]ExpenseByCategory, 0, len(categories)),
		RecentOrders:       recentOrders(snap.Orders),
		RecentExpenses:     recentExpenses(snap.Expenses),
	}
	for _, m := range []models.PaymentMode{models.PaymentModeCash, models.PaymentModeCard, models.PaymentModeUPI} {
		s.RevenueByMethod = append(s.RevenueByMethod, MethodRevenue{Method: m, Total: byMethod[m]})
	}
	for _, c := range categories {
		s.ExpensesByCategory = append(s.ExpensesByCategory, ExpenseByCategory{Category: c, Total: byCategory[c]})
	}
	return s
}

func recentOrders(orders []models.Order) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for i := len(orders) - 1; i >= 0; i-- {
		out = append(out, orders[i])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > recentLimit {
		out = out[:recentLimit]
	}
	return out
}

// RecentExpenses lists expenses newest first by date.
func RecentExpenses(expenses []models.Expense) []models.Expense {
	out := make([]models.Expense, 0, len(expenses))
	for i := len(expenses) - 1; i >= 0; i-- {
		out = append(out, expenses[i])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func recentExpenses(expenses []models.Expense) []models.Expense {
	out := RecentExpenses(expenses)
	if len(out) > recentLimit {
		out = out[:recentLimit]
	}
	return out
}
