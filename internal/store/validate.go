package store

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"cafe-backend/internal/models"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validateProduct(name string, price decimal.Decimal, stock, threshold int) error {
	if strings.TrimSpace(name) == "" {
		return invalid("product name is required")
	}
	if price.IsNegative() {
		return invalid("price must not be negative")
	}
	if stock < 0 {
		return invalid("stock must not be negative")
	}
	if threshold < 0 {
		return invalid("low stock threshold must not be negative")
	}
	return nil
}

func validateStaff(name string, role models.StaffRole, salary decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return invalid("staff name is required")
	}
	if !role.Valid() {
		return invalid("unknown role %q", role)
	}
	if salary.IsNegative() {
		return invalid("salary must not be negative")
	}
	return nil
}

func validateExpense(in models.ExpenseInput) error {
	if strings.TrimSpace(in.Description) == "" {
		return invalid("expense description is required")
	}
	if in.Amount.IsNegative() {
		return invalid("amount must not be negative")
	}
	if in.Date.IsZero() {
		return invalid("expense date is required")
	}
	return nil
}
