package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type StaffRole string

const (
	StaffRoleManager StaffRole = "Manager"
	StaffRoleCashier StaffRole = "Cashier"
	StaffRoleChef    StaffRole = "Chef"
	StaffRoleWaiter  StaffRole = "Waiter"
)

func (r StaffRole) Valid() bool {
	switch r {
	case StaffRoleManager, StaffRoleCashier, StaffRoleChef, StaffRoleWaiter:
		return true
	}
	return false
}

type Staff struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Role     StaffRole       `json:"role"`
	Shift    string          `json:"shift"` // free text, e.g. Morning / Evening
	Salary   decimal.Decimal `json:"salary"` // monthly base
	JoinDate time.Time       `json:"join_date"`
}

type StaffInput struct {
	Name     string          `json:"name"`
	Role     StaffRole       `json:"role"`
	Shift    string          `json:"shift"`
	Salary   decimal.Decimal `json:"salary"`
	JoinDate time.Time       `json:"join_date"`
}
