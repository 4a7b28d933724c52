package models

// Account is a back-office login. Role reuses the staff roles so that
// managers can administer the catalog and cashiers can ring up orders.
type Account struct {
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         StaffRole `json:"role"`
	PasswordHash string    `json:"-"`
}
