package models

// Supplier is loaded by seeding only; no action mutates it.
type Supplier struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}
