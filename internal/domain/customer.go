package domain

import "time"

// Customer is a CRM record scoped to a store.
type Customer struct {
	ID        int64
	StoreID   int64
	Name      string
	Document  string
	Phone     string
	Email     string
	City      string
	Address   string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
