package domain

import "time"

// ModuleID identifies a feature module a store may be granted.
type ModuleID string

const (
	ModuleTickets   ModuleID = "OS"
	ModuleInventory ModuleID = "STOCK"
	ModuleFinance   ModuleID = "FINANCE"
	ModuleCustomers ModuleID = "CUSTOMERS"
)

// AllModules lists every provisionable module.
var AllModules = []ModuleID{ModuleTickets, ModuleInventory, ModuleFinance, ModuleCustomers}

// Store is a tenant. Provisioned and toggled from the super-admin plane.
type Store struct {
	ID            int64
	Name          string
	Address       string
	Phone         string
	Email         string
	Active        bool
	ActiveModules []ModuleID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasModule reports whether the store may use the given module.
func (s Store) HasModule(id ModuleID) bool {
	for _, m := range s.ActiveModules {
		if m == id {
			return true
		}
	}
	return false
}
