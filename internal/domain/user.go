package domain

import "time"

// UserRole grants capabilities inside a store, or across all stores for the
// super-admin plane.
type UserRole string

const (
	RoleOperator   UserRole = "OPERATOR"
	RoleAdmin      UserRole = "ADMIN"
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
)

// User is an operator account. StoreID is nil only for super admins.
type User struct {
	ID           int64
	StoreID      *int64
	Username     string
	DisplayName  string
	PasswordHash string
	Role         UserRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
