package dto

import (
	"time"

	"github.com/filsox/store-api/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the token and the caller's context.
type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      UserResponse   `json:"user"`
	Store     *StoreResponse `json:"store,omitempty"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// CreateUserRequest payload for operator accounts.
type CreateUserRequest struct {
	Username    string          `json:"username" validate:"required"`
	DisplayName string          `json:"display_name"`
	Password    string          `json:"password" validate:"required,min=6"`
	Role        domain.UserRole `json:"role"`
}

// UpdateUserRequest payload. Empty fields keep stored values.
type UpdateUserRequest struct {
	DisplayName string          `json:"display_name"`
	Password    string          `json:"password"`
	Role        domain.UserRole `json:"role"`
	Active      *bool           `json:"active"`
}

// UserResponse representation. The password hash never leaves the server.
type UserResponse struct {
	ID          int64           `json:"id"`
	StoreID     *int64          `json:"store_id,omitempty"`
	Username    string          `json:"username"`
	DisplayName string          `json:"display_name"`
	Role        domain.UserRole `json:"role"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		StoreID:     u.StoreID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		Active:      u.Active,
		CreatedAt:   u.CreatedAt,
	}
}

// NewUserResponses maps a slice of domain users.
func NewUserResponses(users []domain.User) []UserResponse {
	items := make([]UserResponse, 0, len(users))
	for i := range users {
		items = append(items, NewUserResponse(&users[i]))
	}
	return items
}
