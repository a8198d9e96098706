package dto

import (
	"time"

	"shop_backend/internal/feature/users/domain/entity"
)

// UserResponse is one user as returned by GET /users.
// The password digest is deliberately absent.
type UserResponse struct {
	ID        uint        `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      entity.Role `json:"role"`
	ImageURL  string      `json:"imageUrl,omitempty"`
	IsActive  int         `json:"isActive"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// NewUserResponse maps a user entity to its response shape.
func NewUserResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		ImageURL:  u.ImageURL,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
