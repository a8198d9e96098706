// Package dto defines data transfer objects for the users feature's HTTP transport layer.
package dto

import (
	"github.com/oapi-codegen/runtime/types"

	"shop_backend/internal/feature/users/domain/entity"
)

// CreateUserReq represents the request body for POST /users/add.
type CreateUserReq struct {
	Email    types.Email `json:"email" binding:"required,email"`
	Name     string      `json:"name" binding:"required"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     entity.Role `json:"role" binding:"required,oneof=1 2"`
	ImageURL string      `json:"imageUrl"`
}

// UpdateUserReq represents the request body for PUT /users/:id.
// Every field is optional: a nil field keeps the stored value, so "not
// mentioned" and "set to empty" stay distinguishable.
type UpdateUserReq struct {
	Email    *types.Email `json:"email" binding:"omitempty,email"`
	Name     *string      `json:"name"`
	Password *string      `json:"password" binding:"omitempty,min=8"`
	Role     *entity.Role `json:"role" binding:"omitempty,oneof=1 2"`
	ImageURL *string      `json:"imageUrl"`
}
