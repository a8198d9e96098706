// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

import "github.com/oapi-codegen/runtime/types"

// LoginReq represents the request body for the /auth/login endpoint.
type LoginReq struct {
	Email    types.Email `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required"`
}
