// Package handler provides the HTTP handlers for the users feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shop_backend/internal/api"
	"shop_backend/internal/feature/users/domain/entity"
	"shop_backend/internal/feature/users/transport/http/dto"
	"shop_backend/internal/feature/users/usecase"
)

// UsersUsecase defines the user-management operations the handler depends on.
// The interface is defined here, on the consumer side.
type UsersUsecase interface {
	// List returns all non-deleted users.
	List(ctx context.Context) ([]entity.User, error)
	// Create registers a new, pending user and dispatches the confirmation mail.
	Create(ctx context.Context, in usecase.CreateInput) error
	// Update applies a partial update to one user.
	Update(ctx context.Context, id uint, patch usecase.UpdatePatch) error
}

// UsersHandler handles HTTP requests for user management.
type UsersHandler struct {
	users UsersUsecase
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(users UsersUsecase) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /users. Responds 202 with the user list, an oddity the
// API has always had and clients now rely on.
func (h *UsersHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		slog.Error("user listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserResponse(u))
	}
	c.JSON(http.StatusAccepted, out)
}

// Create handles POST /users/add.
// - 400 on a malformed body
// - 409 when the email is already taken
// - 200 on success; confirmation delivery problems never surface here
func (h *UsersHandler) Create(c *gin.Context) {
	var req dto.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("user creation validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	err := h.users.Create(c.Request.Context(), usecase.CreateInput{
		Email:    string(req.Email),
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
		ImageURL: req.ImageURL,
	})
	switch {
	case errors.Is(err, usecase.ErrDuplicateEmail):
		slog.Warn("user creation rejected, duplicate email", "email", req.Email)
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "email is duplicate"})
		return
	case err != nil:
		slog.Error("user creation failed", "error", err, "email", req.Email)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	slog.Info("user created", "email", req.Email)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}

// Update handles PUT /users/:id.
// Responds 300 on success (a legacy status clients depend on) and a plain
// 403 on any update failure; the real cause goes to the logs only.
func (h *UsersHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid user id"})
		return
	}

	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("user update validation failed", "error", err, "user_id", id)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	patch := usecase.UpdatePatch{
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
		ImageURL: req.ImageURL,
	}
	if req.Email != nil {
		email := string(*req.Email)
		patch.Email = &email
	}

	if err := h.users.Update(c.Request.Context(), uint(id), patch); err != nil {
		slog.Warn("user update rejected", "error", err, "user_id", id)
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "forbidden"})
		return
	}

	slog.Info("user updated", "user_id", id)
	c.JSON(http.StatusMultipleChoices, api.MessageResponse{Message: "ok"})
}

// Delete handles DELETE /users. Account deletion has never been implemented;
// the route exists and answers, nothing else.
func (h *UsersHandler) Delete(c *gin.Context) {
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}
