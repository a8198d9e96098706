// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"shop_backend/internal/api"
	"shop_backend/internal/feature/auth/transport/http/dto"
	"shop_backend/internal/feature/auth/usecase"
	usersusecase "shop_backend/internal/feature/users/usecase"
)

// AuthUsecase defines the auth operations the handler depends on.
// The interface is defined here, on the consumer side.
type AuthUsecase interface {
	// Login authenticates a user and returns a session token.
	Login(ctx context.Context, email, password string) (string, error)
	// VerifyEmail validates a confirmation token and activates the account.
	VerifyEmail(ctx context.Context, token string) error
}

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login handles POST /auth/login.
// - 400 on a malformed body
// - 404 when the email is unknown
// - 401 on a wrong password
// - 200 with {"access_token": ...} on success
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	tok, err := h.auth.Login(c.Request.Context(), string(req.Email), req.Password)
	switch {
	case errors.Is(err, usersusecase.ErrUserNotFound):
		slog.Warn("login failed, unknown email", "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "email address not found"})
		return
	case errors.Is(err, usecase.ErrInvalidCredentials):
		slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password"})
		return
	case err != nil:
		slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.LoginResponse{AccessToken: tok})
}

// VerifyEmail handles GET /auth/confirm-email?token=...
// A missing token is 404; every other failure is 401 with no further detail.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	tok := c.Query("token")

	err := h.auth.VerifyEmail(c.Request.Context(), tok)
	switch {
	case errors.Is(err, usecase.ErrTokenMissing):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "confirmation token missing"})
		return
	case err != nil:
		slog.Warn("email confirmation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid or expired confirmation token"})
		return
	}

	slog.Info("email confirmed", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.MessageResponse{Message: "email confirmed"})
}
