package router

import (
	"github.com/gin-gonic/gin"

	authhandler "shop_backend/internal/feature/auth/transport/handler"
	"shop_backend/internal/feature/users/domain/entity"
	usershandler "shop_backend/internal/feature/users/transport/handler"
	"shop_backend/internal/platform/gate"
	"shop_backend/internal/platform/http/handler"
	"shop_backend/internal/platform/ratelimit"
)

// NewRouter wires every route behind its access descriptor. Each route names
// its policy inline so the full access map is readable in one place.
func NewRouter(authH *authhandler.AuthHandler, usersH *usershandler.UsersHandler,
	verifier gate.SessionVerifier, limiter *ratelimit.Limiter) *gin.Engine {
	r := gin.Default()

	public := gate.Descriptor{Public: true}
	adminOnly := gate.Descriptor{Roles: []entity.Role{entity.RoleAdmin}}
	anyRole := gate.Descriptor{Roles: []entity.Role{entity.RoleAdmin, entity.RoleUser}}

	// Liveness probe.
	r.GET("/healthz", gate.Require(verifier, public), handler.Health)
	r.HEAD("/healthz", gate.Require(verifier, public), handler.Health)

	// Login issues the session JWT. Only login is rate limited.
	r.POST("/auth/login", gate.Require(verifier, public), ratelimit.Middleware(limiter), authH.Login)
	// Landing point of the confirmation link sent by mail.
	r.GET("/auth/confirm-email", gate.Require(verifier, public), authH.VerifyEmail)

	// Authenticated routes.
	r.GET("/users", gate.Require(verifier, anyRole), usersH.List)
	r.POST("/users/add", gate.Require(verifier, adminOnly), usersH.Create)
	r.PUT("/users/:id", gate.Require(verifier, anyRole), usersH.Update)
	r.DELETE("/users", gate.Require(verifier, adminOnly), usersH.Delete)

	return r
}
