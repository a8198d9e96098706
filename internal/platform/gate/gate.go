// Package gate enforces access control in front of every route. Each route
// declares a Descriptor (public flag plus allowed-role set) and the single
// Require middleware checks it uniformly: authentication always runs before
// authorization, so an unauthenticated caller never learns whether its role
// would have been accepted.
package gate

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shop_backend/internal/api"
	"shop_backend/internal/feature/users/domain/entity"
	"shop_backend/internal/platform/token"
)

// ContextClaims is the gin context key under which verified session claims
// are stored for downstream handlers.
const ContextClaims = "authClaims"

// Descriptor declares the access policy of one route.
type Descriptor struct {
	// Public routes skip authentication entirely.
	Public bool
	// Roles is the set of roles allowed to call the route. Ignored when
	// Public is set.
	Roles []entity.Role
}

// SessionVerifier verifies a session token and returns its claims.
// The interface is defined here, on the consumer side.
type SessionVerifier interface {
	Verify(tok string) (*token.SessionClaims, error)
}

// Require returns the gate middleware for one route. Order of checks:
// public bypass, bearer-token extraction and verification (401), then role
// membership (403).
func Require(verifier SessionVerifier, desc Descriptor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if desc.Public {
			c.Next()
			return
		}

		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
			return
		}

		claims, err := verifier.Verify(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			// Expired and tampered tokens collapse to the same response.
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid token"})
			return
		}

		if !roleAllowed(claims.Role, desc.Roles) {
			c.AbortWithStatusJSON(http.StatusForbidden, api.ErrorResponse{Error: "insufficient role"})
			return
		}

		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// ClaimsFrom returns the verified session claims stored by Require,
// or nil on a public route.
func ClaimsFrom(c *gin.Context) *token.SessionClaims {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil
	}
	claims, ok := v.(*token.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}

func roleAllowed(role entity.Role, allowed []entity.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
