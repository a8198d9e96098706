// Package token issues and verifies the signed, time-limited tokens used by
// the system: session tokens proving identity and role, and confirmation
// tokens proving control of an email address. The two kinds are signed with
// independent secrets so compromising one never allows forging the other.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shop_backend/internal/feature/users/domain/entity"
)

var (
	// ErrTokenExpired is returned when a token's expiry has passed.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenInvalid is returned for any other verification failure:
	// bad signature, wrong signing method, malformed token, wrong claims.
	ErrTokenInvalid = errors.New("token is invalid")
)

// SessionClaims is the payload of a session token.
type SessionClaims struct {
	Name   string      `json:"name"`
	UserID uint        `json:"userId"`
	Role   entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// ConfirmationClaims is the payload of an email-confirmation token.
type ConfirmationClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies session tokens.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionManager creates a SessionManager with the given secret and token lifetime.
func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed session token carrying the user's name, id and role.
func (m *SessionManager) Issue(name string, userID uint, role entity.Role) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Name:   name,
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return sign(claims, m.secret)
}

// Verify parses and validates a session token and returns its claims.
func (m *SessionManager) Verify(tok string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := verify(tok, claims, m.secret); err != nil {
		return nil, err
	}
	return claims, nil
}

// ConfirmationManager issues and verifies email-confirmation tokens.
type ConfirmationManager struct {
	secret []byte
	ttl    time.Duration
}

// NewConfirmationManager creates a ConfirmationManager with the given secret and token lifetime.
func NewConfirmationManager(secret string, ttl time.Duration) *ConfirmationManager {
	return &ConfirmationManager{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed confirmation token for the given email address.
func (m *ConfirmationManager) Issue(email string) (string, error) {
	now := time.Now()
	claims := ConfirmationClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return sign(claims, m.secret)
}

// Verify parses and validates a confirmation token and returns its claims.
func (m *ConfirmationManager) Verify(tok string) (*ConfirmationClaims, error) {
	claims := &ConfirmationClaims{}
	if err := verify(tok, claims, m.secret); err != nil {
		return nil, err
	}
	return claims, nil
}

func sign(claims jwt.Claims, secret []byte) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func verify(tok string, claims jwt.Claims, secret []byte) error {
	parsed, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is accepted; anything else is treated as forged.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrTokenInvalid
	}
	if !parsed.Valid {
		return ErrTokenInvalid
	}
	return nil
}
