package usecase

import (
	"context"
	"fmt"

	"shop_backend/internal/feature/users/domain/entity"
	"shop_backend/internal/platform/password"
	"shop_backend/internal/platform/token"
)

// UserFinder looks up users by email. Defined here, on the consumer side;
// the gorm store satisfies it.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// SessionIssuer issues signed session tokens.
type SessionIssuer interface {
	Issue(name string, userID uint, role entity.Role) (string, error)
}

// ConfirmationVerifier verifies email-confirmation tokens.
type ConfirmationVerifier interface {
	Verify(tok string) (*token.ConfirmationClaims, error)
}

// Activator flips a pending account to active. The users usecase satisfies it.
type Activator interface {
	Activate(ctx context.Context, email string) error
}

// authUsecase implements login and email confirmation.
type authUsecase struct {
	users         UserFinder
	sessions      SessionIssuer
	confirmations ConfirmationVerifier
	activator     Activator
}

// NewAuthUsecase creates a new authUsecase.
func NewAuthUsecase(users UserFinder, sessions SessionIssuer, confirmations ConfirmationVerifier, activator Activator) *authUsecase {
	return &authUsecase{
		users:         users,
		sessions:      sessions,
		confirmations: confirmations,
		activator:     activator,
	}
}

// Login authenticates the user and returns a session token carrying
// name, userId and role. The user record itself is never touched.
func (u *authUsecase) Login(ctx context.Context, email, pass string) (string, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	if !password.Verify(pass, user.Password) {
		return "", ErrInvalidCredentials
	}

	tok, err := u.sessions.Issue(user.Name, user.ID, user.Role)
	if err != nil {
		return "", fmt.Errorf("failed to issue session token: %w", err)
	}
	return tok, nil
}

// VerifyEmail validates a confirmation token and activates the account it
// names. Everything past the missing-token check collapses into
// ErrConfirmationFailed; the cause stays wrapped for the logs.
func (u *authUsecase) VerifyEmail(ctx context.Context, tok string) error {
	if tok == "" {
		return ErrTokenMissing
	}

	claims, err := u.confirmations.Verify(tok)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfirmationFailed, err)
	}

	if err := u.activator.Activate(ctx, claims.Email); err != nil {
		return fmt.Errorf("%w: %w", ErrConfirmationFailed, err)
	}
	return nil
}
