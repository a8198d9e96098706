// Package di provides dependency injection factories for creating application components.
package di

import (
	"log/slog"

	"shop_backend/internal/config"
	"shop_backend/internal/feature/users/usecase"
	"shop_backend/internal/platform/mail"
)

// NewMailer creates the outbound mailer. With an API key configured it
// returns the Resend-backed implementation. Otherwise it falls back to a
// logging mailer so local development works without an account.
func NewMailer(cfg *config.Config) usecase.Mailer {
	if cfg.ResendAPIKey != "" {
		return mail.NewResendMailer(cfg.ResendAPIKey)
	}
	slog.Warn("RESEND_API_KEY is not set, confirmation mail will only be logged")
	return mail.LogMailer{}
}
