// Package mail provides outbound transactional mail delivery.
package mail

import (
	"context"
	"log/slog"
)

// Message is one outbound mail.
type Message struct {
	To      string
	From    string
	Subject string
	Text    string
	HTML    string
}

// LogMailer writes messages to the log instead of delivering them.
// Used when no delivery provider is configured.
type LogMailer struct{}

// Send logs the message and reports success.
func (LogMailer) Send(_ context.Context, msg Message) error {
	slog.Info("mail delivery skipped, no provider configured",
		"to", msg.To, "subject", msg.Subject)
	return nil
}
