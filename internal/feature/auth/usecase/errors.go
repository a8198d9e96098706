// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrTokenMissing is returned when email confirmation is attempted
	// without a token.
	ErrTokenMissing = errors.New("confirmation token missing")

	// ErrConfirmationFailed wraps every failure past the missing-token
	// check: invalid or expired tokens and activation errors all collapse
	// into it so the boundary leaks nothing about the cause.
	ErrConfirmationFailed = errors.New("email confirmation failed")
)
