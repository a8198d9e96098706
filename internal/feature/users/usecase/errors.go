// Package usecase implements the business logic for the users feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateEmail is returned when an email address already belongs to
	// another user.
	ErrDuplicateEmail = errors.New("email is duplicate")

	// ErrAlreadyActive is returned when activating an account that has
	// already been activated.
	ErrAlreadyActive = errors.New("account is already active")

	// ErrUpdateRejected wraps any failure inside Update. Callers see one
	// generic error kind while the wrapped cause stays inspectable.
	ErrUpdateRejected = errors.New("user update rejected")
)
