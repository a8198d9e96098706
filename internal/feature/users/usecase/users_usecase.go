package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"shop_backend/internal/feature/users/domain/entity"
	"shop_backend/internal/platform/mail"
	"shop_backend/internal/platform/password"
)

// UserStore abstracts the persistence layer for user records. The interface
// is defined here, on the consumer side. Create and UpdateFields must each
// run inside a single transaction.
type UserStore interface {
	// FindByEmail retrieves the user with the given email address.
	// It returns ErrUserNotFound when no such user exists.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindAll retrieves every non-deleted user.
	FindAll(ctx context.Context) ([]entity.User, error)

	// FindByID retrieves the user with the given ID.
	// It returns ErrUserNotFound when no such user exists.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Create persists a new user. It returns ErrDuplicateEmail when the
	// email is already taken.
	Create(ctx context.Context, user *entity.User) error

	// UpdateFields applies the given column values to one user row.
	// It returns ErrUserNotFound when the row does not exist.
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
}

// ConfirmationIssuer issues signed email-confirmation tokens.
type ConfirmationIssuer interface {
	Issue(email string) (string, error)
}

// Mailer delivers outbound mail.
type Mailer interface {
	Send(ctx context.Context, msg mail.Message) error
}

// CreateInput is the data needed to create a user.
type CreateInput struct {
	Email    string
	Name     string
	Password string
	Role     entity.Role
	ImageURL string
}

// UpdatePatch describes a partial update. A nil field means "leave the
// stored value alone"; a present field overrides it.
type UpdatePatch struct {
	Email    *string
	Name     *string
	Password *string
	Role     *entity.Role
	ImageURL *string
}

// usersUsecase implements user management: listing, creation with a
// confirmation mail, partial updates, and activation.
type usersUsecase struct {
	store           UserStore
	confirmations   ConfirmationIssuer
	mailer          Mailer
	confirmationURL string
	mailFrom        string
}

// NewUsersUsecase creates a new usersUsecase.
func NewUsersUsecase(store UserStore, confirmations ConfirmationIssuer, mailer Mailer, confirmationURL, mailFrom string) *usersUsecase {
	return &usersUsecase{
		store:           store,
		confirmations:   confirmations,
		mailer:          mailer,
		confirmationURL: confirmationURL,
		mailFrom:        mailFrom,
	}
}

// List returns all non-deleted users.
func (u *usersUsecase) List(ctx context.Context) ([]entity.User, error) {
	return u.store.FindAll(ctx)
}

// Create registers a new, not-yet-active user and then sends the
// confirmation mail. The row is committed first; a failure to issue the
// token or deliver the mail is logged and swallowed, leaving the account
// pending until the mail is re-sent by other means.
func (u *usersUsecase) Create(ctx context.Context, in CreateInput) error {
	if err := u.CheckDuplicateEmail(ctx, in.Email); err != nil {
		return err
	}

	digest, err := password.Hash(in.Password)
	if err != nil {
		return err
	}

	user := &entity.User{
		Email:    in.Email,
		Name:     in.Name,
		Password: digest,
		Role:     in.Role,
		ImageURL: in.ImageURL,
		IsActive: 0,
	}
	if err := u.store.Create(ctx, user); err != nil {
		return err
	}

	u.dispatchConfirmation(ctx, in.Email)
	return nil
}

// dispatchConfirmation issues a confirmation token and mails the activation
// link. Best effort only: the user row is already committed and stays
// pending whatever happens here.
func (u *usersUsecase) dispatchConfirmation(ctx context.Context, email string) {
	tok, err := u.confirmations.Issue(email)
	if err != nil {
		slog.Error("confirmation dispatch failed, token not issued", "error", err, "email", email)
		return
	}

	link := fmt.Sprintf("%s?token=%s", u.confirmationURL, tok)
	body := fmt.Sprintf(`Welcome to the application. To confirm the email address, <a href="%s">click here</a>`, link)

	msg := mail.Message{
		To:      email,
		From:    u.mailFrom,
		Subject: "Please Verify Your Account",
		Text:    body,
		HTML:    body,
	}
	if err := u.mailer.Send(ctx, msg); err != nil {
		slog.Error("confirmation dispatch failed, mail not sent", "error", err, "email", email)
		return
	}
	slog.Info("confirmation mail sent", "email", email)
}

// Update applies a partial update to one user. Fields absent from the patch
// keep their stored value; UpdatedAt is always refreshed. Every failure is
// wrapped in ErrUpdateRejected so the boundary can stay deliberately coarse
// while the cause remains inspectable with errors.Is.
func (u *usersUsecase) Update(ctx context.Context, id uint, patch UpdatePatch) error {
	user, err := u.store.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpdateRejected, err)
	}

	fields := map[string]any{
		"email":      user.Email,
		"name":       user.Name,
		"password":   user.Password,
		"role":       user.Role,
		"image_url":  user.ImageURL,
		"updated_at": time.Now(),
	}

	if patch.Email != nil {
		if err := u.checkDuplicateEmailExcept(ctx, *patch.Email, id); err != nil {
			return fmt.Errorf("%w: %w", ErrUpdateRejected, err)
		}
		fields["email"] = *patch.Email
	}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Password != nil {
		digest, err := password.Hash(*patch.Password)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUpdateRejected, err)
		}
		fields["password"] = digest
	}
	if patch.Role != nil {
		fields["role"] = *patch.Role
	}
	if patch.ImageURL != nil {
		fields["image_url"] = *patch.ImageURL
	}

	if err := u.store.UpdateFields(ctx, id, fields); err != nil {
		return fmt.Errorf("%w: %w", ErrUpdateRejected, err)
	}
	return nil
}

// Activate flips a pending account to active. It runs exactly once per
// account: a second call fails with ErrAlreadyActive.
func (u *usersUsecase) Activate(ctx context.Context, email string) error {
	if email == "" {
		return ErrUserNotFound
	}

	user, err := u.store.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.IsActive != 0 {
		return ErrAlreadyActive
	}

	return u.store.UpdateFields(ctx, user.ID, map[string]any{
		"is_active":  1,
		"updated_at": time.Now(),
	})
}

// CheckDuplicateEmail fails with ErrDuplicateEmail when any user already
// holds the given address.
func (u *usersUsecase) CheckDuplicateEmail(ctx context.Context, email string) error {
	_, err := u.store.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrDuplicateEmail
	case errors.Is(err, ErrUserNotFound):
		return nil
	default:
		return err
	}
}

// checkDuplicateEmailExcept is the duplicate check used during updates:
// the record being updated may keep its own address.
func (u *usersUsecase) checkDuplicateEmailExcept(ctx context.Context, email string, id uint) error {
	existing, err := u.store.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, ErrUserNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != id:
		return ErrDuplicateEmail
	default:
		return nil
	}
}
