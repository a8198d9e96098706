// Package adapters provides the repository implementations for the users feature.
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"shop_backend/internal/feature/users/domain/entity"
	"shop_backend/internal/feature/users/usecase"
)

// uniqueViolation is the Postgres error code for a unique-constraint breach.
const uniqueViolation = "23505"

// userGorm implements usecase.UserStore on gorm.
type userGorm struct {
	db *gorm.DB
}

// Compile-time proof that userGorm satisfies the store interface.
var _ usecase.UserStore = (*userGorm)(nil)

// NewUserGorm creates a userGorm bound to the given connection.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// FindByEmail retrieves a user by email address.
// Returns usecase.ErrUserNotFound when no row matches.
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindAll retrieves every user; gorm's default scope excludes soft-deleted rows.
func (r *userGorm) FindAll(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindByID retrieves a user by primary key.
// Returns usecase.ErrUserNotFound when no row matches.
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts the user inside a single transaction. The store assigns
// ID and timestamps. Returns usecase.ErrDuplicateEmail when the unique
// index on email rejects the row.
func (r *userGorm) Create(ctx context.Context, user *entity.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
	if err != nil {
		if isDuplicateKey(err) {
			return usecase.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// UpdateFields applies the given column values to one row inside a single
// transaction. Returns usecase.ErrUserNotFound when the row does not exist
// and usecase.ErrDuplicateEmail on a unique-index conflict.
func (r *userGorm) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.User{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		if isDuplicateKey(err) {
			return usecase.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// isDuplicateKey recognizes a unique-constraint violation from the Postgres
// driver directly or from gorm's translated error (the sqlite test driver
// only produces the latter).
func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
