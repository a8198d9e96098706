// Package password provides one-way hashing and verification of credentials.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when an empty plaintext is passed to Hash.
var ErrEmptyPassword = errors.New("password must not be empty")

// Hash returns the bcrypt digest of plain. bcrypt salts internally, so the
// same plaintext hashed twice yields different digests that both verify.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plain matches the stored digest.
// A mismatch or malformed digest is simply false, never an error.
func Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
