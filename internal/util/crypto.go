package util

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost matches the work factor accounts have always been hashed with.
const DefaultBcryptCost = 10

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

var (
	ErrEmptyPassword   = errors.New("password is empty")
	ErrPasswordTooLong = bcrypt.ErrPasswordTooLong
)

// HashPassword returns a salted bcrypt hash of password at the given cost.
// A cost of zero selects DefaultBcryptCost.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(password, stored string) bool {
	if password == "" || stored == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
