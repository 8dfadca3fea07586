package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fencyatf/Products-Backend/internal/database"
	"github.com/fencyatf/Products-Backend/internal/models"
	"github.com/fencyatf/Products-Backend/internal/util"
)

// CredentialStore persists user records and guarantees only a one-way hash
// of the password is ever stored.
type CredentialStore struct {
	users database.UserStore
	cost  int
	now   func() time.Time
}

// NewCredentialStore hashes at bcryptCost; zero selects the default cost.
func NewCredentialStore(users database.UserStore, bcryptCost int) *CredentialStore {
	return &CredentialStore{
		users: users,
		cost:  bcryptCost,
		now:   time.Now,
	}
}

// Register hashes rawPassword and persists {name, email, hash, createdAt}.
// It fails with ErrInvalidPassword when bcrypt cannot take the input,
// ErrHashing when bcrypt itself fails and ErrPersistence when the store
// rejects the write (a duplicate email included).
func (s *CredentialStore) Register(ctx context.Context, name, email, rawPassword string) (*models.User, error) {
	hash, err := util.HashPassword(rawPassword, s.cost)
	if err != nil {
		if errors.Is(err, util.ErrEmptyPassword) || errors.Is(err, util.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPassword, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrHashing, err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return user, nil
}

// FindByEmail is an exact-match lookup; the email is not normalized.
// A miss returns database.ErrNotFound.
func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return u, nil
}
