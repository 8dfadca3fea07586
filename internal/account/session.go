package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fencyatf/Products-Backend/internal/database"
	"github.com/fencyatf/Products-Backend/internal/util"
)

// SessionConfig holds the signing parameters shared by every issued token.
type SessionConfig struct {
	Secret string
	Issuer string
	// TTL of zero issues tokens without an exp claim.
	TTL time.Duration
}

// SessionIssuer verifies passwords against stored hashes and mints and
// verifies bearer tokens. It holds no mutable state.
type SessionIssuer struct {
	creds *CredentialStore
	cfg   SessionConfig
}

// NewSessionIssuer signs tokens for users found in creds.
func NewSessionIssuer(creds *CredentialStore, cfg SessionConfig) *SessionIssuer {
	return &SessionIssuer{creds: creds, cfg: cfg}
}

// Login returns a signed token asserting {user: email}.
func (s *SessionIssuer) Login(ctx context.Context, email, rawPassword string) (string, error) {
	user, err := s.creds.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	if !util.CheckPassword(rawPassword, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := util.GenerateToken(s.cfg.Secret, user.Email, s.cfg.Issuer, s.cfg.TTL)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify checks the token signature and returns its claims. An empty token
// yields ErrTokenMissing; any signature, format or expiry failure yields
// ErrTokenInvalid.
func (s *SessionIssuer) Verify(token string) (*util.Claims, error) {
	if token == "" {
		return nil, ErrTokenMissing
	}
	claims, err := util.ParseToken(s.cfg.Secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	return claims, nil
}
