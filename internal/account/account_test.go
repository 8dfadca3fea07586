package account

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fencyatf/Products-Backend/internal/config"
	"github.com/fencyatf/Products-Backend/internal/database"
	"github.com/fencyatf/Products-Backend/internal/models"
	"github.com/fencyatf/Products-Backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func setupTestStore(t *testing.T) database.Store {
	t.Helper()
	ctx := context.Background()
	url := "sqlite://" + filepath.Join(t.TempDir(), "accounts.db")

	s, err := database.Open(ctx, config.DatabaseConfig{URL: url, Timeout: 5 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(ctx) })
	return s
}

func newTestIssuer(t *testing.T) (*CredentialStore, *SessionIssuer) {
	t.Helper()
	creds := NewCredentialStore(setupTestStore(t), bcrypt.MinCost)
	return creds, NewSessionIssuer(creds, SessionConfig{Secret: testSecret})
}

// failingUsers rejects every call with a store error.
type failingUsers struct{ err error }

func (f failingUsers) CreateUser(context.Context, *models.User) error { return f.err }

func (f failingUsers) FindUserByEmail(context.Context, string) (*models.User, error) {
	return nil, f.err
}

func TestRegister_StoresHashNotPassword(t *testing.T) {
	creds, _ := newTestIssuer(t)
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	u, err := creds.Register(ctx, "A", "a@x.com", "p1")
	require.NoError(t, err)
	assert.Equal(t, "A", u.Name)
	assert.Equal(t, "a@x.com", u.Email)
	assert.True(t, u.CreatedAt.After(before))

	stored, err := creds.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "p1", stored.PasswordHash)
	assert.Len(t, stored.PasswordHash, 60)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("p1")))
}

func TestRegister_DefaultCostIsTen(t *testing.T) {
	creds := NewCredentialStore(setupTestStore(t), util.DefaultBcryptCost)

	u, err := creds.Register(context.Background(), "B", "b@x.com", "pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(u.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
}

func TestRegister_DuplicateEmailIsPersistenceError(t *testing.T) {
	creds, _ := newTestIssuer(t)
	ctx := context.Background()

	_, err := creds.Register(ctx, "A", "a@x.com", "p1")
	require.NoError(t, err)

	_, err = creds.Register(ctx, "A2", "a@x.com", "p2")
	require.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, database.ErrDuplicate)
}

func TestRegister_HashingError(t *testing.T) {
	creds := NewCredentialStore(failingUsers{}, bcrypt.MaxCost+1)

	_, err := creds.Register(context.Background(), "A", "a@x.com", "p1")
	require.ErrorIs(t, err, ErrHashing)
}

func TestRegister_PasswordTooLong(t *testing.T) {
	creds, _ := newTestIssuer(t)

	_, err := creds.Register(context.Background(), "A", "a@x.com", strings.Repeat("x", 73))
	require.ErrorIs(t, err, ErrInvalidPassword)
	assert.NotErrorIs(t, err, ErrHashing)

	_, err = creds.FindByEmail(context.Background(), "a@x.com")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRegister_StoreFailure(t *testing.T) {
	creds := NewCredentialStore(failingUsers{err: errors.New("connection reset")}, bcrypt.MinCost)

	_, err := creds.Register(context.Background(), "A", "a@x.com", "p1")
	require.ErrorIs(t, err, ErrPersistence)
}

func TestFindByEmail_Miss(t *testing.T) {
	creds, _ := newTestIssuer(t)

	_, err := creds.FindByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestLogin_TokenClaimsEmail(t *testing.T) {
	creds, issuer := newTestIssuer(t)
	ctx := context.Background()

	for _, tc := range []struct{ email, password string }{
		{"a@x.com", "p1"},
		{"b@x.com", "correct horse battery staple"},
		{"C@X.com", "ünïcødé"},
	} {
		_, err := creds.Register(ctx, "n", tc.email, tc.password)
		require.NoError(t, err)

		token, err := issuer.Login(ctx, tc.email, tc.password)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := issuer.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, tc.email, claims.User)
		assert.Nil(t, claims.ExpiresAt)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	creds, issuer := newTestIssuer(t)
	ctx := context.Background()

	_, err := creds.Register(ctx, "A", "a@x.com", "p1")
	require.NoError(t, err)

	for _, wrong := range []string{"p2", "P1", "", "p1 "} {
		token, err := issuer.Login(ctx, "a@x.com", wrong)
		assert.Empty(t, token)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.ErrorIs(t, err, ErrAuth)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	_, issuer := newTestIssuer(t)

	token, err := issuer.Login(context.Background(), "ghost@x.com", "anything")
	assert.Empty(t, token)
	require.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, err, ErrAuth)
	assert.Equal(t, "user not found", err.Error())
}

func TestLogin_StoreFailureIsNotAuthError(t *testing.T) {
	creds := NewCredentialStore(failingUsers{err: errors.New("timeout")}, bcrypt.MinCost)
	issuer := NewSessionIssuer(creds, SessionConfig{Secret: testSecret})

	_, err := issuer.Login(context.Background(), "a@x.com", "p1")
	require.ErrorIs(t, err, ErrPersistence)
	assert.False(t, errors.Is(err, ErrAuth))
}

func TestLogin_WithTTL(t *testing.T) {
	creds := NewCredentialStore(setupTestStore(t), bcrypt.MinCost)
	issuer := NewSessionIssuer(creds, SessionConfig{Secret: testSecret, Issuer: "catalog", TTL: time.Hour})
	ctx := context.Background()

	_, err := creds.Register(ctx, "A", "a@x.com", "p1")
	require.NoError(t, err)

	token, err := issuer.Login(ctx, "a@x.com", "p1")
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, "catalog", claims.Issuer)
}

func TestVerify_Missing(t *testing.T) {
	_, issuer := newTestIssuer(t)

	_, err := issuer.Verify("")
	assert.ErrorIs(t, err, ErrTokenMissing)
}

func TestVerify_Tampered(t *testing.T) {
	_, issuer := newTestIssuer(t)

	token, err := util.GenerateToken(testSecret, "a@x.com", "", 0)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = issuer.Verify(tampered)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = issuer.Verify("garbage")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_ForeignSecret(t *testing.T) {
	_, issuer := newTestIssuer(t)

	token, err := util.GenerateToken("another-secret", "a@x.com", "", 0)
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
