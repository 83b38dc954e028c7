package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"jobboard/internal/db"
	"jobboard/internal/models"
)

func newTestManager(t *testing.T) (*Manager, *db.UserRepo) {
	t.Helper()
	dbc, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbc.Close() })
	require.NoError(t, db.Migrate(context.Background(), dbc))

	users := db.NewUserRepo(dbc)
	m := NewManager(users, BcryptHasher{Cost: bcrypt.MinCost})

	var mu sync.Mutex
	n := 0
	m.newToken = func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("token-%d", n)
	}
	return m, users
}

func TestManager_Register(t *testing.T) {
	m, users := newTestManager(t)
	ctx := context.Background()

	s, err := m.Register(ctx, " Ana ", "ana@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "token-1", s.Token)
	assert.Equal(t, "Ana", s.Name)

	u, err := users.GetByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", u.PasswordHash)
	assert.Equal(t, "token-1", u.Token)

	resolved, err := m.Resolve(ctx, "Token "+s.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, resolved.ID)
}

func TestManager_Register_Validation(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	for _, tc := range []struct{ name, email, password string }{
		{"", "a@x.com", "pw"},
		{"Ana", "", "pw"},
		{"Ana", "a@x.com", ""},
		{"   ", "a@x.com", "pw"},
	} {
		_, err := m.Register(ctx, tc.name, tc.email, tc.password)
		assert.ErrorIs(t, err, models.ErrValidation, "%+v", tc)
	}
}

func TestManager_Register_Duplicate(t *testing.T) {
	m, users := newTestManager(t)
	ctx := context.Background()

	_, err := m.Register(ctx, "Ana", "ana@x.com", "pw1")
	require.NoError(t, err)

	_, err = m.Register(ctx, "Impostor", "ana@x.com", "pw2")
	assert.ErrorIs(t, err, models.ErrConflict)

	u, err := users.GetByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, "token-1", u.Token)
	assert.True(t, m.hasher.Verify("pw1", u.PasswordHash))
}

func TestManager_Login(t *testing.T) {
	m, users := newTestManager(t)
	ctx := context.Background()

	reg, err := m.Register(ctx, "Ana", "ana@x.com", "pw1")
	require.NoError(t, err)

	s, err := m.Login(ctx, "ana@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, reg.Token, s.Token, "login does not rotate")
	assert.Equal(t, "Ana", s.Name)

	_, err = m.Login(ctx, "ana@x.com", "wrong")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	_, err = m.Login(ctx, "nobody@x.com", "pw1")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	_, err = m.Login(ctx, "", "pw1")
	assert.ErrorIs(t, err, models.ErrValidation)
	_, err = m.Login(ctx, "ana@x.com", "")
	assert.ErrorIs(t, err, models.ErrValidation)

	u, err := users.GetByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, reg.Token, u.Token, "failed logins leave the token alone")
}

func TestManager_Login_IssuesMissingToken(t *testing.T) {
	m, users := newTestManager(t)
	ctx := context.Background()

	hash, err := m.hasher.Hash("pw")
	require.NoError(t, err)
	_, err = users.Create(ctx, &models.User{Name: "Legacy", Email: "old@x.com", PasswordHash: hash})
	require.NoError(t, err)

	s, err := m.Login(ctx, "old@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "token-1", s.Token)

	u, err := m.Resolve(ctx, "Token token-1")
	require.NoError(t, err)
	assert.Equal(t, "Legacy", u.Name)
}

func TestManager_Logout(t *testing.T) {
	m, users := newTestManager(t)
	ctx := context.Background()

	reg, err := m.Register(ctx, "Ana", "ana@x.com", "pw1")
	require.NoError(t, err)

	require.NoError(t, m.Logout(ctx, reg.Token))

	_, err = m.Resolve(ctx, "Token "+reg.Token)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	u, err := users.GetByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, "token-2", u.Token)

	s, err := m.Login(ctx, "ana@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "token-2", s.Token)

	assert.ErrorIs(t, m.Logout(ctx, reg.Token), models.ErrUnauthorized)
	assert.ErrorIs(t, m.Logout(ctx, ""), models.ErrUnauthorized)
}

func TestManager_Resolve(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	reg, err := m.Register(ctx, "Ana", "ana@x.com", "pw1")
	require.NoError(t, err)

	for _, header := range []string{"Token " + reg.Token, reg.Token, "Token  " + reg.Token + " "} {
		u, err := m.Resolve(ctx, header)
		require.NoError(t, err, header)
		assert.Equal(t, "Ana", u.Name)
	}

	for _, header := range []string{"", "Token ", "Token nope", "Bearer " + reg.Token} {
		_, err := m.Resolve(ctx, header)
		assert.ErrorIs(t, err, models.ErrUnauthorized, header)
	}
}

func TestTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc", TokenFromHeader("Token abc"))
	assert.Equal(t, "abc", TokenFromHeader("abc"))
	assert.Equal(t, "", TokenFromHeader("Token "))
	assert.Equal(t, "", TokenFromHeader(""))
}

func TestManager_Register_PasswordTooLongForBcrypt(t *testing.T) {
	m, users := newTestManager(t)
	ctx := context.Background()

	_, err := m.Register(ctx, "Ana", "ana@x.com", strings.Repeat("p", 80))
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = users.GetByEmail(ctx, "ana@x.com")
	assert.ErrorIs(t, err, models.ErrNotFound)

	s, err := m.Register(ctx, "Ana", "ana@x.com", strings.Repeat("p", 72))
	require.NoError(t, err)
	_, err = m.Login(ctx, "ana@x.com", strings.Repeat("p", 72))
	require.NoError(t, err)
	assert.NotEmpty(t, s.Token)
}
