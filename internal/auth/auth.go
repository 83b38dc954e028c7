package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"jobboard/internal/models"
)

// TokenPrefix precedes the token in the Authorization header.
const TokenPrefix = "Token "

// UserStore is the persistence the Manager needs. *db.UserRepo satisfies it.
type UserStore interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByToken(ctx context.Context, token string) (*models.User, error)
	RotateToken(ctx context.Context, oldToken, newToken string) error
	SetToken(ctx context.Context, userID int64, token string) error
}

// Session is what register and login hand back to the client.
type Session struct {
	Token string
	Name  string
}

type Manager struct {
	users    UserStore
	hasher   Hasher
	newToken func() string
}

func NewManager(users UserStore, hasher Hasher) *Manager {
	return &Manager{
		users:    users,
		hasher:   hasher,
		newToken: func() string { return uuid.New().String() },
	}
}

func (m *Manager) Register(ctx context.Context, name, email, password string) (*Session, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", models.ErrValidation)
	}

	hash, err := m.hasher.Hash(password)
	if errors.Is(err, models.ErrValidation) {
		return nil, err
	} else if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := m.users.Create(ctx, &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Token:        m.newToken(),
	})
	if err != nil {
		return nil, err
	}
	return &Session{Token: u.Token, Name: u.Name}, nil
}

// Login returns the token the user currently holds; it does not rotate it.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", models.ErrValidation)
	}

	u, err := m.users.GetByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%w: wrong email or password", models.ErrUnauthorized)
	} else if err != nil {
		return nil, err
	}
	if !m.hasher.Verify(password, u.PasswordHash) {
		return nil, fmt.Errorf("%w: wrong email or password", models.ErrUnauthorized)
	}

	// rows created before tokens were issued at registration
	if u.Token == "" {
		u.Token = m.newToken()
		if err := m.users.SetToken(ctx, u.ID, u.Token); err != nil {
			return nil, err
		}
	}
	return &Session{Token: u.Token, Name: u.Name}, nil
}

// Logout rotates token to a fresh value. The new token is not returned.
func (m *Manager) Logout(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: missing token", models.ErrUnauthorized)
	}
	err := m.users.RotateToken(ctx, token, m.newToken())
	if errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("%w: invalid token", models.ErrUnauthorized)
	}
	return err
}

// TokenFromHeader strips TokenPrefix from an Authorization header value.
// A value without the prefix is taken as the bare token.
func TokenFromHeader(header string) string {
	return strings.TrimSpace(strings.TrimPrefix(header, TokenPrefix))
}

// Resolve maps an Authorization header value to its user. An empty header
// or an unknown token yields models.ErrUnauthorized.
func (m *Manager) Resolve(ctx context.Context, header string) (*models.User, error) {
	token := TokenFromHeader(header)
	if token == "" {
		return nil, fmt.Errorf("%w: missing token", models.ErrUnauthorized)
	}
	u, err := m.users.GetByToken(ctx, token)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%w: invalid token", models.ErrUnauthorized)
	} else if err != nil {
		return nil, err
	}
	return u, nil
}
