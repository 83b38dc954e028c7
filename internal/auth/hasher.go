package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"jobboard/internal/models"
)

// Hasher turns a password into a storable digest and checks candidates against it.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

const (
	HasherBcrypt = "bcrypt"
	HasherSHA256 = "sha256"
)

// NewHasher returns the hasher registered under name.
func NewHasher(name string) (Hasher, error) {
	switch name {
	case HasherBcrypt, "":
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	case HasherSHA256:
		return SHA256Hasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", name)
	}
}

// BcryptHasher salts every digest, so Hash is not deterministic; use Verify.
type BcryptHasher struct {
	Cost int
}

// bcryptMaxPassword is the longest input bcrypt accepts.
const bcryptMaxPassword = 72

func (h BcryptHasher) Hash(password string) (string, error) {
	if len(password) > bcryptMaxPassword {
		return "", fmt.Errorf("%w: password must be at most %d bytes", models.ErrValidation, bcryptMaxPassword)
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	return string(b), err
}

func (h BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// SHA256Hasher is the legacy unsalted digest: 64 hex chars, same output for
// the same password. Kept for stores written with it; weak against
// precomputed tables.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256Hasher) Verify(password, digest string) bool {
	got, _ := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(got), []byte(digest)) == 1
}
