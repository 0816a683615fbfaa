package service

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher is the one-way credential transform used by the user and
// auth services.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// BcryptHasher hashes passwords with bcrypt. The salt lives inside the
// digest, so no per-user salt column is needed.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

// Hash returns the digest for a password. Blank input hashes to an empty
// digest; that is an explicit edge case, not an error.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", nil
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether password matches digest.
func (h *BcryptHasher) Verify(password, digest string) bool {
	if strings.TrimSpace(password) == "" {
		return digest == ""
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
