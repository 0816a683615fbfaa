package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"taskdesk/internal/models"
	"taskdesk/internal/store"
)

// AuthService verifies credentials against the user store.
type AuthService struct {
	store  *store.Store
	hasher PasswordHasher
	log    zerolog.Logger
}

func NewAuthService(st *store.Store, hasher PasswordHasher, log zerolog.Logger) *AuthService {
	return &AuthService{store: st, hasher: hasher, log: log}
}

// Login returns the identity for a matching login/password pair, or nil
// when either field is blank, the login is unknown, or the password does
// not match. The returned identity carries no password material.
func (a *AuthService) Login(ctx context.Context, login, password string) (*models.Identity, error) {
	if strings.TrimSpace(login) == "" || strings.TrimSpace(password) == "" {
		return nil, nil
	}

	user, err := a.store.UserByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		a.log.Debug().Str("login", login).Msg("login rejected: unknown login")
		return nil, nil
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		a.log.Debug().Str("login", login).Msg("login rejected: bad password")
		return nil, nil
	}

	return &models.Identity{ID: user.ID, Login: user.Login, Role: user.Role}, nil
}
