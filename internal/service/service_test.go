package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"taskdesk/internal/models"
	"taskdesk/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func createUser(t *testing.T, svc *UserService, name, login, password string, role models.Role) *models.User {
	t.Helper()

	u, err := svc.Create(context.Background(), name, login, password, role)
	require.NoError(t, err)
	return u
}
