package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdesk/internal/models"
)

func TestLogin(t *testing.T) {
	st := newTestStore(t)
	hasher := NewBcryptHasher()
	users := NewUserService(st, hasher)
	auth := NewAuthService(st, hasher, zerolog.Nop())
	ctx := context.Background()

	created := createUser(t, users, "Alice", "alice", "s3cret", models.RoleManager)

	id, err := auth.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, created.ID, id.ID)
	assert.Equal(t, "alice", id.Login)
	assert.Equal(t, models.RoleManager, id.Role)
}

func TestLoginRejections(t *testing.T) {
	st := newTestStore(t)
	hasher := NewBcryptHasher()
	users := NewUserService(st, hasher)
	auth := NewAuthService(st, hasher, zerolog.Nop())
	ctx := context.Background()

	createUser(t, users, "Alice", "alice", "s3cret", models.RoleUser)

	cases := []struct {
		name            string
		login, password string
	}{
		{"blank login", "", "s3cret"},
		{"blank password", "alice", ""},
		{"both blank", "", ""},
		{"unknown login", "bob", "s3cret"},
		{"wrong password", "alice", "nope"},
		{"case-sensitive login", "Alice", "s3cret"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := auth.Login(ctx, tc.login, tc.password)
			require.NoError(t, err)
			assert.Nil(t, id)
		})
	}
}
