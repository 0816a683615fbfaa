package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdesk/internal/models"
)

func TestCreateUser(t *testing.T) {
	s := newTestStore(t)

	u := seedUser(t, s, "Alice", "alice", models.RoleUser)
	assert.Positive(t, u.ID)
	assert.Equal(t, "alice", u.Login)
	assert.Equal(t, models.RoleUser, u.Role)
}

func TestCreateUserDuplicateLogin(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "Alice", "alice", models.RoleUser)

	_, err := s.CreateUser(ctx, models.User{Name: "Other", Login: "alice", PasswordHash: "x"})
	assert.ErrorIs(t, err, models.ErrDuplicateLogin)
}

func TestUserByIDAbsence(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []int64{-1, 0, 9999} {
		u, err := s.UserByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, u)
	}
}

func TestUserByLogin(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "Alice", "alice", models.RoleUser)

	u, err := s.UserByLogin(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Alice", u.Name)

	// Logins are case-sensitive.
	u, err = s.UserByLogin(ctx, "Alice")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = s.UserByLogin(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUsersOrderedByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "Charlie", "charlie", models.RoleUser)
	seedUser(t, s, "Alice", "alice", models.RoleAdmin)
	seedUser(t, s, "Bob", "bob", models.RoleManager)

	users, err := s.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "Alice", users[0].Name)
	assert.Equal(t, "Bob", users[1].Name)
	assert.Equal(t, "Charlie", users[2].Name)
}

func TestUsersByRole(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "Alice", "alice", models.RoleAdmin)
	seedUser(t, s, "Bob", "bob", models.RoleUser)
	seedUser(t, s, "Carol", "carol", models.RoleUser)

	users, err := s.UsersByRole(ctx, models.RoleUser)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Bob", users[0].Name)
	assert.Equal(t, "Carol", users[1].Name)
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "Alice", "alice", models.RoleUser)

	err := s.UpdateUser(ctx, models.User{
		ID:           u.ID,
		Name:         "Alice Smith",
		Login:        "alice",
		PasswordHash: "new-digest",
		Role:         models.RoleManager,
	})
	require.NoError(t, err)

	got, err := s.UserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Alice Smith", got.Name)
	assert.Equal(t, "new-digest", got.PasswordHash)
	assert.Equal(t, models.RoleManager, got.Role)
}

func TestUpdateUserBlankPasswordKeepsHash(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "Alice", "alice", models.RoleUser)

	err := s.UpdateUser(ctx, models.User{ID: u.ID, Name: "Alice B", Login: "alice", Role: models.RoleUser})
	require.NoError(t, err)

	got, err := s.UserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "digest-alice", got.PasswordHash)
	assert.Equal(t, "Alice B", got.Name)
}

func TestUpdateUserMissingIsNoop(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.UpdateUser(ctx, models.User{ID: 42, Name: "Ghost", Login: "ghost"})
	assert.NoError(t, err)
}

func TestUpdateUserInvalidID(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateUser(context.Background(), models.User{ID: 0, Name: "x", Login: "x"})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestDeleteUserRestrictedByAuthoredTasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	author := seedUser(t, s, "Alice", "alice", models.RoleManager)
	_, err := s.CreateTask(ctx, models.Task{Title: "Fix bug", Description: "d", AuthorID: author.ID})
	require.NoError(t, err)

	err = s.DeleteUser(ctx, author.ID)
	assert.ErrorIs(t, err, models.ErrUserHasTasks)

	// Still there.
	u, err := s.UserByID(ctx, author.ID)
	require.NoError(t, err)
	assert.NotNil(t, u)
}

func TestDeleteExecutorNullifiesTasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	author := seedUser(t, s, "Alice", "alice", models.RoleManager)
	executor := seedUser(t, s, "Bob", "bob", models.RoleUser)

	task, err := s.CreateTask(ctx, models.Task{
		Title:       "Fix bug",
		Description: "d",
		AuthorID:    author.ID,
		ExecutorID:  &executor.ID,
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteUser(ctx, executor.ID))

	got, err := s.TaskByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.ExecutorID)
	assert.Empty(t, got.ExecutorLogin)
}

func TestDeleteUserMissingIsNoop(t *testing.T) {
	s := newTestStore(t)

	assert.NoError(t, s.DeleteUser(context.Background(), 42))
	assert.ErrorIs(t, s.DeleteUser(context.Background(), 0), models.ErrInvalidArgument)
}

func TestUserCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	count, err := s.UserCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	seedUser(t, s, "Alice", "alice", models.RoleUser)

	count, err = s.UserCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
