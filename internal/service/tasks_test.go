package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdesk/internal/models"
)

func TestTaskServiceCreateValidation(t *testing.T) {
	st := newTestStore(t)
	users := NewUserService(st, NewBcryptHasher())
	tasks := NewTaskService(st)
	ctx := context.Background()

	author := createUser(t, users, "Alice", "alice", "pw", models.RoleManager)

	_, err := tasks.Create(ctx, models.Task{Description: "d", AuthorID: author.ID})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = tasks.Create(ctx, models.Task{Title: "Fix bug", AuthorID: author.ID})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	created, err := tasks.Create(ctx, models.Task{Title: "Fix bug", Description: "d", AuthorID: author.ID})
	require.NoError(t, err)
	assert.Equal(t, models.StatusNew, created.Status)
}

func TestTaskServiceUpdateStatus(t *testing.T) {
	st := newTestStore(t)
	users := NewUserService(st, NewBcryptHasher())
	tasks := NewTaskService(st)
	ctx := context.Background()

	author := createUser(t, users, "Alice", "alice", "pw", models.RoleManager)
	executor := createUser(t, users, "Bob", "bob", "pw", models.RoleUser)

	created, err := tasks.Create(ctx, models.Task{
		Title:       "Fix bug",
		Description: "reproduce and fix",
		AuthorID:    author.ID,
		ExecutorID:  &executor.ID,
	})
	require.NoError(t, err)

	require.NoError(t, tasks.UpdateStatus(ctx, created.ID, models.StatusInProgress))

	got, err := st.TaskByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StatusInProgress, got.Status)

	// Everything else is untouched.
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Description, got.Description)
	assert.Equal(t, created.AuthorID, got.AuthorID)
	assert.Equal(t, *created.ExecutorID, *got.ExecutorID)
	assert.Equal(t, created.CreateDate, got.CreateDate)
}

func TestTaskServiceUpdateStatusMissingIsNoop(t *testing.T) {
	st := newTestStore(t)
	tasks := NewTaskService(st)

	assert.NoError(t, tasks.UpdateStatus(context.Background(), 42, models.StatusCompleted))
	assert.NoError(t, tasks.UpdateStatus(context.Background(), -1, models.StatusCompleted))
}

func TestTaskServiceByAuthorAndExecutor(t *testing.T) {
	st := newTestStore(t)
	users := NewUserService(st, NewBcryptHasher())
	tasks := NewTaskService(st)
	ctx := context.Background()

	alice := createUser(t, users, "Alice", "alice", "pw", models.RoleManager)
	bob := createUser(t, users, "Bob", "bob", "pw", models.RoleUser)

	_, err := tasks.Create(ctx, models.Task{Title: "T1", Description: "d", AuthorID: alice.ID, ExecutorID: &bob.ID})
	require.NoError(t, err)
	_, err = tasks.Create(ctx, models.Task{Title: "T2", Description: "d", AuthorID: alice.ID})
	require.NoError(t, err)

	authored, err := tasks.ByAuthor(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, authored, 2)

	assigned, err := tasks.ByExecutor(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, "T1", assigned[0].Title)

	_, err = tasks.ByAuthor(ctx, 0)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
	_, err = tasks.ByExecutor(ctx, 0)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestTaskServiceDelete(t *testing.T) {
	st := newTestStore(t)
	users := NewUserService(st, NewBcryptHasher())
	tasks := NewTaskService(st)
	ctx := context.Background()

	alice := createUser(t, users, "Alice", "alice", "pw", models.RoleManager)
	created, err := tasks.Create(ctx, models.Task{Title: "T1", Description: "d", AuthorID: alice.ID})
	require.NoError(t, err)

	require.NoError(t, tasks.Delete(ctx, created.ID))

	got, err := st.TaskByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, tasks.Delete(ctx, 0), models.ErrInvalidArgument)
}
