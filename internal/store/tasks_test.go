package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdesk/internal/models"
)

func seedTask(t *testing.T, s *Store, title string, authorID int64, executorID *int64) *models.Task {
	t.Helper()

	task, err := s.CreateTask(context.Background(), models.Task{
		Title:       title,
		Description: "desc " + title,
		AuthorID:    authorID,
		ExecutorID:  executorID,
	})
	require.NoError(t, err)
	return task
}

func TestCreateTask(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	author := seedUser(t, s, "Alice", "alice", models.RoleManager)
	executor := seedUser(t, s, "Bob", "bob", models.RoleUser)

	task := seedTask(t, s, "Fix bug", author.ID, &executor.ID)
	assert.Positive(t, task.ID)
	assert.Equal(t, models.StatusNew, task.Status)
	assert.False(t, task.CreateDate.IsZero())
	assert.Equal(t, "alice", task.AuthorLogin)
	assert.Equal(t, "bob", task.ExecutorLogin)

	unassigned := seedTask(t, s, "Write docs", author.ID, nil)
	assert.Nil(t, unassigned.ExecutorID)
	assert.Empty(t, unassigned.ExecutorLogin)

	_, err := s.CreateTask(ctx, models.Task{Title: "x", Description: "y"})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestTaskByIDAbsence(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []int64{-1, 0, 9999} {
		task, err := s.TaskByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, task)
	}
}

func TestTasksByAuthorAndExecutor(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, s, "Alice", "alice", models.RoleManager)
	bob := seedUser(t, s, "Bob", "bob", models.RoleManager)

	seedTask(t, s, "A1", alice.ID, &bob.ID)
	seedTask(t, s, "A2", alice.ID, nil)
	seedTask(t, s, "B1", bob.ID, &alice.ID)

	authored, err := s.TasksByAuthor(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, authored, 2)

	assigned, err := s.TasksByExecutor(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, "B1", assigned[0].Title)

	_, err = s.TasksByAuthor(ctx, 0)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
	_, err = s.TasksByExecutor(ctx, -1)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestUpdateTaskLeavesAuthorAndCreateDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, s, "Alice", "alice", models.RoleManager)
	bob := seedUser(t, s, "Bob", "bob", models.RoleUser)

	task := seedTask(t, s, "Fix bug", alice.ID, nil)

	task.Title = "Fix crash"
	task.Status = models.StatusInProgress
	task.ExecutorID = &bob.ID
	task.AuthorID = bob.ID // must be ignored
	require.NoError(t, s.UpdateTask(ctx, *task))

	got, err := s.TaskByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Fix crash", got.Title)
	assert.Equal(t, models.StatusInProgress, got.Status)
	assert.Equal(t, bob.ID, *got.ExecutorID)
	assert.Equal(t, alice.ID, got.AuthorID)
	assert.Equal(t, task.CreateDate, got.CreateDate)
}

func TestUpdateTaskMissingIsNoop(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateTask(context.Background(), models.Task{ID: 42, Title: "Ghost"})
	assert.NoError(t, err)

	err = s.UpdateTask(context.Background(), models.Task{ID: 0})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestDeleteTask(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, s, "Alice", "alice", models.RoleManager)
	task := seedTask(t, s, "Fix bug", alice.ID, nil)

	require.NoError(t, s.DeleteTask(ctx, task.ID))

	got, err := s.TaskByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, s.DeleteTask(ctx, task.ID))
	assert.ErrorIs(t, s.DeleteTask(ctx, 0), models.ErrInvalidArgument)
}
