package service

import (
	"context"
	"fmt"
	"strings"

	"taskdesk/internal/models"
	"taskdesk/internal/store"
)

// TaskService validates task input and delegates to the store.
type TaskService struct {
	store *store.Store
}

func NewTaskService(st *store.Store) *TaskService {
	return &TaskService{store: st}
}

// All returns every task.
func (s *TaskService) All(ctx context.Context) ([]models.Task, error) {
	return s.store.Tasks(ctx)
}

// ByAuthor returns tasks authored by the given user.
func (s *TaskService) ByAuthor(ctx context.Context, authorID int64) ([]models.Task, error) {
	if authorID <= 0 {
		return nil, fmt.Errorf("%w: author id %d", models.ErrInvalidArgument, authorID)
	}
	return s.store.TasksByAuthor(ctx, authorID)
}

// ByExecutor returns tasks assigned to the given user.
func (s *TaskService) ByExecutor(ctx context.Context, executorID int64) ([]models.Task, error) {
	if executorID <= 0 {
		return nil, fmt.Errorf("%w: executor id %d", models.ErrInvalidArgument, executorID)
	}
	return s.store.TasksByExecutor(ctx, executorID)
}

// Create inserts a new task. Title and description are required.
func (s *TaskService) Create(ctx context.Context, t models.Task) (*models.Task, error) {
	if strings.TrimSpace(t.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", models.ErrInvalidArgument)
	}
	if strings.TrimSpace(t.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", models.ErrInvalidArgument)
	}
	return s.store.CreateTask(ctx, t)
}

// Update rewrites a task's mutable fields (title, description, status,
// executor). Unknown ids are a silent no-op.
func (s *TaskService) Update(ctx context.Context, t models.Task) error {
	return s.store.UpdateTask(ctx, t)
}

// UpdateStatus fetches a task, sets its status, and writes it back through
// the generic update path. Unknown ids are a silent no-op. Two concurrent
// status updates on the same id are last-write-wins; there is no version
// check.
func (s *TaskService) UpdateStatus(ctx context.Context, id int64, status models.Status) error {
	task, err := s.store.TaskByID(ctx, id)
	if err != nil {
		return err
	}
	if task == nil {
		return nil
	}

	task.Status = status
	return s.store.UpdateTask(ctx, *task)
}

// Delete removes a task by id.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: task id %d", models.ErrInvalidArgument, id)
	}
	return s.store.DeleteTask(ctx, id)
}
