package store

import (
	"context"
	"database/sql"
	"errors"

	"taskdesk/internal/models"
)

// taskColumns joins the author and executor logins in at query time; they
// are display-only and never written back.
const taskColumns = `
	t.id, t.title, t.description, t.create_date, t.status, t.author_id, t.executor_id,
	a.login AS author_login,
	COALESCE(e.login, '') AS executor_login
	FROM tasks t
	JOIN users a ON a.id = t.author_id
	LEFT JOIN users e ON e.id = t.executor_id`

// CreateTask inserts a new task and returns the stored record with its
// assigned id and creation date.
func (s *Store) CreateTask(ctx context.Context, t models.Task) (*models.Task, error) {
	if t.AuthorID <= 0 {
		return nil, models.ErrInvalidArgument
	}
	if t.ExecutorID != nil && *t.ExecutorID <= 0 {
		return nil, models.ErrInvalidArgument
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (title, description, status, author_id, executor_id)
		VALUES (?, ?, ?, ?, ?)
	`, t.Title, t.Description, t.Status, t.AuthorID, t.ExecutorID)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return s.TaskByID(ctx, id)
}

// TaskByID retrieves a task by id. A non-positive or unknown id yields
// (nil, nil).
func (s *Store) TaskByID(ctx context.Context, id int64) (*models.Task, error) {
	if id <= 0 {
		return nil, nil
	}

	t := &models.Task{}
	err := s.db.GetContext(ctx, t, `SELECT `+taskColumns+` WHERE t.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Tasks returns every task.
func (s *Store) Tasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.SelectContext(ctx, &tasks, `SELECT `+taskColumns)
	return tasks, err
}

// TasksByAuthor returns tasks authored by the given user.
func (s *Store) TasksByAuthor(ctx context.Context, authorID int64) ([]models.Task, error) {
	if authorID <= 0 {
		return nil, models.ErrInvalidArgument
	}

	var tasks []models.Task
	err := s.db.SelectContext(ctx, &tasks, `SELECT `+taskColumns+` WHERE t.author_id = ?`, authorID)
	return tasks, err
}

// TasksByExecutor returns tasks assigned to the given user.
func (s *Store) TasksByExecutor(ctx context.Context, executorID int64) ([]models.Task, error) {
	if executorID <= 0 {
		return nil, models.ErrInvalidArgument
	}

	var tasks []models.Task
	err := s.db.SelectContext(ctx, &tasks, `SELECT `+taskColumns+` WHERE t.executor_id = ?`, executorID)
	return tasks, err
}

// UpdateTask writes title, description, status and executor. The author
// and creation date are immutable. Updating an unknown id is a silent
// no-op.
func (s *Store) UpdateTask(ctx context.Context, t models.Task) error {
	if t.ID <= 0 {
		return models.ErrInvalidArgument
	}
	if t.ExecutorID != nil && *t.ExecutorID <= 0 {
		return models.ErrInvalidArgument
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET title = ?, description = ?, status = ?, executor_id = ?
		WHERE id = ?
	`, t.Title, t.Description, t.Status, t.ExecutorID, t.ID)
	return err
}

// DeleteTask removes a task. Deleting an unknown id is a silent no-op.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	if id <= 0 {
		return models.ErrInvalidArgument
	}

	_, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	return err
}
