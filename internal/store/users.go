package store

import (
	"context"
	"database/sql"
	"errors"

	sqlite3 "github.com/mattn/go-sqlite3"

	"taskdesk/internal/models"
)

const userColumns = "id, name, login, password_hash, role"

// CreateUser inserts a new user and returns the stored record. A login
// collision returns models.ErrDuplicateLogin.
func (s *Store) CreateUser(ctx context.Context, u models.User) (*models.User, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (name, login, password_hash, role) VALUES (?, ?, ?, ?)
	`, u.Name, u.Login, u.PasswordHash, u.Role)
	if err != nil {
		return nil, mapUserConstraint(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return s.UserByID(ctx, id)
}

// UserByID retrieves a user by id. A non-positive or unknown id yields
// (nil, nil) so read paths stay resilient to absent selections.
func (s *Store) UserByID(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, nil
	}

	u := &models.User{}
	err := s.db.GetContext(ctx, u, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UserByLogin retrieves a user by exact login. Blank or unknown logins
// yield (nil, nil).
func (s *Store) UserByLogin(ctx context.Context, login string) (*models.User, error) {
	if login == "" {
		return nil, nil
	}

	u := &models.User{}
	err := s.db.GetContext(ctx, u, `SELECT `+userColumns+` FROM users WHERE login = ?`, login)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Users returns all users ordered by name.
func (s *Store) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY name`)
	return users, err
}

// UsersByRole returns all users with the given role, ordered by name.
func (s *Store) UsersByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	var users []models.User
	err := s.db.SelectContext(ctx, &users, `
		SELECT `+userColumns+` FROM users WHERE role = ? ORDER BY name
	`, role)
	return users, err
}

// UpdateUser writes name, login, role and, when PasswordHash is non-empty,
// the password hash. An empty PasswordHash leaves the stored hash
// untouched. Updating an unknown id is a silent no-op.
func (s *Store) UpdateUser(ctx context.Context, u models.User) error {
	if u.ID <= 0 {
		return models.ErrInvalidArgument
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET name = ?, login = ?, role = ?,
		    password_hash = CASE WHEN ? = '' THEN password_hash ELSE ? END
		WHERE id = ?
	`, u.Name, u.Login, u.Role, u.PasswordHash, u.PasswordHash, u.ID)
	return mapUserConstraint(err)
}

// DeleteUser removes a user. Deleting an unknown id is a silent no-op.
// Deleting a user who still authors tasks fails with
// models.ErrUserHasTasks; tasks that only reference the user as executor
// have the reference cleared by the schema.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	if id <= 0 {
		return models.ErrInvalidArgument
	}

	_, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	return mapUserConstraint(err)
}

// UserCount reports the number of stored users.
func (s *Store) UserCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`)
	return count, err
}

func mapUserConstraint(err error) error {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		switch serr.ExtendedCode {
		case sqlite3.ErrConstraintUnique:
			return models.ErrDuplicateLogin
		case sqlite3.ErrConstraintForeignKey, sqlite3.ErrConstraintTrigger:
			return models.ErrUserHasTasks
		}
	}
	return err
}
