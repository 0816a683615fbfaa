package models

import "time"

// Role determines which views and actions a user gets after login.
type Role int

const (
	RoleAdmin Role = iota
	RoleManager
	RoleUser
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleManager:
		return "Manager"
	case RoleUser:
		return "User"
	}
	return "Unknown"
}

// Status is the lifecycle state of a task.
type Status int

const (
	StatusNew Status = iota
	StatusInProgress
	StatusPaused
	StatusCompleted
	StatusCancelled
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusNew, StatusInProgress, StatusPaused, StatusCompleted, StatusCancelled}

func (s Status) String() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusInProgress:
		return "In progress"
	case StatusPaused:
		return "Paused"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	}
	return "Unknown"
}

// User is a stored account. PasswordHash is never exposed outside the
// store and service layers.
type User struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Login        string `db:"login"`
	PasswordHash string `db:"password_hash"`
	Role         Role   `db:"role"`
}

// Identity is the authenticated user carried by the session. It holds no
// password material.
type Identity struct {
	ID    int64
	Login string
	Role  Role
}

// Task is a stored task. AuthorLogin and ExecutorLogin are read-side
// fields joined at query time, never persisted.
type Task struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	CreateDate  time.Time `db:"create_date"`
	Status      Status    `db:"status"`
	AuthorID    int64     `db:"author_id"`
	ExecutorID  *int64    `db:"executor_id"`

	AuthorLogin   string `db:"author_login"`
	ExecutorLogin string `db:"executor_login"`
}
