package models

import "errors"

// Error taxonomy shared by the store and service layers. Absence (a missing
// row) is not an error: lookups return nil and mutations on unknown ids are
// silent no-ops.
var (
	// ErrInvalidArgument marks a validation failure raised before any
	// store access: a non-positive id or a blank required field.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDuplicateLogin is returned when creating a user whose login is
	// already taken.
	ErrDuplicateLogin = errors.New("login already registered")

	// ErrUserHasTasks is returned when deleting a user who still authors
	// tasks (restrict delete).
	ErrUserHasTasks = errors.New("user still authors tasks")
)
