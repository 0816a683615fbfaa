package service

import (
	"context"
	"fmt"
	"strings"

	"taskdesk/internal/models"
	"taskdesk/internal/store"
)

// UserService validates user input, hashes passwords, and delegates to the
// store. Records it returns never carry the password hash.
type UserService struct {
	store  *store.Store
	hasher PasswordHasher
}

func NewUserService(st *store.Store, hasher PasswordHasher) *UserService {
	return &UserService{store: st, hasher: hasher}
}

// All returns every user ordered by name.
func (s *UserService) All(ctx context.Context) ([]models.User, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	return stripHashes(users), nil
}

// ByRole returns users with the given role ordered by name.
func (s *UserService) ByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	users, err := s.store.UsersByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	return stripHashes(users), nil
}

// Create registers a new user. Name, login and password are required.
func (s *UserService) Create(ctx context.Context, name, login, password string, role models.Role) (*models.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", models.ErrInvalidArgument)
	}
	if strings.TrimSpace(login) == "" {
		return nil, fmt.Errorf("%w: login is required", models.ErrInvalidArgument)
	}
	if strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: password is required", models.ErrInvalidArgument)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user, err := s.store.CreateUser(ctx, models.User{
		Name:         name,
		Login:        login,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Update rewrites a user's profile. A blank password means "keep the
// stored hash"; a non-blank one is hashed and replaces it.
func (s *UserService) Update(ctx context.Context, id int64, name, login, password string, role models.Role) error {
	if id <= 0 {
		return fmt.Errorf("%w: user id %d", models.ErrInvalidArgument, id)
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", models.ErrInvalidArgument)
	}
	if strings.TrimSpace(login) == "" {
		return fmt.Errorf("%w: login is required", models.ErrInvalidArgument)
	}

	hash := ""
	if strings.TrimSpace(password) != "" {
		var err error
		if hash, err = s.hasher.Hash(password); err != nil {
			return err
		}
	}

	return s.store.UpdateUser(ctx, models.User{
		ID:           id,
		Name:         name,
		Login:        login,
		PasswordHash: hash,
		Role:         role,
	})
}

// Delete removes a user by id.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: user id %d", models.ErrInvalidArgument, id)
	}
	return s.store.DeleteUser(ctx, id)
}

func stripHashes(users []models.User) []models.User {
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users
}
