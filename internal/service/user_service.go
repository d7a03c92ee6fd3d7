// internal/service/user_service.go
package service

import (
	"context"
	"fmt"
	"strings"

	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/observability"
	"exercise-tracker/internal/repository"
	"exercise-tracker/internal/util"
)

// UserService defines the user directory operations.
type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, username string) (*domain.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// ListUsers returns every user; an empty directory yields an empty, non-nil slice.
func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// CreateUser registers a user. Usernames need not be unique.
func (s *userService) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, util.NewValidationError("username", "is required")
	}

	user := domain.NewUser(username)
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	observability.RecordUserCreated()
	return user, nil
}
