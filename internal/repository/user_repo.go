// internal/repository/user_repo.go
package repository

import (
	"context"

	"exercise-tracker/internal/domain"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// CreateUser inserts a user and sets user.ID to the store-generated identifier.
	CreateUser(ctx context.Context, user *domain.User) error
	// GetUserByID retrieves a user by ID. Unknown or malformed IDs yield util.ErrNotFound.
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	// ListUsers returns every user in insertion order.
	ListUsers(ctx context.Context) ([]domain.User, error)
}
