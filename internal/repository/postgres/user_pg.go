// internal/repository/postgres/user_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/repository"
	"exercise-tracker/internal/util"
)

// UserRepository implements repository.UserRepository for PostgreSQL.
type UserRepository struct {
	db repository.DBExecutor
}

// NewUserRepository creates a new UserRepository on top of db (usually *sqlx.DB).
func NewUserRepository(db repository.DBExecutor) repository.UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user into the database.
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	id := uuid.NewString()
	query := `INSERT INTO users (id, username, created_at) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, id, user.Username, user.CreatedAt); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = id
	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, util.ErrNotFound
	}

	var user domain.User
	query := `SELECT id, username, created_at FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// ListUsers returns all users ordered by insertion.
func (r *UserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	query := `SELECT id, username, created_at FROM users ORDER BY seq`
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
