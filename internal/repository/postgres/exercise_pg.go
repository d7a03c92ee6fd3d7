// internal/repository/postgres/exercise_pg.go
package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/repository"
)

// ExerciseRepository implements repository.ExerciseRepository for PostgreSQL.
type ExerciseRepository struct {
	db repository.DBExecutor
}

// NewExerciseRepository creates a new ExerciseRepository.
func NewExerciseRepository(db repository.DBExecutor) repository.ExerciseRepository {
	return &ExerciseRepository{db: db}
}

// CreateExercise inserts a new exercise record.
func (r *ExerciseRepository) CreateExercise(ctx context.Context, exercise *domain.Exercise) error {
	id := uuid.NewString()
	query := `INSERT INTO exercises (id, user_id, description, duration, date, created_at)
              VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query,
		id,
		exercise.UserID,
		exercise.Description,
		exercise.Duration,
		exercise.Date,
		exercise.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create exercise: %w", err)
	}
	exercise.ID = id
	return nil
}

// ListExercises retrieves a user's exercises, optionally bounded by date, in insertion order.
func (r *ExerciseRepository) ListExercises(ctx context.Context, filter domain.LogFilter) ([]domain.Exercise, error) {
	exercises := []domain.Exercise{}

	args := []interface{}{filter.UserID}
	query := `SELECT id, user_id, description, duration, date, created_at FROM exercises WHERE user_id = $1`
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	args = append(args, domain.ClampLimit(filter.Limit))
	query += fmt.Sprintf(" ORDER BY seq LIMIT $%d", len(args))

	if err := r.db.SelectContext(ctx, &exercises, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch exercises for user %s: %w", filter.UserID, err)
	}
	return exercises, nil
}
