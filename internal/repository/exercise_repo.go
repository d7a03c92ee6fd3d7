// internal/repository/exercise_repo.go
package repository

import (
	"context"

	"exercise-tracker/internal/domain"
)

// ExerciseRepository defines the interface for exercise log operations.
type ExerciseRepository interface {
	// CreateExercise inserts an exercise and sets exercise.ID.
	CreateExercise(ctx context.Context, exercise *domain.Exercise) error
	// ListExercises returns a user's exercises matching filter, in insertion order,
	// capped at filter.Limit entries.
	ListExercises(ctx context.Context, filter domain.LogFilter) ([]domain.Exercise, error)
}
