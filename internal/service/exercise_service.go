// internal/service/exercise_service.go
package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/observability"
	"exercise-tracker/internal/repository"
	"exercise-tracker/internal/util"
)

// ExerciseService defines the exercise log operations.
type ExerciseService interface {
	AddExercise(ctx context.Context, input AddExerciseInput) (*domain.User, *domain.Exercise, error)
	GetLog(ctx context.Context, query LogQuery) (*domain.User, []domain.Exercise, error)
}

// AddExerciseInput carries an already-decoded append request. A nil Date means "now".
type AddExerciseInput struct {
	UserID      string
	Description string
	Duration    float64
	Date        *time.Time
}

// LogQuery selects a user's log. Limit <= 0 means the default ceiling.
type LogQuery struct {
	UserID string
	From   *time.Time
	To     *time.Time
	Limit  int
}

// Clock returns the current time.
type Clock func() time.Time

type exerciseService struct {
	userRepo     repository.UserRepository
	exerciseRepo repository.ExerciseRepository
	now          Clock
}

// NewExerciseService creates a new instance of ExerciseService. A nil clock uses time.Now.
func NewExerciseService(
	userRepo repository.UserRepository,
	exerciseRepo repository.ExerciseRepository,
	now Clock,
) ExerciseService {
	if now == nil {
		now = time.Now
	}
	return &exerciseService{
		userRepo:     userRepo,
		exerciseRepo: exerciseRepo,
		now:          now,
	}
}

// AddExercise appends an exercise to an existing user's log.
// The user lookup and the insert are separate store calls with no transaction.
func (s *exerciseService) AddExercise(ctx context.Context, input AddExerciseInput) (*domain.User, *domain.Exercise, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, nil, util.NewValidationError("description", "is required")
	}
	if math.IsNaN(input.Duration) || math.IsInf(input.Duration, 0) {
		return nil, nil, util.NewValidationError("duration", "must be a number")
	}

	user, err := s.lookupUser(ctx, input.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("add exercise: %w", err)
	}

	date := s.now()
	if input.Date != nil {
		date = *input.Date
	}

	exercise := domain.NewExercise(user.ID, input.Description, input.Duration, date)
	if err := s.exerciseRepo.CreateExercise(ctx, exercise); err != nil {
		return nil, nil, fmt.Errorf("add exercise: %w", err)
	}
	observability.RecordExerciseLogged(exercise.CreatedAt)
	return user, exercise, nil
}

// GetLog returns a user's exercises filtered by query.
func (s *exerciseService) GetLog(ctx context.Context, query LogQuery) (*domain.User, []domain.Exercise, error) {
	user, err := s.lookupUser(ctx, query.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("get log: %w", err)
	}

	exercises, err := s.exerciseRepo.ListExercises(ctx, domain.LogFilter{
		UserID: user.ID,
		From:   query.From,
		To:     query.To,
		Limit:  domain.ClampLimit(query.Limit),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("get log: %w", err)
	}
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	return user, exercises, nil
}

// lookupUser maps a missing or malformed id to util.ErrUserNotFound.
func (s *exerciseService) lookupUser(ctx context.Context, id string) (*domain.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, util.ErrUserNotFound
	}
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
