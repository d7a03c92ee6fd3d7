// internal/repository/mongo/exercise_mongo.go
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/repository"
	"exercise-tracker/pkg/db"
)

// exerciseDocument is the stored shape of an exercise. userId holds the user's hex id.
type exerciseDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"userId"`
	Description string             `bson:"description"`
	Duration    float64            `bson:"duration"`
	Date        time.Time          `bson:"date"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func (d exerciseDocument) toDomain() domain.Exercise {
	return domain.Exercise{
		ID:          d.ID.Hex(),
		UserID:      d.UserID,
		Description: d.Description,
		Duration:    d.Duration,
		Date:        d.Date.UTC(),
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

// ExerciseRepository implements repository.ExerciseRepository for MongoDB.
type ExerciseRepository struct {
	collection *mongo.Collection
}

// NewExerciseRepository creates a new ExerciseRepository backed by database's exercises collection.
func NewExerciseRepository(database *mongo.Database) repository.ExerciseRepository {
	return &ExerciseRepository{collection: database.Collection(db.ExercisesCollection)}
}

// CreateExercise inserts a new exercise document.
func (r *ExerciseRepository) CreateExercise(ctx context.Context, exercise *domain.Exercise) error {
	doc := exerciseDocument{
		ID:          primitive.NewObjectID(),
		UserID:      exercise.UserID,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.Date,
		CreatedAt:   exercise.CreatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create exercise: %w", err)
	}
	exercise.ID = doc.ID.Hex()
	return nil
}

// ListExercises retrieves a user's exercises in insertion order.
func (r *ExerciseRepository) ListExercises(ctx context.Context, filter domain.LogFilter) ([]domain.Exercise, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(domain.ClampLimit(filter.Limit)))

	cursor, err := r.collection.Find(ctx, buildLogQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exercises for user %s: %w", filter.UserID, err)
	}

	var docs []exerciseDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode exercises: %w", err)
	}

	exercises := make([]domain.Exercise, 0, len(docs))
	for _, doc := range docs {
		exercises = append(exercises, doc.toDomain())
	}
	return exercises, nil
}

// buildLogQuery adds a date clause only when at least one bound is present.
func buildLogQuery(filter domain.LogFilter) bson.M {
	query := bson.M{"userId": filter.UserID}
	if !filter.HasDateRange() {
		return query
	}

	dateRange := bson.M{}
	if filter.From != nil {
		dateRange["$gte"] = *filter.From
	}
	if filter.To != nil {
		dateRange["$lte"] = *filter.To
	}
	query["date"] = dateRange
	return query
}
