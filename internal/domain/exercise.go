// internal/domain/exercise.go
package domain

import "time"

// DefaultLogLimit caps a log query when no usable limit was supplied.
const DefaultLogLimit = 500

// Exercise is a single logged exercise entry. UserID is a weak reference to User.ID.
type Exercise struct {
	ID          string    `db:"id" json:"-"`
	UserID      string    `db:"user_id" json:"-"`
	Description string    `db:"description" json:"description"`
	Duration    float64   `db:"duration" json:"duration"` // Minutes
	Date        time.Time `db:"date" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"-"`
}

// NewExercise creates a new Exercise for the given user.
func NewExercise(userID, description string, duration float64, date time.Time) *Exercise {
	return &Exercise{
		UserID:      userID,
		Description: description,
		Duration:    duration,
		Date:        date.UTC(),
		CreatedAt:   time.Now().UTC(),
	}
}

// LogFilter selects the exercises returned by a log query.
// From and To are inclusive and independent; nil means unbounded.
type LogFilter struct {
	UserID string
	From   *time.Time
	To     *time.Time
	Limit  int
}

// HasDateRange reports whether either bound is set.
func (f LogFilter) HasDateRange() bool {
	return f.From != nil || f.To != nil
}

// ClampLimit turns a requested limit into the effective one.
// Non-positive values mean DefaultLogLimit; positive values pass through.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLogLimit
	}
	return limit
}
