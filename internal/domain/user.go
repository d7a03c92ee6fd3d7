// internal/domain/user.go
package domain

import "time"

// User represents a registered user of the exercise tracker.
type User struct {
	ID        string    `db:"id" json:"_id"`            // Store-generated, opaque
	Username  string    `db:"username" json:"username"` // Not unique
	CreatedAt time.Time `db:"created_at" json:"-"`      // Insertion time, used for ordering
}

// NewUser creates a new User instance. The ID is assigned by the store on insert.
func NewUser(username string) *User {
	return &User{
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
}
