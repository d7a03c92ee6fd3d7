// internal/api/types/response.go
package types

// UserResponse is a user as returned by the directory endpoints.
type UserResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

// ExerciseResponse is returned after appending an exercise.
// Date is rendered as a calendar string, e.g. "Mon Jan 01 2024".
type ExerciseResponse struct {
	ID          string  `json:"_id"`
	Username    string  `json:"username"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

// LogEntry is one exercise inside a LogResponse.
type LogEntry struct {
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

// LogResponse is a user's filtered exercise log. Count always equals len(Log).
type LogResponse struct {
	ID       string     `json:"_id"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
