// internal/api/handler/request.go
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/service"
	"exercise-tracker/internal/util"
)

const maxBodyBytes = 1 << 20

// errMalformedBody is returned when a request body cannot be decoded at all.
var errMalformedBody = errors.New("malformed request body")

// CreateUserRequest represents the request body for POST /api/users.
type CreateUserRequest struct {
	Username string `json:"username"`
}

// Validate checks required fields.
func (r CreateUserRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return util.NewValidationError("username", "is required")
	}
	return nil
}

// AddExerciseRequest represents the request body for POST /api/users/{_id}/exercises.
// Fields are kept as text so form and JSON bodies validate the same way.
type AddExerciseRequest struct {
	Description string
	Duration    string
	Date        string
}

// addExerciseJSON accepts duration as either a JSON number or a numeric string.
type addExerciseJSON struct {
	Description string      `json:"description"`
	Duration    interface{} `json:"duration"`
	Date        string      `json:"date"`
}

// ToInput validates the request and converts it into a service input for userID.
func (r AddExerciseRequest) ToInput(userID string) (service.AddExerciseInput, error) {
	input := service.AddExerciseInput{UserID: userID, Description: r.Description}

	if strings.TrimSpace(r.Description) == "" {
		return input, util.NewValidationError("description", "is required")
	}

	rawDuration := strings.TrimSpace(r.Duration)
	if rawDuration == "" {
		return input, util.NewValidationError("duration", "is required")
	}
	duration, err := strconv.ParseFloat(rawDuration, 64)
	if err != nil || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return input, util.NewValidationError("duration", "must be a number")
	}
	input.Duration = duration

	if strings.TrimSpace(r.Date) != "" {
		date, _, err := domain.ParseDate(r.Date)
		if err != nil {
			return input, util.NewValidationError("date", "is invalid")
		}
		input.Date = &date
	}
	return input, nil
}

// LogRequest holds the raw query parameters of GET /api/users/{_id}/logs.
type LogRequest struct {
	From  string
	To    string
	Limit string
}

// ToQuery validates the parameters and converts them into a service query.
// A date-only "to" covers its whole day; an unusable limit means the default ceiling.
func (r LogRequest) ToQuery(userID string) (service.LogQuery, error) {
	query := service.LogQuery{UserID: userID}

	if strings.TrimSpace(r.From) != "" {
		from, _, err := domain.ParseDate(r.From)
		if err != nil {
			return query, util.NewValidationError("from", "is invalid")
		}
		query.From = &from
	}

	if strings.TrimSpace(r.To) != "" {
		to, dateOnly, err := domain.ParseDate(r.To)
		if err != nil {
			return query, util.NewValidationError("to", "is invalid")
		}
		if dateOnly {
			to = domain.EndOfDay(to)
		}
		query.To = &to
	}

	if limit, err := strconv.Atoi(strings.TrimSpace(r.Limit)); err == nil {
		query.Limit = limit
	}
	return query, nil
}

// decodeCreateUserRequest reads a CreateUserRequest from a JSON or form body.
func decodeCreateUserRequest(w http.ResponseWriter, r *http.Request) (CreateUserRequest, error) {
	var req CreateUserRequest
	if isJSON(r) {
		err := decodeJSON(w, r, &req)
		return req, err
	}
	form, err := decodeForm(w, r)
	if err != nil {
		return req, err
	}
	req.Username = form.Get("username")
	return req, nil
}

// decodeAddExerciseRequest reads an AddExerciseRequest from a JSON or form body.
func decodeAddExerciseRequest(w http.ResponseWriter, r *http.Request) (AddExerciseRequest, error) {
	if isJSON(r) {
		var body addExerciseJSON
		if err := decodeJSON(w, r, &body); err != nil {
			return AddExerciseRequest{}, err
		}
		req := AddExerciseRequest{Description: body.Description, Date: body.Date}
		switch v := body.Duration.(type) {
		case nil:
		case float64:
			req.Duration = strconv.FormatFloat(v, 'f', -1, 64)
		case string:
			req.Duration = v
		default:
			return req, util.NewValidationError("duration", "must be a number")
		}
		return req, nil
	}

	form, err := decodeForm(w, r)
	if err != nil {
		return AddExerciseRequest{}, err
	}
	return AddExerciseRequest{
		Description: form.Get("description"),
		Duration:    form.Get("duration"),
		Date:        form.Get("date"),
	}, nil
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	return nil
}

func decodeForm(w http.ResponseWriter, r *http.Request) (url.Values, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(maxBodyBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	return r.PostForm, nil
}
