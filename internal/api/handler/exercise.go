// internal/api/handler/exercise.go
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"exercise-tracker/internal/api/types"
	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/service"
	"exercise-tracker/internal/util"
)

// UnknownUserMessage is the body (or error text) sent when a user id does not resolve.
const UnknownUserMessage = "Unknown userId"

// ExerciseHandler handles HTTP requests for the exercise log.
type ExerciseHandler struct {
	responder
	service service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(svc service.ExerciseService, logger *slog.Logger) *ExerciseHandler {
	return &ExerciseHandler{
		responder: responder{logger: logger},
		service:   svc,
	}
}

// AddExercise appends an exercise to a user's log.
// Unknown users get a 200 plain-text "Unknown userId" body, kept for client compatibility.
// POST /api/users/{_id}/exercises
func (h *ExerciseHandler) AddExercise(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "_id")

	req, err := decodeAddExerciseRequest(w, r)
	if err != nil {
		if vErr, ok := util.AsValidationError(err); ok {
			h.respondWithError(w, http.StatusBadRequest, vErr.Error())
			return
		}
		h.logger.Debug("Rejected add exercise body", "error", err)
		h.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	input, err := req.ToInput(userID)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, exercise, err := h.service.AddExercise(r.Context(), input)
	if err != nil {
		switch {
		case util.IsError(err, util.ErrUserNotFound):
			h.respondWithText(w, http.StatusOK, UnknownUserMessage)
		case util.IsError(err, util.ErrInvalidInput):
			h.respondWithError(w, http.StatusBadRequest, validationMessage(err))
		default:
			h.logger.Error("Failed to add exercise", "user_id", userID, "error", err)
			h.respondWithError(w, http.StatusInternalServerError, "Failed to add exercise")
		}
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.ExerciseResponse{
		ID:          user.ID,
		Username:    user.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        domain.FormatCalendarDate(exercise.Date),
	})
}

// GetLog returns a user's exercise log filtered by from/to/limit.
// GET /api/users/{_id}/logs
func (h *ExerciseHandler) GetLog(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "_id")
	params := r.URL.Query()

	query, err := LogRequest{
		From:  params.Get("from"),
		To:    params.Get("to"),
		Limit: params.Get("limit"),
	}.ToQuery(userID)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, exercises, err := h.service.GetLog(r.Context(), query)
	if err != nil {
		switch {
		case util.IsError(err, util.ErrUserNotFound):
			h.respondWithError(w, http.StatusNotFound, UnknownUserMessage)
		case util.IsError(err, util.ErrInvalidInput):
			h.respondWithError(w, http.StatusBadRequest, validationMessage(err))
		default:
			h.logger.Error("Failed to fetch exercise log", "user_id", userID, "error", err)
			h.respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	log := make([]types.LogEntry, 0, len(exercises))
	for _, exercise := range exercises {
		log = append(log, types.LogEntry{
			Description: exercise.Description,
			Duration:    exercise.Duration,
			Date:        domain.FormatCalendarDate(exercise.Date),
		})
	}

	h.respondWithJSON(w, http.StatusOK, types.LogResponse{
		ID:       user.ID,
		Username: user.Username,
		Count:    len(log),
		Log:      log,
	})
}

func validationMessage(err error) string {
	if vErr, ok := util.AsValidationError(err); ok {
		return vErr.Error()
	}
	return util.ErrInvalidInput.Error()
}
