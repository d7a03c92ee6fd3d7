// internal/api/handler/user.go
package handler

import (
	"log/slog"
	"net/http"

	"exercise-tracker/internal/api/types"
	"exercise-tracker/internal/service"
	"exercise-tracker/internal/util"
)

// UserHandler handles HTTP requests for the user directory.
type UserHandler struct {
	responder
	service service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		responder: responder{logger: logger},
		service:   svc,
	}
}

// ListUsers returns every user as {username, _id}.
// GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("Failed to list users", "error", err)
		h.respondWithError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}

	resp := make([]types.UserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, types.UserResponse{Username: user.Username, ID: user.ID})
	}
	h.respondWithJSON(w, http.StatusOK, resp)
}

// CreateUser registers a new user.
// POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCreateUserRequest(w, r)
	if err != nil {
		h.logger.Debug("Rejected create user body", "error", err)
		h.respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		h.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.service.CreateUser(r.Context(), req.Username)
	if err != nil {
		if vErr, ok := util.AsValidationError(err); ok {
			h.respondWithError(w, http.StatusBadRequest, vErr.Error())
			return
		}
		h.logger.Error("Failed to create user", "error", err)
		h.respondWithError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.UserResponse{Username: user.Username, ID: user.ID})
}
