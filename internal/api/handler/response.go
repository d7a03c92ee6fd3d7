// internal/api/handler/response.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"exercise-tracker/internal/api/types"
)

// responder holds the response helpers shared by the handlers.
type responder struct {
	logger *slog.Logger
}

// respondWithJSON sends payload as JSON with the given status code.
func (h responder) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError sends {"error": message}.
func (h responder) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, types.ErrorResponse{Error: message})
}

// respondWithText sends a plain-text body.
func (h responder) respondWithText(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(body))
}
