package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"tpv-server/internal/domain"
)

// Every endpoint exchanges exactly one JSON object, never a bare array.

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto the {ok:false, error} envelope.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrTableNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "table not found"})
	case errors.Is(err, domain.ErrOrderNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "order not found"})
	case errors.Is(err, domain.ErrMenuItemNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "menu item not found"})
	case errors.Is(err, domain.ErrInvalidCategory):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid menu category"})
	case errors.Is(err, domain.ErrIntegrity):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "integrity violation"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
