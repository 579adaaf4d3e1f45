package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vytor/wkstats/internal/errors"
	"github.com/vytor/wkstats/internal/logger"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

func levelParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "level")
	level, err := strconv.Atoi(raw)
	if err != nil || level < 1 {
		return 0, errors.NewBadRequestError("level must be a positive integer")
	}
	return level, nil
}

// invalidCredential is the body for a token the upstream rejected.
var invalidCredential = map[string]bool{"valid": false}
