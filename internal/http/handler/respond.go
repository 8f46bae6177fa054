package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"moodledger/internal/account"
	"moodledger/internal/auth"
	"moodledger/internal/mood"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service sentinels to status codes. Unexpected errors are
// logged and collapsed to a generic 500 so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, account.ErrInvalidInput),
		errors.Is(err, mood.ErrInvalidInput),
		errors.Is(err, auth.ErrPasswordTooShort):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, account.ErrDuplicateAccount):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, account.ErrAuthenticationFailed):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": account.ErrAuthenticationFailed.Error()})
	case errors.Is(err, account.ErrNotFound), errors.Is(err, mood.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		log.Error("request failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
	}
}
