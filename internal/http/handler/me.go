package handler

import (
	"net/http"

	"moodledger/internal/account"
	"moodledger/internal/auth"
)

type MeHandler struct {
	Accounts *account.Service
}

func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.AccountIDFromContext(r.Context())

	a, err := h.Accounts.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, a)
}
