package handler

import (
	"net/http"

	"moodledger/internal/auth"
	"moodledger/internal/mood"
)

type StatsHandler struct {
	Svc *mood.Service
}

func (h *StatsHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.AccountIDFromContext(r.Context())

	s, err := h.Svc.Statistics(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s)
}

func (h *StatsHandler) Streak(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.AccountIDFromContext(r.Context())

	streak, err := h.Svc.Streak(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"streak": streak})
}

func (h *StatsHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.AccountIDFromContext(r.Context())

	recs, err := h.Svc.Recommendations(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"recommendations": recs})
}

func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.AccountIDFromContext(r.Context())

	o, err := h.Svc.Overview(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, o)
}
