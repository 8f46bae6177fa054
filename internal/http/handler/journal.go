package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"moodledger/internal/auth"
	"moodledger/internal/mood"
)

type JournalHandler struct {
	Svc *mood.Service
}

type saveEntryReq struct {
	Content string `json:"content"`
}

func (h *JournalHandler) Save(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.AccountIDFromContext(r.Context())

	var req saveEntryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json"})
		return
	}

	id, err := h.Svc.SaveEntry(r.Context(), uid, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.AccountIDFromContext(r.Context())

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	entries, err := h.Svc.Entries(r.Context(), uid, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func (h *JournalHandler) Latest(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.AccountIDFromContext(r.Context())

	e, err := h.Svc.LatestEntry(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}
	if e == nil {
		// mirror an empty entry rather than 404 so dashboards stay simple
		writeJSON(w, http.StatusOK, map[string]any{"content": "", "recorded_at": nil})
		return
	}

	writeJSON(w, http.StatusOK, e)
}
