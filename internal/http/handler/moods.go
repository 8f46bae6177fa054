package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"moodledger/internal/auth"
	"moodledger/internal/mood"
)

type MoodHandler struct {
	Svc *mood.Service
}

type logMoodReq struct {
	Level int      `json:"level"`
	Note  string   `json:"note"`
	Tags  []string `json:"tags"`
}

func (h *MoodHandler) Log(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.AccountIDFromContext(r.Context())

	var req logMoodReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json"})
		return
	}

	id, err := h.Svc.Log(r.Context(), uid, req.Level, req.Note, req.Tags)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (h *MoodHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.AccountIDFromContext(r.Context())

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	records, err := h.Svc.History(r.Context(), uid, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

type updateMoodReq struct {
	Level int    `json:"level"`
	Note  string `json:"note"`
}

func (h *MoodHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.AccountIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateMoodReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json"})
		return
	}

	if err := h.Svc.Update(r.Context(), uid, id, req.Level, req.Note); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *MoodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.AccountIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Delete(r.Context(), uid, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *MoodHandler) Today(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.AccountIDFromContext(r.Context())

	rec, err := h.Svc.TodayMood(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}
	if rec == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no mood logged today"})
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func pathID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
