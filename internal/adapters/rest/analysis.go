package rest

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/ewilliams-labs/resonate/internal/core/domain"
)

type analyzeRequest struct {
	SessionID   string `json:"session_id"`
	PlaylistURL string `json:"playlist_url"`
}

// AnalyzePlaylist handles POST /analyses. It runs the full pipeline and
// always answers 200 with a complete result for reachable playlists;
// degraded results are not errors. Only malformed input and empty
// playlists map to error statuses.
func (h *Handler) AnalyzePlaylist(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	result, err := h.svc.Analyze(r.Context(), req.SessionID, req.PlaylistURL)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPlaylistID):
			http.Error(w, "invalid playlist url or id", http.StatusBadRequest)
		case errors.Is(err, domain.ErrEmptyPlaylist):
			http.Error(w, "playlist has no tracks", http.StatusUnprocessableEntity)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// LatestAnalysis handles GET /sessions/{id}/analysis, serving the
// session's cached slot.
func (h *Handler) LatestAnalysis(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		http.Error(w, "session id is required", http.StatusBadRequest)
		return
	}

	result, err := h.svc.Latest(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "no analysis for this session", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
