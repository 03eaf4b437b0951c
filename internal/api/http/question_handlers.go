package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	authmw "github.com/nocalc-trainer/reviewd/internal/auth/middleware"
	"github.com/nocalc-trainer/reviewd/internal/question"
)

// GET /api/questions/{questionID}
func GetQuestionHandler(store question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "questionID"))
		if id == "" {
			writeError(w, http.StatusBadRequest, "missing_id", "questionID required")
			return
		}
		q, err := store.Get(r.Context(), id)
		if errors.Is(err, question.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "question not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "store_error", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

type updateStatusReq struct {
	Status      string `json:"status"`
	ReviewNotes string `json:"review_notes,omitempty"`
}

// PATCH /api/questions/{questionID}/status
//
// The reviewer identity comes from the validated JWT subject; requests
// without one are rejected before any mutation.
func UpdateStatusHandler(store question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "questionID"))
		if id == "" {
			writeError(w, http.StatusBadRequest, "missing_id", "questionID required")
			return
		}
		reviewer := authmw.SubjectFromContext(r.Context())
		if reviewer == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized", "reviewer identity required")
			return
		}
		var req updateStatusReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json", err.Error())
			return
		}

		q, err := store.UpdateStatus(r.Context(), id, question.Status(req.Status), reviewer, req.ReviewNotes)
		switch {
		case errors.Is(err, question.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "invalid_status", err.Error())
		case errors.Is(err, question.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", "question not found")
		case err != nil:
			writeError(w, http.StatusInternalServerError, "store_error", err.Error())
		default:
			writeJSON(w, http.StatusOK, q)
		}
	}
}

// PATCH /api/questions/{questionID}
//
// Merge-update: only fields present in the body are touched, each string
// field passes through math-spacing normalization before persisting.
func UpdateContentHandler(store question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "questionID"))
		if id == "" {
			writeError(w, http.StatusBadRequest, "missing_id", "questionID required")
			return
		}
		var patch question.ContentPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json", err.Error())
			return
		}

		q, err := store.UpdateContent(r.Context(), id, patch)
		switch {
		case errors.Is(err, question.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", "question not found")
		case err != nil:
			writeError(w, http.StatusInternalServerError, "store_error", err.Error())
		default:
			writeJSON(w, http.StatusOK, q)
		}
	}
}

// DELETE /api/questions/{questionID}
//
// Review-side delete is a terminal status, never row removal.
func DeleteQuestionHandler(store question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "questionID"))
		if id == "" {
			writeError(w, http.StatusBadRequest, "missing_id", "questionID required")
			return
		}
		reviewer := authmw.SubjectFromContext(r.Context())
		if reviewer == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized", "reviewer identity required")
			return
		}
		q, err := store.SoftDelete(r.Context(), id, reviewer)
		switch {
		case errors.Is(err, question.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", "question not found")
		case err != nil:
			writeError(w, http.StatusInternalServerError, "store_error", err.Error())
		default:
			writeJSON(w, http.StatusOK, q)
		}
	}
}
