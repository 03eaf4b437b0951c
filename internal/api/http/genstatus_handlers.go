package http

import (
	"net/http"

	"github.com/nocalc-trainer/reviewd/internal/genstatus"
)

// GET /api/generation/status
func GetGenerationStatusHandler(mgr *genstatus.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, mgr.Load())
	}
}

// POST /api/generation/stop
func StopGenerationHandler(mgr *genstatus.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := mgr.Stop()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "status_write_failed", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

// POST /api/generation/reset
func ResetGenerationHandler(mgr *genstatus.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := mgr.Reset()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "status_write_failed", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}
