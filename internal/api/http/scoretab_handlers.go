package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nocalc-trainer/reviewd/internal/scoretab"
)

// GET /api/tables/{tableKey}
//
// Unknown keys and missing backing files are both 404; a malformed file is
// the server's problem, not the caller's.
func GetScoreTableHandler(tableDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSpace(chi.URLParam(r, "tableKey"))
		if key == "" {
			writeError(w, http.StatusBadRequest, "missing_key", "tableKey required")
			return
		}
		entries, err := scoretab.Load(tableDir, key)
		switch {
		case errors.Is(err, scoretab.ErrUnknownTable), errors.Is(err, scoretab.ErrNotFound):
			writeError(w, http.StatusNotFound, "table_not_found", err.Error())
		case err != nil:
			writeError(w, http.StatusInternalServerError, "table_read_failed", err.Error())
		default:
			writeJSON(w, http.StatusOK, entries)
		}
	}
}
