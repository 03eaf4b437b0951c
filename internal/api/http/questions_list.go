package http

import (
	"net/http"
	"strings"

	"github.com/nocalc-trainer/reviewd/internal/question"
)

type pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type listResponse struct {
	Questions  []question.Question `json:"questions"`
	Pagination pagination          `json:"pagination"`
}

// GET /api/questions?status=...&page=1&limit=20&schema_id=...&difficulty=...
//
//	&primary_tag=...&secondary_tag=...&subject=...
func ListQuestionsHandler(store question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		opts := question.ListOpts{
			Status:       question.Status(strings.TrimSpace(qv.Get("status"))),
			SchemaID:     strings.TrimSpace(qv.Get("schema_id")),
			Difficulty:   question.Difficulty(strings.TrimSpace(qv.Get("difficulty"))),
			PrimaryTag:   strings.TrimSpace(qv.Get("primary_tag")),
			SecondaryTag: strings.TrimSpace(qv.Get("secondary_tag")),
			Subject:      strings.TrimSpace(qv.Get("subject")),
			Page:         parseIntDefault(qv.Get("page"), question.DefaultPage),
			Limit:        parseIntDefault(qv.Get("limit"), question.DefaultLimit),
		}
		if opts.Status != "" && !question.ValidStatus(opts.Status) {
			writeError(w, http.StatusBadRequest, "invalid_status",
				"unknown status filter: "+string(opts.Status))
			return
		}

		page, err := store.List(r.Context(), opts)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "store_error", err.Error())
			return
		}

		limit := opts.Limit
		if limit < 1 {
			limit = question.DefaultLimit
		}
		pageNum := opts.Page
		if pageNum < 1 {
			pageNum = question.DefaultPage
		}
		totalPages := (page.Total + limit - 1) / limit
		writeJSON(w, http.StatusOK, listResponse{
			Questions: page.Questions,
			Pagination: pagination{
				Page:       pageNum,
				Limit:      limit,
				Total:      page.Total,
				TotalPages: totalPages,
			},
		})
	}
}
