package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	authmw "github.com/nocalc-trainer/reviewd/internal/auth/middleware"
	"github.com/nocalc-trainer/reviewd/internal/question"
)

func seedQuestion(t *testing.T, store question.Store, id string) question.Question {
	t.Helper()
	q := question.Question{
		ID:            id,
		GenerationID:  "g1",
		SchemaID:      "s1",
		Stem:          "What is 2+3?",
		Options:       map[string]string{"A": "5", "B": "6", "C": "7", "D": "8"},
		CorrectOption: "A",
		Difficulty:    question.DifficultyEasy,
		Status:        question.StatusPendingReview,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := store.Insert(context.Background(), q); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return q
}

// withSubject fakes what JWTMiddleware does after validating a token.
func withSubject(sub string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(authmw.WithSubject(r.Context(), sub)))
	})
}

func newRouter(store question.Store, reviewer string) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/questions", ListQuestionsHandler(store))
	r.Get("/api/questions/{questionID}", GetQuestionHandler(store))
	r.Patch("/api/questions/{questionID}/status", UpdateStatusHandler(store))
	r.Patch("/api/questions/{questionID}", UpdateContentHandler(store))
	r.Delete("/api/questions/{questionID}", DeleteQuestionHandler(store))
	if reviewer == "" {
		return r
	}
	return withSubject(reviewer, r)
}

func TestUpdateStatus_OK(t *testing.T) {
	store := question.NewMemStore()
	seedQuestion(t, store, "q1")
	h := newRouter(store, "alex")

	body := strings.NewReader(`{"status":"approved","review_notes":"solid"}`)
	req := httptest.NewRequest("PATCH", "/api/questions/q1/status", body)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var got question.Question
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != question.StatusApproved || got.ReviewedBy != "alex" || got.ReviewNotes != "solid" {
		t.Fatalf("got %+v", got)
	}
}

func TestUpdateStatus_BogusValueIs400AndNoMutation(t *testing.T) {
	store := question.NewMemStore()
	seedQuestion(t, store, "q1")
	h := newRouter(store, "alex")

	req := httptest.NewRequest("PATCH", "/api/questions/q1/status",
		strings.NewReader(`{"status":"bogus_status"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var e apiError
	if err := json.NewDecoder(rec.Body).Decode(&e); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if e.Error != "invalid_status" {
		t.Fatalf("error code: got %q", e.Error)
	}
	q, _ := store.Get(context.Background(), "q1")
	if q.Status != question.StatusPendingReview {
		t.Fatalf("record mutated: %+v", q)
	}
}

func TestUpdateStatus_UnauthenticatedIs401AndNoMutation(t *testing.T) {
	store := question.NewMemStore()
	seedQuestion(t, store, "q1")
	h := newRouter(store, "") // no subject attached

	req := httptest.NewRequest("PATCH", "/api/questions/q1/status",
		strings.NewReader(`{"status":"approved"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	q, _ := store.Get(context.Background(), "q1")
	if q.Status != question.StatusPendingReview || q.ReviewedBy != "" {
		t.Fatalf("record mutated: %+v", q)
	}
}

func TestUpdateContent_PatchOnlyStem(t *testing.T) {
	store := question.NewMemStore()
	before := seedQuestion(t, store, "q1")
	h := newRouter(store, "alex")

	req := httptest.NewRequest("PATCH", "/api/questions/q1",
		strings.NewReader(`{"question_stem":"What is 4+4?"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	q, _ := store.Get(context.Background(), "q1")
	if q.Stem != "What is 4 + 4?" {
		t.Fatalf("stem: %q", q.Stem)
	}
	if q.CorrectOption != before.CorrectOption || len(q.Options) != len(before.Options) {
		t.Fatalf("untouched fields changed: %+v", q)
	}
}

func TestGetQuestion_NotFound(t *testing.T) {
	h := newRouter(question.NewMemStore(), "alex")
	req := httptest.NewRequest("GET", "/api/questions/nope", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestListQuestions_PaginationEnvelope(t *testing.T) {
	store := question.NewMemStore()
	for i := 0; i < 45; i++ {
		seedQuestion(t, store, "q"+string(rune('A'+i/26))+string(rune('a'+i%26)))
	}
	h := newRouter(store, "alex")

	req := httptest.NewRequest("GET", "/api/questions?page=3&limit=20", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp listResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Pagination.Total != 45 || resp.Pagination.TotalPages != 3 {
		t.Fatalf("pagination: %+v", resp.Pagination)
	}
	if len(resp.Questions) != 5 {
		t.Fatalf("page size: %d", len(resp.Questions))
	}
}

func TestListQuestions_UnknownStatusFilterIs400(t *testing.T) {
	h := newRouter(question.NewMemStore(), "alex")
	req := httptest.NewRequest("GET", "/api/questions?status=weird", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestDeleteQuestion_SoftDeletes(t *testing.T) {
	store := question.NewMemStore()
	seedQuestion(t, store, "q1")
	h := newRouter(store, "alex")

	req := httptest.NewRequest("DELETE", "/api/questions/q1", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	q, err := store.Get(context.Background(), "q1")
	if err != nil {
		t.Fatalf("row must remain: %v", err)
	}
	if q.Status != question.StatusDeleted {
		t.Fatalf("got %q", q.Status)
	}
}
