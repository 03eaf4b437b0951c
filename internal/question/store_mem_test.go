package question

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func seedStore(t *testing.T, n int) Store {
	t.Helper()
	s := NewMemStore()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < n; i++ {
		q := validQuestion()
		q.ID = fmt.Sprintf("q%03d", i)
		q.CreatedAt = base.Add(time.Duration(i) * time.Second)
		q.UpdatedAt = q.CreatedAt
		if err := s.Insert(context.Background(), q); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	return s
}

func TestList_PaginationWindow(t *testing.T) {
	s := seedStore(t, 45)
	page, err := s.List(context.Background(), ListOpts{Page: 3, Limit: 20})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 45 {
		t.Fatalf("total: got %d, want 45", page.Total)
	}
	if len(page.Questions) != 5 {
		t.Fatalf("page size: got %d, want 5", len(page.Questions))
	}
	// Newest first: page 3 holds the 5 oldest.
	if page.Questions[len(page.Questions)-1].ID != "q000" {
		t.Fatalf("expected oldest question last, got %s", page.Questions[len(page.Questions)-1].ID)
	}
}

func TestList_SecondaryTagMembership(t *testing.T) {
	s := NewMemStore()
	q := validQuestion()
	q.ID = "tagged"
	q.SecondaryTags = []string{"fractions", "ratios"}
	if err := s.Insert(context.Background(), q); err != nil {
		t.Fatalf("insert: %v", err)
	}
	q2 := validQuestion()
	q2.ID = "untagged"
	if err := s.Insert(context.Background(), q2); err != nil {
		t.Fatalf("insert: %v", err)
	}

	page, err := s.List(context.Background(), ListOpts{SecondaryTag: "ratios"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Questions) != 1 || page.Questions[0].ID != "tagged" {
		t.Fatalf("membership filter: got %v", page.Questions)
	}
}

func TestUpdateStatus_Transition(t *testing.T) {
	s := seedStore(t, 1)
	q, err := s.UpdateStatus(context.Background(), "q000", StatusApproved, "alex", "looks right")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if q.Status != StatusApproved || q.ReviewedBy != "alex" || q.ReviewNotes != "looks right" {
		t.Fatalf("got %+v", q)
	}
	if q.ReviewedAt == nil {
		t.Fatalf("expected review timestamp")
	}
}

func TestUpdateStatus_BogusValueRejectedWithoutMutation(t *testing.T) {
	s := seedStore(t, 1)
	_, err := s.UpdateStatus(context.Background(), "q000", "bogus_status", "alex", "")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	q, err := s.Get(context.Background(), "q000")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if q.Status != StatusPendingReview || q.ReviewedBy != "" {
		t.Fatalf("record mutated on invalid status: %+v", q)
	}
}

func TestUpdateStatus_DeletedNotAReviewTarget(t *testing.T) {
	s := seedStore(t, 1)
	if _, err := s.UpdateStatus(context.Background(), "q000", StatusDeleted, "alex", ""); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("deleted must go through SoftDelete, got %v", err)
	}
}

func TestUpdateStatus_UnknownID(t *testing.T) {
	s := NewMemStore()
	if _, err := s.UpdateStatus(context.Background(), "nope", StatusApproved, "alex", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateContent_PatchOnlyStem(t *testing.T) {
	s := seedStore(t, 1)
	before, _ := s.Get(context.Background(), "q000")

	stem := "What is 9*9?"
	q, err := s.UpdateContent(context.Background(), "q000", ContentPatch{Stem: &stem})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if q.Stem != "What is 9 * 9?" { // math spacing applied
		t.Fatalf("stem: got %q", q.Stem)
	}
	if q.CorrectOption != before.CorrectOption {
		t.Fatalf("correct_option changed: %q vs %q", q.CorrectOption, before.CorrectOption)
	}
	if len(q.Options) != len(before.Options) {
		t.Fatalf("options changed: %v vs %v", q.Options, before.Options)
	}
	if q.SolutionReasoning != before.SolutionReasoning {
		t.Fatalf("solution changed")
	}
}

func TestUpdateContent_NormalizesMapValues(t *testing.T) {
	s := seedStore(t, 1)
	opts := map[string]string{"A": "x+1", "B": "x  -  2"}
	q, err := s.UpdateContent(context.Background(), "q000", ContentPatch{Options: &opts})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if q.Options["A"] != "x + 1" || q.Options["B"] != "x - 2" {
		t.Fatalf("got %v", q.Options)
	}
}

func TestSoftDelete(t *testing.T) {
	s := seedStore(t, 1)
	q, err := s.SoftDelete(context.Background(), "q000", "alex")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if q.Status != StatusDeleted {
		t.Fatalf("got %q", q.Status)
	}
	// The row is still there.
	if _, err := s.Get(context.Background(), "q000"); err != nil {
		t.Fatalf("soft-deleted row must remain readable: %v", err)
	}
}
