package question

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/nocalc-trainer/reviewd/internal/mathtext"
)

// memStore is the in-memory Store used for tests and offline development.
// It mirrors the SQL store's filter and update semantics.
type memStore struct {
	mu        sync.RWMutex
	questions map[string]Question
}

func NewMemStore() Store {
	return &memStore{questions: map[string]Question{}}
}

func (m *memStore) Insert(_ context.Context, q Question) error {
	if err := Validate(q); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions[q.ID] = q
	return nil
}

func (m *memStore) Get(_ context.Context, id string) (Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.questions[id]
	if !ok {
		return Question{}, ErrNotFound
	}
	return q, nil
}

func (m *memStore) List(_ context.Context, opts ListOpts) (Page, error) {
	opts = opts.withDefaults()
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]Question, 0, len(m.questions))
	for _, q := range m.questions {
		if q.Status != opts.Status {
			continue
		}
		if opts.SchemaID != "" && q.SchemaID != opts.SchemaID {
			continue
		}
		if opts.Difficulty != "" && q.Difficulty != opts.Difficulty {
			continue
		}
		if opts.PrimaryTag != "" && q.PrimaryTag != opts.PrimaryTag {
			continue
		}
		if opts.SecondaryTag != "" && !containsTag(q.SecondaryTags, opts.SecondaryTag) {
			continue
		}
		if opts.Subject != "" && q.Subject != opts.Subject {
			continue
		}
		all = append(all, q)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := len(all)
	start := opts.Offset()
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}
	return Page{Questions: all[start:end], Total: total}, nil
}

func (m *memStore) UpdateStatus(_ context.Context, id string, target Status, reviewer, notes string) (Question, error) {
	if !ReviewTargets[target] {
		return Question{}, fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.questions[id]
	if !ok {
		return Question{}, ErrNotFound
	}
	now := time.Now()
	q.Status = target
	q.ReviewedBy = reviewer
	q.ReviewedAt = &now
	if notes != "" {
		q.ReviewNotes = notes
	}
	q.UpdatedAt = now
	m.questions[id] = q
	return q, nil
}

func (m *memStore) UpdateContent(_ context.Context, id string, patch ContentPatch) (Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.questions[id]
	if !ok {
		return Question{}, ErrNotFound
	}
	if patch.Stem != nil {
		q.Stem = mathtext.Normalize(*patch.Stem)
	}
	if patch.Options != nil {
		q.Options = mathtext.NormalizeMap(*patch.Options)
	}
	if patch.CorrectOption != nil {
		q.CorrectOption = mathtext.Normalize(*patch.CorrectOption)
	}
	if patch.SolutionReasoning != nil {
		q.SolutionReasoning = mathtext.Normalize(*patch.SolutionReasoning)
	}
	if patch.KeyInsight != nil {
		q.KeyInsight = mathtext.Normalize(*patch.KeyInsight)
	}
	if patch.DistractorMap != nil {
		q.DistractorMap = mathtext.NormalizeMap(*patch.DistractorMap)
	}
	if patch.IsGoodQuestion != nil {
		q.IsGoodQuestion = *patch.IsGoodQuestion
	}
	if !patch.Empty() {
		q.UpdatedAt = time.Now()
	}
	m.questions[id] = q
	return q, nil
}

func (m *memStore) SoftDelete(_ context.Context, id string, reviewer string) (Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.questions[id]
	if !ok {
		return Question{}, ErrNotFound
	}
	now := time.Now()
	q.Status = StatusDeleted
	q.ReviewedBy = reviewer
	q.ReviewedAt = &now
	q.UpdatedAt = now
	m.questions[id] = q
	return q, nil
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
