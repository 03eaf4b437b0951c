package question

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound signals an unknown question id.
	ErrNotFound = errors.New("question not found")
	// ErrInvalidStatus signals a status value outside the review enumeration.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrFetch wraps store-level read failures so callers can tell "query
	// failed" apart from a legitimately empty result.
	ErrFetch = errors.New("fetch questions failed")
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// ListOpts is the filter set for listing questions. Zero-value string fields
// mean "no filter"; SecondaryTag is a membership test against the question's
// secondary-tags collection, the rest are exact matches.
type ListOpts struct {
	Status       Status
	SchemaID     string
	Difficulty   Difficulty
	PrimaryTag   string
	SecondaryTag string
	Subject      string
	Page         int
	Limit        int
}

// withDefaults fills in the documented defaults: pending_review status,
// page 1, limit 20. Page is 1-indexed.
func (o ListOpts) withDefaults() ListOpts {
	if o.Status == "" {
		o.Status = StatusPendingReview
	}
	if o.Page < 1 {
		o.Page = DefaultPage
	}
	if o.Limit < 1 {
		o.Limit = DefaultLimit
	}
	return o
}

// Offset is the 0-indexed row offset of the requested page.
func (o ListOpts) Offset() int {
	o = o.withDefaults()
	return (o.Page - 1) * o.Limit
}

// whereClause compiles the filters once into a WHERE fragment plus its
// arguments, so the filter contract is testable without a live store.
// Placeholders use $n, which both the pgx and modernc sqlite drivers accept.
func (o ListOpts) whereClause() (string, []any) {
	o = o.withDefaults()
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	add("status=$%d", string(o.Status))
	if o.SchemaID != "" {
		add("schema_id=$%d", o.SchemaID)
	}
	if o.Difficulty != "" {
		add("difficulty=$%d", string(o.Difficulty))
	}
	if o.PrimaryTag != "" {
		add("primary_tag=$%d", o.PrimaryTag)
	}
	if o.SecondaryTag != "" {
		// secondary_tags_json holds a JSON array of strings; membership is a
		// substring match on the quoted value.
		add("secondary_tags_json LIKE $%d", `%"`+o.SecondaryTag+`"%`)
	}
	if o.Subject != "" {
		add("subject=$%d", o.Subject)
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// Page is one page of matching questions plus the total match count.
type Page struct {
	Questions []Question
	Total     int
}

// Store is the question persistence surface. Both the SQL store and the
// in-memory store implement it.
type Store interface {
	Insert(ctx context.Context, q Question) error
	Get(ctx context.Context, id string) (Question, error)
	List(ctx context.Context, opts ListOpts) (Page, error)
	// UpdateStatus transitions the review status and stamps reviewer
	// identity and time. Target must be one of ReviewTargets.
	UpdateStatus(ctx context.Context, id string, target Status, reviewer, notes string) (Question, error)
	// UpdateContent merge-updates only the fields present in the patch,
	// after text normalization.
	UpdateContent(ctx context.Context, id string, patch ContentPatch) (Question, error)
	// SoftDelete marks the question deleted; rows are never removed through
	// the review workflow.
	SoftDelete(ctx context.Context, id string, reviewer string) (Question, error)
}
