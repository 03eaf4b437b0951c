package question

import "time"

// Status is the review lifecycle state of a question.
type Status string

const (
	StatusPendingReview Status = "pending_review"
	StatusApproved      Status = "approved"
	StatusRejected      Status = "rejected"
	StatusNeedsRevision Status = "needs_revision"
	StatusDeleted       Status = "deleted"
)

// ReviewTargets are the statuses a reviewer may transition a question to.
// "deleted" is terminal and only reachable through SoftDelete.
var ReviewTargets = map[Status]bool{
	StatusPendingReview: true,
	StatusApproved:      true,
	StatusRejected:      true,
	StatusNeedsRevision: true,
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusPendingReview, StatusApproved, StatusRejected, StatusNeedsRevision, StatusDeleted:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

func ValidDifficulty(d Difficulty) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// Question is the canonical, fully-defaulted record served to clients.
// Options maps option letters to option text; DistractorMap maps option
// letters to an explanation of why that option is wrong.
type Question struct {
	ID           string `json:"id"`
	GenerationID string `json:"generation_id"`
	SchemaID     string `json:"schema_id"`

	Stem              string            `json:"question_stem"`
	Options           map[string]string `json:"options"`
	CorrectOption     string            `json:"correct_option"`
	SolutionReasoning string            `json:"solution_reasoning,omitempty"`
	KeyInsight        string            `json:"key_insight,omitempty"`
	DistractorMap     map[string]string `json:"distractor_map,omitempty"`

	Difficulty    Difficulty `json:"difficulty"`
	PrimaryTag    string     `json:"primary_tag,omitempty"`
	SecondaryTags []string   `json:"secondary_tags,omitempty"`
	Subject       string     `json:"subject,omitempty"`
	TestType      string     `json:"test_type,omitempty"`

	Status         Status     `json:"status"`
	ReviewedBy     string     `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	ReviewNotes    string     `json:"review_notes,omitempty"`
	IsGoodQuestion bool       `json:"is_good_question"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Raw is a question record as it arrives from storage or an import feed.
// JSON-bearing fields may be pre-decoded maps or still-encoded text, and any
// field may be missing. Normalize turns a Raw into a canonical Question.
type Raw struct {
	ID           string
	GenerationID string
	SchemaID     string

	Stem              string
	Options           any // map[string]string or JSON text
	CorrectOption     string
	SolutionReasoning string
	KeyInsight        string
	DistractorMap     any // map[string]string or JSON text

	Difficulty    string
	PrimaryTag    string
	SecondaryTags any // []string or JSON text
	Subject       string
	TestType      string

	Status         string
	ReviewedBy     string
	ReviewedAt     *time.Time
	ReviewNotes    string
	IsGoodQuestion any // only an exact bool true counts

	CreatedAt *time.Time
	UpdatedAt *time.Time
}

// ContentPatch is a partial content edit. Nil fields are left untouched in
// storage; present fields are text-normalized before persisting.
type ContentPatch struct {
	Stem              *string            `json:"question_stem,omitempty"`
	Options           *map[string]string `json:"options,omitempty"`
	CorrectOption     *string            `json:"correct_option,omitempty"`
	SolutionReasoning *string            `json:"solution_reasoning,omitempty"`
	KeyInsight        *string            `json:"key_insight,omitempty"`
	DistractorMap     *map[string]string `json:"distractor_map,omitempty"`
	IsGoodQuestion    *bool              `json:"is_good_question,omitempty"`
}

// Empty reports whether the patch carries no fields at all.
func (p ContentPatch) Empty() bool {
	return p.Stem == nil && p.Options == nil && p.CorrectOption == nil &&
		p.SolutionReasoning == nil && p.KeyInsight == nil &&
		p.DistractorMap == nil && p.IsGoodQuestion == nil
}
