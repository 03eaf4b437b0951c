package question

import (
	"encoding/json"
	"log"
	"time"
)

// Normalize produces a fully-defaulted canonical Question from a raw record.
// It never fails: malformed JSON-bearing fields degrade to their empty value
// and are logged, missing enums fall back to Medium / pending_review, and
// missing timestamps default to now (the default is not written back unless
// the caller persists the record).
func Normalize(r Raw) Question {
	now := time.Now()

	q := Question{
		ID:                r.ID,
		GenerationID:      r.GenerationID,
		SchemaID:          r.SchemaID,
		Stem:              r.Stem,
		Options:           decodeStringMap(r.ID, "options", r.Options),
		CorrectOption:     r.CorrectOption,
		SolutionReasoning: r.SolutionReasoning,
		KeyInsight:        r.KeyInsight,
		Difficulty:        Difficulty(r.Difficulty),
		PrimaryTag:        r.PrimaryTag,
		SecondaryTags:     decodeStringSlice(r.ID, r.SecondaryTags),
		Subject:           r.Subject,
		TestType:          r.TestType,
		Status:            Status(r.Status),
		ReviewedBy:        r.ReviewedBy,
		ReviewedAt:        r.ReviewedAt,
		ReviewNotes:       r.ReviewNotes,
		IsGoodQuestion:    r.IsGoodQuestion == true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	// DistractorMap stays absent (nil) when missing, unlike Options which
	// always comes back as a non-nil map.
	if r.DistractorMap != nil {
		if m := decodeStringMap(r.ID, "distractor_map", r.DistractorMap); len(m) > 0 {
			q.DistractorMap = m
		}
	}

	if !ValidDifficulty(q.Difficulty) {
		q.Difficulty = DifficultyMedium
	}
	if !ValidStatus(q.Status) {
		q.Status = StatusPendingReview
	}
	if r.CreatedAt != nil {
		q.CreatedAt = *r.CreatedAt
	}
	if r.UpdatedAt != nil {
		q.UpdatedAt = *r.UpdatedAt
	}
	return q
}

// decodeStringMap accepts a pre-decoded map, JSON text, or nothing, and
// always returns a usable map. Decode failures are logged once here and
// degrade to empty.
func decodeStringMap(id, field string, v any) map[string]string {
	switch x := v.(type) {
	case nil:
		return map[string]string{}
	case map[string]string:
		if x == nil {
			return map[string]string{}
		}
		return x
	case map[string]any:
		out := make(map[string]string, len(x))
		for k, vv := range x {
			if s, ok := vv.(string); ok {
				out[k] = s
			}
		}
		return out
	case string:
		if x == "" {
			return map[string]string{}
		}
		var out map[string]string
		if err := json.Unmarshal([]byte(x), &out); err != nil {
			log.Printf("question %s: malformed %s, defaulting to empty: %v", id, field, err)
			return map[string]string{}
		}
		if out == nil {
			out = map[string]string{}
		}
		return out
	case []byte:
		return decodeStringMap(id, field, string(x))
	default:
		log.Printf("question %s: unexpected %s type %T, defaulting to empty", id, field, v)
		return map[string]string{}
	}
}

func decodeStringSlice(id string, v any) []string {
	switch x := v.(type) {
	case nil:
		return nil
	case []string:
		return x
	case []any:
		out := make([]string, 0, len(x))
		for _, vv := range x {
			if s, ok := vv.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if x == "" {
			return nil
		}
		var out []string
		if err := json.Unmarshal([]byte(x), &out); err != nil {
			log.Printf("question %s: malformed secondary_tags, defaulting to none: %v", id, err)
			return nil
		}
		return out
	case []byte:
		return decodeStringSlice(id, string(x))
	default:
		log.Printf("question %s: unexpected secondary_tags type %T, defaulting to none", id, v)
		return nil
	}
}
