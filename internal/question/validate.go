package question

import "fmt"

// Validate checks a canonical Question for required fields and enum
// membership. It returns nil when the question is valid, otherwise an error
// naming the first offending field.
func Validate(q Question) error {
	if q.ID == "" {
		return fmt.Errorf("missing id")
	}
	if q.GenerationID == "" {
		return fmt.Errorf("missing generation_id")
	}
	if q.SchemaID == "" {
		return fmt.Errorf("missing schema_id")
	}
	if q.Stem == "" {
		return fmt.Errorf("missing question_stem")
	}
	if len(q.Options) == 0 {
		return fmt.Errorf("options must not be empty")
	}
	if q.CorrectOption == "" {
		return fmt.Errorf("missing correct_option")
	}
	if _, ok := q.Options[q.CorrectOption]; !ok {
		return fmt.Errorf("correct_option %q is not an option key", q.CorrectOption)
	}
	if !ValidDifficulty(q.Difficulty) {
		return fmt.Errorf("invalid difficulty %q", q.Difficulty)
	}
	if !ValidStatus(q.Status) {
		return fmt.Errorf("invalid status %q", q.Status)
	}
	return nil
}
