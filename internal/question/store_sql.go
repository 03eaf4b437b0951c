package question

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nocalc-trainer/reviewd/internal/mathtext"
)

const questionColumns = `id, generation_id, schema_id, question_stem, options_json,
	correct_option, solution_reasoning, key_insight, distractor_map_json,
	difficulty, primary_tag, secondary_tags_json, subject, test_type,
	status, reviewed_by, reviewed_at, review_notes, is_good_question,
	created_at, updated_at`

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) Insert(ctx context.Context, q Question) error {
	if err := Validate(q); err != nil {
		return err
	}
	oj, err := json.Marshal(q.Options)
	if err != nil {
		return err
	}
	dj := ""
	if q.DistractorMap != nil {
		b, err := json.Marshal(q.DistractorMap)
		if err != nil {
			return err
		}
		dj = string(b)
	}
	tj := ""
	if q.SecondaryTags != nil {
		b, err := json.Marshal(q.SecondaryTags)
		if err != nil {
			return err
		}
		tj = string(b)
	}
	var reviewedAt any
	if q.ReviewedAt != nil {
		reviewedAt = q.ReviewedAt.Unix()
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO questions (`+questionColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)`,
		q.ID, q.GenerationID, q.SchemaID, q.Stem, string(oj),
		q.CorrectOption, q.SolutionReasoning, q.KeyInsight, dj,
		string(q.Difficulty), q.PrimaryTag, tj, q.Subject, q.TestType,
		string(q.Status), q.ReviewedBy, reviewedAt, q.ReviewNotes, q.IsGoodQuestion,
		q.CreatedAt.Unix(), q.UpdatedAt.Unix())
	return err
}

func (s *SQLStore) Get(ctx context.Context, id string) (Question, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id=$1`, id)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Question{}, ErrNotFound
	}
	return q, err
}

func (s *SQLStore) List(ctx context.Context, opts ListOpts) (Page, error) {
	opts = opts.withDefaults()
	where, args := opts.whereClause()

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM questions `+where, args...).Scan(&total); err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM questions %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		questionColumns, where, n+1, n+2)
	rows, err := s.db.QueryContext(ctx, query, append(args, opts.Limit, opts.Offset())...)
	if err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer rows.Close()

	out := make([]Question, 0, opts.Limit)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return Page{}, fmt.Errorf("%w: %v", ErrFetch, err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return Page{Questions: out, Total: total}, nil
}

func (s *SQLStore) UpdateStatus(ctx context.Context, id string, target Status, reviewer, notes string) (Question, error) {
	if !ReviewTargets[target] {
		return Question{}, fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}
	now := time.Now().Unix()
	var res sql.Result
	var err error
	if notes != "" {
		res, err = s.db.ExecContext(ctx, `UPDATE questions
			SET status=$1, reviewed_by=$2, reviewed_at=$3, review_notes=$4, updated_at=$5
			WHERE id=$6`,
			string(target), reviewer, now, notes, now, id)
	} else {
		res, err = s.db.ExecContext(ctx, `UPDATE questions
			SET status=$1, reviewed_by=$2, reviewed_at=$3, updated_at=$4
			WHERE id=$5`,
			string(target), reviewer, now, now, id)
	}
	if err != nil {
		return Question{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Question{}, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *SQLStore) UpdateContent(ctx context.Context, id string, patch ContentPatch) (Question, error) {
	if patch.Empty() {
		return s.Get(ctx, id)
	}
	var sets []string
	var args []any
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	if patch.Stem != nil {
		set("question_stem", mathtext.Normalize(*patch.Stem))
	}
	if patch.Options != nil {
		b, err := json.Marshal(mathtext.NormalizeMap(*patch.Options))
		if err != nil {
			return Question{}, err
		}
		set("options_json", string(b))
	}
	if patch.CorrectOption != nil {
		set("correct_option", mathtext.Normalize(*patch.CorrectOption))
	}
	if patch.SolutionReasoning != nil {
		set("solution_reasoning", mathtext.Normalize(*patch.SolutionReasoning))
	}
	if patch.KeyInsight != nil {
		set("key_insight", mathtext.Normalize(*patch.KeyInsight))
	}
	if patch.DistractorMap != nil {
		b, err := json.Marshal(mathtext.NormalizeMap(*patch.DistractorMap))
		if err != nil {
			return Question{}, err
		}
		set("distractor_map_json", string(b))
	}
	if patch.IsGoodQuestion != nil {
		set("is_good_question", *patch.IsGoodQuestion)
	}
	set("updated_at", time.Now().Unix())

	args = append(args, id)
	query := fmt.Sprintf("UPDATE questions SET %s WHERE id=$%d", strings.Join(sets, ", "), len(args))
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return Question{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Question{}, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *SQLStore) SoftDelete(ctx context.Context, id string, reviewer string) (Question, error) {
	now := time.Now().Unix()
	res, err := s.db.ExecContext(ctx, `UPDATE questions
		SET status=$1, reviewed_by=$2, reviewed_at=$3, updated_at=$4 WHERE id=$5`,
		string(StatusDeleted), reviewer, now, now, id)
	if err != nil {
		return Question{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Question{}, ErrNotFound
	}
	return s.Get(ctx, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanQuestion reads a row into a Raw and lets Normalize apply the defaulting
// and decode-fallback rules, so the read path can never fail on a malformed
// JSON column.
func scanQuestion(row rowScanner) (Question, error) {
	var r Raw
	var optionsJSON, distractorJSON, tagsJSON sql.NullString
	var solution, insight, primaryTag, subject, testType sql.NullString
	var reviewedBy, reviewNotes sql.NullString
	var reviewedAt sql.NullInt64
	var isGood sql.NullBool
	var createdAt, updatedAt int64

	err := row.Scan(&r.ID, &r.GenerationID, &r.SchemaID, &r.Stem, &optionsJSON,
		&r.CorrectOption, &solution, &insight, &distractorJSON,
		&r.Difficulty, &primaryTag, &tagsJSON, &subject, &testType,
		&r.Status, &reviewedBy, &reviewedAt, &reviewNotes, &isGood,
		&createdAt, &updatedAt)
	if err != nil {
		return Question{}, err
	}

	if optionsJSON.Valid {
		r.Options = optionsJSON.String
	}
	if distractorJSON.Valid && distractorJSON.String != "" {
		r.DistractorMap = distractorJSON.String
	}
	if tagsJSON.Valid {
		r.SecondaryTags = tagsJSON.String
	}
	r.SolutionReasoning = solution.String
	r.KeyInsight = insight.String
	r.PrimaryTag = primaryTag.String
	r.Subject = subject.String
	r.TestType = testType.String
	r.ReviewedBy = reviewedBy.String
	r.ReviewNotes = reviewNotes.String
	if reviewedAt.Valid {
		t := time.Unix(reviewedAt.Int64, 0)
		r.ReviewedAt = &t
	}
	if isGood.Valid {
		r.IsGoodQuestion = isGood.Bool
	}
	ct := time.Unix(createdAt, 0)
	ut := time.Unix(updatedAt, 0)
	r.CreatedAt = &ct
	r.UpdatedAt = &ut

	return Normalize(r), nil
}
