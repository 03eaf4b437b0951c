package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:nocalc.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/nocalc?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS questions (
  id TEXT PRIMARY KEY,
  generation_id TEXT NOT NULL,
  schema_id TEXT NOT NULL,
  question_stem TEXT NOT NULL,
  options_json TEXT NOT NULL,
  correct_option TEXT NOT NULL,
  solution_reasoning TEXT,
  key_insight TEXT,
  distractor_map_json TEXT,
  difficulty TEXT NOT NULL DEFAULT 'Medium',
  primary_tag TEXT,
  secondary_tags_json TEXT,
  subject TEXT,
  test_type TEXT,
  status TEXT NOT NULL DEFAULT 'pending_review',
  reviewed_by TEXT,
  reviewed_at INTEGER,
  review_notes TEXT,
  is_good_question INTEGER NOT NULL DEFAULT 0,
  created_at INTEGER NOT NULL,
  updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_questions_status_created
  ON questions (status, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_questions_schema
  ON questions (schema_id);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS questions (
  id TEXT PRIMARY KEY,
  generation_id TEXT NOT NULL,
  schema_id TEXT NOT NULL,
  question_stem TEXT NOT NULL,
  options_json TEXT NOT NULL,
  correct_option TEXT NOT NULL,
  solution_reasoning TEXT,
  key_insight TEXT,
  distractor_map_json TEXT,
  difficulty TEXT NOT NULL DEFAULT 'Medium',
  primary_tag TEXT,
  secondary_tags_json TEXT,
  subject TEXT,
  test_type TEXT,
  status TEXT NOT NULL DEFAULT 'pending_review',
  reviewed_by TEXT,
  reviewed_at BIGINT,
  review_notes TEXT,
  is_good_question BOOLEAN NOT NULL DEFAULT FALSE,
  created_at BIGINT NOT NULL,
  updated_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_questions_status_created
  ON questions (status, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_questions_schema
  ON questions (schema_id);
`
