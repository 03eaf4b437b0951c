// Package scoretab serves the static cumulative-score lookup tables used by
// the analytics views: for a given raw score, the percentage of test takers
// at or below it.
package scoretab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

var (
	// ErrUnknownTable signals a key outside the fixed table map.
	ErrUnknownTable = errors.New("unknown table key")
	// ErrNotFound signals a mapped key whose backing file is absent.
	ErrNotFound = errors.New("table file not found")
)

// tableFiles is the fixed key → filename map. Files are CSV with a header
// row; column 0 is the raw score, column 2 the cumulative percentage.
var tableFiles = map[string]string{
	"sat_math":    "sat_math.csv",
	"sat_reading": "sat_reading.csv",
	"act_math":    "act_math.csv",
	"act_science": "act_science.csv",
	"psat_math":   "psat_math.csv",
}

type Entry struct {
	Score         int     `json:"score"`
	CumulativePct float64 `json:"cumulativePct"`
}

// Load reads the table for key from dir, sorted ascending by score.
func Load(dir, key string) ([]Entry, error) {
	name, ok := tableFiles[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, key)
	}
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // column count varies beyond the three we use
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	if len(rows) < 2 {
		return []Entry{}, nil
	}

	out := make([]Entry, 0, len(rows)-1)
	for i, row := range rows[1:] { // skip header
		if len(row) < 3 {
			return nil, fmt.Errorf("parse %s: row %d has %d columns, want at least 3", name, i+2, len(row))
		}
		score, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("parse %s: row %d score: %w", name, i+2, err)
		}
		pct, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s: row %d cumulative pct: %w", name, i+2, err)
		}
		out = append(out, Entry{Score: score, CumulativePct: pct})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	return out, nil
}
