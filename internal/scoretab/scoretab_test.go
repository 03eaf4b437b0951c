package scoretab

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTable(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write table: %v", err)
	}
}

func TestLoad_SortsAscendingByScore(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, "sat_math.csv",
		"score,pct,cumulative_pct\n20,3.0,15.5\n10,5.0,12.5\n")

	entries, err := Load(dir, "sat_math")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	if entries[0].Score != 10 || entries[0].CumulativePct != 12.5 {
		t.Fatalf("entry 0: %+v", entries[0])
	}
	if entries[1].Score != 20 || entries[1].CumulativePct != 15.5 {
		t.Fatalf("entry 1: %+v", entries[1])
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	_, err := Load(t.TempDir(), "gre_verbal")
	if !errors.Is(err, ErrUnknownTable) {
		t.Fatalf("expected ErrUnknownTable, got %v", err)
	}
}

func TestLoad_MappedKeyMissingFile(t *testing.T) {
	_, err := Load(t.TempDir(), "sat_math")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing file must be not-found, got %v", err)
	}
}

func TestLoad_ExtraColumnsTolerated(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, "act_math.csv",
		"score,pct,cumulative_pct,n\n36,0.5,99.9,120\n1,0.1,0.1,3\n")
	entries, err := Load(dir, "act_math")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if entries[0].Score != 1 || entries[1].Score != 36 {
		t.Fatalf("got %+v", entries)
	}
}

func TestLoad_ShortRowIsParseError(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, "sat_math.csv", "score,pct,cumulative_pct\n10,5.0\n")
	_, err := Load(dir, "sat_math")
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if errors.Is(err, ErrUnknownTable) || errors.Is(err, ErrNotFound) {
		t.Fatalf("parse failure must not look like not-found: %v", err)
	}
}

func TestLoad_BadNumberIsParseError(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, "sat_math.csv", "score,pct,cumulative_pct\nten,5.0,12.5\n")
	if _, err := Load(dir, "sat_math"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoad_HeaderOnlyIsEmpty(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, "sat_math.csv", "score,pct,cumulative_pct\n")
	entries, err := Load(dir, "sat_math")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("got %+v", entries)
	}
}
