package question

import (
	"strings"
	"testing"
)

func TestListOptsDefaults(t *testing.T) {
	o := ListOpts{}.withDefaults()
	if o.Status != StatusPendingReview {
		t.Fatalf("status default: got %q", o.Status)
	}
	if o.Page != 1 || o.Limit != 20 {
		t.Fatalf("paging defaults: got page=%d limit=%d", o.Page, o.Limit)
	}
}

func TestOffsetWindow(t *testing.T) {
	// total=45, limit=20, page=3 → window starts at row 40 (0-indexed).
	o := ListOpts{Page: 3, Limit: 20}
	if got := o.Offset(); got != 40 {
		t.Fatalf("offset: got %d, want 40", got)
	}
	total, limit := 45, 20
	if totalPages := (total + limit - 1) / limit; totalPages != 3 {
		t.Fatalf("totalPages: got %d, want 3", totalPages)
	}
}

func TestWhereClause_StatusOnly(t *testing.T) {
	where, args := ListOpts{}.whereClause()
	if where != "WHERE status=$1" {
		t.Fatalf("got %q", where)
	}
	if len(args) != 1 || args[0] != string(StatusPendingReview) {
		t.Fatalf("got args %v", args)
	}
}

func TestWhereClause_AllFilters(t *testing.T) {
	o := ListOpts{
		Status:       StatusApproved,
		SchemaID:     "s1",
		Difficulty:   DifficultyHard,
		PrimaryTag:   "algebra",
		SecondaryTag: "fractions",
		Subject:      "Math",
	}
	where, args := o.whereClause()
	for _, frag := range []string{
		"status=$1", "schema_id=$2", "difficulty=$3",
		"primary_tag=$4", "secondary_tags_json LIKE $5", "subject=$6",
	} {
		if !strings.Contains(where, frag) {
			t.Fatalf("where %q missing %q", where, frag)
		}
	}
	if len(args) != 6 {
		t.Fatalf("got %d args", len(args))
	}
	if args[4] != `%"fractions"%` {
		t.Fatalf("membership arg: got %v", args[4])
	}
}
