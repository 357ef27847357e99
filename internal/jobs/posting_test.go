package jobs

import "testing"

func TestDedupKeyNormalizes(t *testing.T) {
	a := &Posting{Company: " Acme Corp ", Title: "Data Engineer"}
	b := &Posting{Company: "acme corp", Title: "DATA ENGINEER", Platform: "other", URL: "https://other.example/1"}

	if a.DedupKey() != b.DedupKey() {
		t.Fatalf("expected equal dedup keys, got %q vs %q", a.DedupKey(), b.DedupKey())
	}

	c := &Posting{Company: "acme corp", Title: "Data Analyst"}
	if a.DedupKey() == c.DedupKey() {
		t.Fatalf("different titles must not collide: %q", a.DedupKey())
	}
}
