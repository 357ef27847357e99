package taxonomy

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTermsAreDeterministic(t *testing.T) {
	first := Default().Terms()
	second := Default().Terms()

	if len(first) == 0 {
		t.Fatalf("expected built-in vocabulary to be non-empty")
	}
	if len(first) != len(second) {
		t.Fatalf("term count changed between calls: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("term order not deterministic at %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestMatchText(t *testing.T) {
	tax := Default()

	found := tax.MatchText("Looking for Python and PostgreSQL experience, Kubernetes a plus")

	want := map[string]bool{"python": true, "postgresql": true, "kubernetes": true}
	for _, term := range found {
		delete(want, term)
	}
	if len(want) != 0 {
		t.Fatalf("missing expected terms: %v (got %v)", want, found)
	}
}

func TestMatchTextShortTermsNeedWordBoundaries(t *testing.T) {
	tax := Default()

	found := tax.MatchText("5 years of experience with great organisations")
	for _, term := range found {
		if term == "r" || term == "go" {
			t.Fatalf("short term %q matched inside unrelated words", term)
		}
	}

	found = tax.MatchText("Proficient in R, Go and SQL")
	want := map[string]bool{"r": true, "go": true, "sql": true}
	for _, term := range found {
		delete(want, term)
	}
	if len(want) != 0 {
		t.Fatalf("missing expected short terms: %v (got %v)", want, found)
	}
}

func TestMatchTextMultibyteNeighbors(t *testing.T) {
	tax := Default()

	// Accented letters next to a short term are still letters, not
	// boundaries.
	for _, term := range tax.MatchText("vår kær açaí naïveté") {
		if term == "r" || term == "a" || term == "c" {
			t.Fatalf("short term %q matched inside a multibyte word", term)
		}
	}

	found := tax.MatchText("kjenner du R og Go på jobben")
	want := map[string]bool{"r": true, "go": true}
	for _, term := range found {
		delete(want, term)
	}
	if len(want) != 0 {
		t.Fatalf("missing expected short terms: %v (got %v)", want, found)
	}
}

func TestSkillsEquivalent(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"js", "JavaScript", true},
		{"k8s", "kubernetes", true},
		{"ML", "machine learning", true},
		{"Node.JS", "nodejs", true},
		{"python", "java", false},
		{"sql", "mysql", false},
	}

	for _, tc := range cases {
		if got := SkillsEquivalent(tc.a, tc.b); got != tc.want {
			t.Fatalf("SkillsEquivalent(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestLoadReplacesCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	content := "categories:\n  custom:\n    - cobol\n    - fortran\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	tax, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	terms := tax.Terms()
	if len(terms) != 2 || terms[0] != "cobol" || terms[1] != "fortran" {
		t.Fatalf("unexpected terms: %v", terms)
	}

	// Roles and stop-words fall back to defaults.
	if len(tax.Roles) == 0 {
		t.Fatalf("expected default roles to be kept")
	}
	if !tax.IsStopWord("the") {
		t.Fatalf("expected default stop-words to be kept")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
