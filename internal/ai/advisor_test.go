package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jobscout/jobscout/internal/jobs"
	"github.com/jobscout/jobscout/internal/resume"
	"github.com/jobscout/jobscout/internal/scoring"
	"github.com/jobscout/jobscout/internal/taxonomy"
)

type stubAdvisor struct {
	calls int
	fail  string
}

func (s *stubAdvisor) Assess(_ context.Context, _ string, posting *jobs.Posting) (*FitAssessment, error) {
	s.calls++
	if posting.Company == s.fail {
		return nil, errors.New("model unavailable")
	}
	return &FitAssessment{Fit: true, Score: 90, Reason: "good match"}, nil
}

func matches(companies ...string) []*scoring.MatchResult {
	out := make([]*scoring.MatchResult, 0, len(companies))
	for _, c := range companies {
		out = append(out, &scoring.MatchResult{Posting: &jobs.Posting{Company: c, Title: "Engineer"}})
	}
	return out
}

func TestAnnotateTopN(t *testing.T) {
	advisor := &stubAdvisor{}
	ranked := matches("a", "b", "c")

	Annotate(context.Background(), advisor, "summary", ranked, 2, nil)

	if advisor.calls != 2 {
		t.Fatalf("expected 2 assessments, got %d", advisor.calls)
	}
	if ranked[0].Posting.AI == nil || !ranked[0].Posting.AI.Fit {
		t.Fatalf("expected annotation on first match: %+v", ranked[0].Posting.AI)
	}
	if ranked[2].Posting.AI != nil {
		t.Fatalf("match beyond topN must stay unannotated")
	}
}

func TestAnnotateRecordsFailures(t *testing.T) {
	advisor := &stubAdvisor{fail: "a"}
	ranked := matches("a", "b")

	Annotate(context.Background(), advisor, "summary", ranked, 0, nil)

	if ranked[0].Posting.AI == nil || ranked[0].Posting.AI.Error == "" {
		t.Fatalf("expected failure recorded on posting: %+v", ranked[0].Posting.AI)
	}
	if ranked[1].Posting.AI == nil || !ranked[1].Posting.AI.Fit {
		t.Fatalf("failure must not stop later assessments: %+v", ranked[1].Posting.AI)
	}
}

func TestProfileSummary(t *testing.T) {
	profile := resume.ExtractProfile(
		"Data Engineer\nJan 2020 - Jan 2023\nPython and SQL experience.",
		taxonomy.Default(),
	)

	summary := ProfileSummary(profile)
	for _, want := range []string{"Experience: 3.0 years", "python", "sql", "data engineer"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}
}
