package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jobscout/jobscout/internal/jobs"
)

type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func samplePosting() *jobs.Posting {
	return &jobs.Posting{
		Platform:    "remoteok",
		Title:       "Data Engineer",
		Company:     "Acme",
		Description: "Python pipelines",
		URL:         "https://example.com/jobs/1",
	}
}

func TestAdvisorAssess(t *testing.T) {
	gen := &stubGenerator{response: `{"fit": true, "score": 83.5, "reason": "strong skill overlap"}`}
	advisor := NewAdvisor(gen, nil, 0)

	assessment, err := advisor.Assess(context.Background(), "Experience: 3 years\nSkills: python, sql", samplePosting())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !assessment.Fit || assessment.Score != 83.5 || assessment.Reason != "strong skill overlap" {
		t.Fatalf("unexpected assessment: %+v", assessment)
	}
	if assessment.Raw == "" {
		t.Fatalf("expected raw response to be kept")
	}

	if len(gen.prompts) != 1 {
		t.Fatalf("expected one prompt, got %d", len(gen.prompts))
	}
	prompt := gen.prompts[0]
	if !strings.Contains(prompt, "Data Engineer") || !strings.Contains(prompt, "Skills: python, sql") {
		t.Fatalf("prompt is missing the payloads:\n%s", prompt)
	}
}

func TestAdvisorAssessFencedResponse(t *testing.T) {
	gen := &stubGenerator{response: "```json\n{\"fit\": \"yes\", \"score\": \"72\", \"reason\": \"ok\"}\n```"}
	advisor := NewAdvisor(gen, nil, 0)

	assessment, err := advisor.Assess(context.Background(), "summary", samplePosting())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !assessment.Fit || assessment.Score != 72 {
		t.Fatalf("unexpected assessment: %+v", assessment)
	}
}

func TestAdvisorAssessMalformedResponse(t *testing.T) {
	gen := &stubGenerator{response: "I think this candidate is great!"}
	advisor := NewAdvisor(gen, nil, 0)

	if _, err := advisor.Assess(context.Background(), "summary", samplePosting()); err == nil {
		t.Fatalf("expected error for non-JSON response")
	}
}

func TestAdvisorAssessGeneratorError(t *testing.T) {
	boom := errors.New("quota exceeded")
	advisor := NewAdvisor(&stubGenerator{err: boom}, nil, 0)

	if _, err := advisor.Assess(context.Background(), "summary", samplePosting()); !errors.Is(err, boom) {
		t.Fatalf("expected generator error, got %v", err)
	}
}

func TestAdvisorAssessValidation(t *testing.T) {
	advisor := NewAdvisor(&stubGenerator{response: "{}"}, nil, 0)

	if _, err := advisor.Assess(context.Background(), "  ", samplePosting()); err == nil {
		t.Fatalf("expected error for empty resume summary")
	}
	if _, err := advisor.Assess(context.Background(), "summary", nil); err == nil {
		t.Fatalf("expected error for nil posting")
	}
}
