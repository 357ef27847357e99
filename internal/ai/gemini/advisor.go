package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/ai"
	"github.com/jobscout/jobscout/internal/jobs"
	"github.com/jobscout/jobscout/internal/logger"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Advisor asks Gemini for a JSON fit assessment of one posting against the
// candidate summary.
type Advisor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

func NewAdvisor(generator contentGenerator, log *zap.Logger, maxLogLength int) *Advisor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Advisor{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

func (a *Advisor) Assess(ctx context.Context, resumeSummary string, posting *jobs.Posting) (*ai.FitAssessment, error) {
	if posting == nil {
		return nil, fmt.Errorf("posting is required")
	}
	if strings.TrimSpace(resumeSummary) == "" {
		return nil, fmt.Errorf("resume summary is required")
	}

	postingJSON, err := json.MarshalIndent(posting, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal posting payload: %w", err)
	}

	prompt := buildPrompt(resumeSummary, string(postingJSON))

	a.logger.Debug("gemini generate content request",
		zap.String("job_url", posting.URL),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini generate content response",
		zap.String("job_url", posting.URL),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, a.maxLogLen)),
	)

	assessment, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}
	assessment.Raw = raw
	return assessment, nil
}

func buildPrompt(resumeSummary, postingJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Candidate:\n{{RESUME_SUMMARY}}\n\nPosting:\n{{POSTING_JSON}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{RESUME_SUMMARY}}", resumeSummary)
	prompt = strings.ReplaceAll(prompt, "{{POSTING_JSON}}", postingJSON)
	return prompt
}

func parseResponse(raw string) (*ai.FitAssessment, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	score := coerceFloat(data["score"])
	if math.IsNaN(score) {
		score = 0
	}

	return &ai.FitAssessment{
		Fit:    coerceBool(data["fit"]),
		Score:  score,
		Reason: coerceString(data["reason"]),
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(strings.Trim(raw, "`"))
}

func coerceBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		lower := strings.ToLower(strings.TrimSpace(val))
		return lower == "true" || lower == "yes"
	case float64:
		return val != 0
	default:
		return false
	}
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	if val, ok := v.(string); ok {
		return strings.TrimSpace(val)
	}
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
