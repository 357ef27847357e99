package ai

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/jobs"
	"github.com/jobscout/jobscout/internal/resume"
	"github.com/jobscout/jobscout/internal/scoring"
)

// FitAssessment is an advisor's verdict for one posting.
type FitAssessment struct {
	Fit    bool
	Score  float64
	Reason string
	Raw    string
}

// Advisor gives a second opinion on a ranked match. It annotates, never
// filters: the algorithmic ranking stands regardless of the verdict.
type Advisor interface {
	Assess(ctx context.Context, resumeSummary string, posting *jobs.Posting) (*FitAssessment, error)
}

// Annotate runs the advisor over the top n ranked matches and attaches the
// verdicts to their postings. A failing assessment is recorded on the
// posting and the remaining matches still run.
func Annotate(ctx context.Context, advisor Advisor, resumeSummary string, matches []*scoring.MatchResult, n int, logger *zap.Logger) {
	if advisor == nil {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if n > 0 && len(matches) > n {
		matches = matches[:n]
	}

	for _, m := range matches {
		assessment, err := advisor.Assess(ctx, resumeSummary, m.Posting)
		if err != nil {
			logger.Warn("ai assessment failed",
				zap.String("job_title", m.Posting.Title),
				zap.String("company", m.Posting.Company),
				zap.Error(err),
			)
			m.Posting.AI = &jobs.AIAssessment{Error: err.Error()}
			continue
		}

		logger.Info("ai assessment",
			zap.String("job_title", m.Posting.Title),
			zap.String("company", m.Posting.Company),
			zap.Bool("fit", assessment.Fit),
			zap.Float64("ai_score", assessment.Score),
		)
		m.Posting.AI = &jobs.AIAssessment{
			Fit:    assessment.Fit,
			Score:  assessment.Score,
			Reason: assessment.Reason,
		}
	}
}

// ProfileSummary condenses a profile into the compact candidate description
// fed to the advisor prompt.
func ProfileSummary(profile *resume.Profile) string {
	skills := make([]string, 0, len(profile.Skills()))
	for skill := range profile.Skills() {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	var b strings.Builder
	fmt.Fprintf(&b, "Experience: %.1f years\n", profile.ExperienceYears())
	if roles := profile.TargetRoles(); len(roles) > 0 {
		fmt.Fprintf(&b, "Target roles: %s\n", strings.Join(roles, ", "))
	}
	if len(skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(skills, ", "))
	}
	return b.String()
}
