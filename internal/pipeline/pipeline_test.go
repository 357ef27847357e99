package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/jobs"
	"github.com/jobscout/jobscout/internal/resume"
	"github.com/jobscout/jobscout/internal/scoring"
	"github.com/jobscout/jobscout/internal/taxonomy"
)

type stubSource struct {
	name     string
	postings []*jobs.Posting
	err      error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(context.Context) (*jobs.Postings, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &jobs.Postings{Items: s.postings}, nil
}

func newTestRunner(t *testing.T, sources []jobs.Source, cfg Config) *Runner {
	t.Helper()

	tax := taxonomy.Default()
	profile := resume.ExtractProfile("Data Engineer\nJan 2020 - Jan 2023\nPython and SQL experience.", tax)

	policy, err := scoring.LookupPolicy(scoring.PolicyStandard)
	require.NoError(t, err)
	engine, err := scoring.NewEngine(policy, scoring.UserOverrides{ExperienceYears: scoring.NoUserExperience}, nil)
	require.NoError(t, err)

	runner := New(sources, profile, engine, tax, cfg, zap.NewNop())
	runner.now = func() time.Time {
		return time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	}
	return runner
}

func TestRunDeduplicatesAcrossSources(t *testing.T) {
	posting := func(platform, url string) *jobs.Posting {
		return &jobs.Posting{
			Platform:      platform,
			Title:         "Data Engineer",
			Company:       "Acme",
			Description:   "Python and SQL pipelines.",
			PostedDateRaw: "2 days ago",
			URL:           url,
		}
	}

	runner := newTestRunner(t, []jobs.Source{
		&stubSource{name: "remoteok", postings: []*jobs.Posting{posting("remoteok", "https://a.example/1")}},
		&stubSource{name: "web3career", postings: []*jobs.Posting{posting("web3career", "https://b.example/1")}},
	}, Config{MinMatchPct: 0, MaxJobAgeDays: 14})

	result := runner.Run(context.Background())

	require.Len(t, result.Matches, 1)
	// First occurrence wins: source registration order is discovery order.
	assert.Equal(t, "remoteok", result.Matches[0].Posting.Platform)

	require.Len(t, result.Stats, 2)
	assert.Equal(t, 1, result.Stats[0].Fetched)
	assert.Equal(t, 1, result.Stats[0].Kept)
}

func TestRunDropsStaleAndBelowThreshold(t *testing.T) {
	runner := newTestRunner(t, []jobs.Source{
		&stubSource{name: "file", postings: []*jobs.Posting{
			{
				Title: "Data Engineer", Company: "Fresh",
				Description:   "Python and SQL data pipelines. 3+ years of experience required.",
				PostedDateRaw: "2 days ago",
			},
			{
				Title: "Data Engineer", Company: "Stale",
				Description:   "Python and SQL required.",
				PostedDateRaw: "2 months ago",
			},
			{
				Title: "Pastry Chef", Company: "Bakery",
				Description:   "Croissant lamination. Requires 6+ years of experience. Technologies: solidworks.",
				PostedDateRaw: "today",
			},
		}},
	}, Config{MinMatchPct: 70, MaxJobAgeDays: 14})

	result := runner.Run(context.Background())

	require.Len(t, result.Matches, 1)
	assert.Equal(t, "Fresh", result.Matches[0].Posting.Company)
	assert.Equal(t, 3, result.Stats[0].Fetched)
	assert.Equal(t, 1, result.Stats[0].Kept)
}

func TestRunIsolatesFailingSource(t *testing.T) {
	boom := errors.New("connection refused")
	runner := newTestRunner(t, []jobs.Source{
		&stubSource{name: "broken", err: boom},
		&stubSource{name: "file", postings: []*jobs.Posting{
			{
				Title: "Data Engineer", Company: "Acme",
				Description:   "Python and SQL pipelines.",
				PostedDateRaw: "today",
			},
		}},
	}, Config{MinMatchPct: 0, MaxJobAgeDays: 14})

	result := runner.Run(context.Background())

	require.Len(t, result.Matches, 1)
	require.Len(t, result.Stats, 2)
	assert.ErrorIs(t, result.Stats[0].Err, boom)
	assert.Equal(t, 0, result.Stats[0].Fetched)
	assert.Equal(t, "file", result.Stats[1].Platform)
}

func TestAggregateRanksAndKeepsTieOrder(t *testing.T) {
	mk := func(company, title string, score float64) *scoring.MatchResult {
		return &scoring.MatchResult{
			Posting: &jobs.Posting{Company: company, Title: title},
			Score:   score,
		}
	}

	ranked := Aggregate([]*scoring.MatchResult{
		mk("a", "x", 50),
		mk("b", "x", 80),
		mk("c", "x", 50),
		mk("A ", "X", 99), // duplicate of the first, later discovery loses
	})

	require.Len(t, ranked, 3)
	assert.Equal(t, "b", ranked[0].Posting.Company)
	// Ties keep discovery order.
	assert.Equal(t, "a", ranked[1].Posting.Company)
	assert.Equal(t, float64(50), ranked[1].Score)
	assert.Equal(t, "c", ranked[2].Posting.Company)
}
