package pipeline

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/extract"
	"github.com/jobscout/jobscout/internal/jobs"
	"github.com/jobscout/jobscout/internal/recency"
	"github.com/jobscout/jobscout/internal/resume"
	"github.com/jobscout/jobscout/internal/scoring"
	"github.com/jobscout/jobscout/internal/taxonomy"
)

// Config holds the thresholds every source run applies.
type Config struct {
	MinMatchPct   int
	MaxJobAgeDays int
}

// Step describes the effect of one stage on a posting batch.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// SourceStats is the per-platform yield reported after a run.
type SourceStats struct {
	Platform string
	Fetched  int
	Kept     int
	Err      error
}

// Result is the merged outcome of one run: ranked matches plus per-source
// counters.
type Result struct {
	Matches []*scoring.MatchResult
	Stats   []SourceStats
}

// Runner drives the per-source pipeline: fetch, recency filter, requirement
// extraction, scoring, threshold. Sources run concurrently; the profile is
// shared read-only and the engine is safe for concurrent use.
type Runner struct {
	sources []jobs.Source
	profile *resume.Profile
	engine  *scoring.Engine
	tax     *taxonomy.Taxonomy
	cfg     Config
	logger  *zap.Logger

	now func() time.Time
}

func New(sources []jobs.Source, profile *resume.Profile, engine *scoring.Engine, tax *taxonomy.Taxonomy, cfg Config, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		sources: sources,
		profile: profile,
		engine:  engine,
		tax:     tax,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

type sourceOutcome struct {
	stats   SourceStats
	matches []*scoring.MatchResult
}

// Run fetches and scores every source, then merges the results. A failing
// source is logged and reported in its stats, never aborts the run; merge
// order follows source registration order so ranking ties stay stable.
func (r *Runner) Run(ctx context.Context) *Result {
	outcomes := make([]*sourceOutcome, len(r.sources))

	var wg sync.WaitGroup
	for i, src := range r.sources {
		wg.Add(1)
		go func(i int, src jobs.Source) {
			defer wg.Done()
			outcomes[i] = r.runSource(ctx, src)
		}(i, src)
	}
	wg.Wait()

	var all []*scoring.MatchResult
	stats := make([]SourceStats, 0, len(outcomes))
	for _, outcome := range outcomes {
		stats = append(stats, outcome.stats)
		all = append(all, outcome.matches...)
	}

	return &Result{
		Matches: Aggregate(all),
		Stats:   stats,
	}
}

func (r *Runner) runSource(ctx context.Context, src jobs.Source) *sourceOutcome {
	log := r.logger.With(zap.String("platform", src.Name()))

	postings, err := src.Fetch(ctx)
	if err != nil {
		log.Warn("fetching postings failed", zap.Error(err))
		return &sourceOutcome{stats: SourceStats{Platform: src.Name(), Err: err}}
	}
	fetched := postings.Len()

	fresh := r.filterRecent(postings, log)
	matches := r.scoreAndThreshold(fresh, log)

	return &sourceOutcome{
		stats:   SourceStats{Platform: src.Name(), Fetched: fetched, Kept: len(matches)},
		matches: matches,
	}
}

func (r *Runner) filterRecent(postings *jobs.Postings, log *zap.Logger) *jobs.Postings {
	initial := postings.Len()
	now := r.now()

	fresh := &jobs.Postings{}
	for _, p := range postings.Items {
		if recency.WithinDays(p.PostedDateRaw, r.cfg.MaxJobAgeDays, now) {
			fresh.Append(p)
		}
	}

	logStep(log, "recency", Step{Initial: initial, Dropped: initial - fresh.Len(), Left: fresh.Len()})
	return fresh
}

func (r *Runner) scoreAndThreshold(postings *jobs.Postings, log *zap.Logger) []*scoring.MatchResult {
	initial := postings.Len()
	threshold := float64(r.cfg.MinMatchPct)

	var kept []*scoring.MatchResult
	for _, p := range postings.Items {
		signals := extract.Requirements(p.Title, p.Description, r.tax)
		result := r.engine.Score(r.profile, p, signals)
		if result.Score >= threshold {
			kept = append(kept, result)
			continue
		}
		log.Debug("posting below threshold",
			zap.String("job_title", p.Title),
			zap.String("company", p.Company),
			zap.Float64("score", result.Score),
		)
	}

	logStep(log, "score_threshold", Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)})
	return kept
}

func logStep(log *zap.Logger, name string, step Step) {
	log.Info("filter step",
		zap.String("name", name),
		zap.Int("initial", step.Initial),
		zap.Int("dropped", step.Dropped),
		zap.Int("left", step.Left),
	)
}
