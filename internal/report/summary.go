package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/jobscout/jobscout/internal/pipeline"
	"github.com/jobscout/jobscout/internal/scoring"
)

var (
	strongMatch = color.New(color.FgGreen, color.Bold)
	okMatch     = color.New(color.FgYellow)
	weakMatch   = color.New(color.FgRed)
)

// PrintSummary renders the per-platform yield table and the top matches to
// the terminal. topN limits the match list; 0 shows everything.
func PrintSummary(out io.Writer, result *pipeline.Result, topN int) {
	fmt.Fprintln(out)
	printStats(out, result.Stats)
	fmt.Fprintln(out)
	printMatches(out, result.Matches, topN)
}

func printStats(out io.Writer, stats []pipeline.SourceStats) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PLATFORM\tFETCHED\tKEPT\tKEEP RATE")
	for _, s := range stats {
		if s.Err != nil {
			fmt.Fprintf(w, "%s\t-\t-\t%s\n", s.Platform, weakMatch.Sprintf("failed: %v", s.Err))
			continue
		}
		rate := 0.0
		if s.Fetched > 0 {
			rate = float64(s.Kept) / float64(s.Fetched) * 100
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%.0f%%\n", s.Platform, s.Fetched, s.Kept, rate)
	}
	w.Flush()
}

func printMatches(out io.Writer, matches []*scoring.MatchResult, topN int) {
	if len(matches) == 0 {
		fmt.Fprintln(out, "No matches above the threshold.")
		return
	}
	if topN > 0 && len(matches) > topN {
		matches = matches[:topN]
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tTITLE\tCOMPANY\tPLATFORM\tPOSTED\tURL")
	for _, m := range matches {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			scoreColor(m.Score).Sprintf("%.1f", m.Score),
			m.Posting.Title,
			m.Posting.Company,
			m.Posting.Platform,
			m.Posting.PostedDateRaw,
			m.Posting.URL,
		)
	}
	w.Flush()
}

func scoreColor(score float64) *color.Color {
	switch {
	case score >= 80:
		return strongMatch
	case score >= 60:
		return okMatch
	default:
		return weakMatch
	}
}
