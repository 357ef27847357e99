package pipeline

import (
	"sort"

	"github.com/jobscout/jobscout/internal/scoring"
)

// Aggregate collapses duplicate postings and ranks the remainder. The same
// job seen on several platforms keeps its first occurrence in discovery
// order; the sort is stable so equal scores also keep discovery order. No
// cross-source renormalization is applied.
func Aggregate(results []*scoring.MatchResult) []*scoring.MatchResult {
	seen := make(map[string]bool, len(results))
	deduped := make([]*scoring.MatchResult, 0, len(results))
	for _, result := range results {
		key := result.Posting.DedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, result)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Score > deduped[j].Score
	})
	return deduped
}
