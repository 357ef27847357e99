package sources

import (
	"net/http"
	"strings"
	"time"

	"github.com/jobscout/jobscout/internal/jobs"
)

// Acquisition collaborators. Each source turns one job board into the
// shared posting wire contract; malformed records are skipped per item,
// only transport-level failures surface as errors.

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

// matchesLocation applies the configured location constraint. With no
// location set everything passes. With one set, on-site postings must
// contain it and remote postings (empty location or "remote") pass only
// when include-remote is on.
func matchesLocation(location string, query jobs.Query) bool {
	want := strings.ToLower(strings.TrimSpace(query.Location))
	loc := strings.ToLower(strings.TrimSpace(location))

	if loc == "" || strings.Contains(loc, "remote") {
		return want == "" || query.IncludeRemote
	}
	if want == "" {
		return true
	}
	return strings.Contains(loc, want)
}
