package recency

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Job boards report posting age in wildly different shapes: relative
// phrases ("3 days ago", "just now"), absolute dates, or nothing at all.
// The filter is permissive: a date it cannot interpret keeps the posting.

var (
	relativePattern = regexp.MustCompile(`(?i)(\d+)\s*(hour|hr|day|week|month)s?\s*ago`)
	// Board scrapes abbreviate ages as "5h", "3d", "2w", "1mo".
	shorthandPattern = regexp.MustCompile(`(?i)^(\d+)\s*(h|d|w|mo)$`)
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"Jan 2, 2006",
	"January 2, 2006",
	"02 Jan 2006",
	"2 January 2006",
	"01/02/2006",
}

// WithinDays reports whether a posted-date string falls inside the
// freshness window of maxAgeDays. Today-like and yesterday-like phrases
// always pass, month granularity always fails, and strings that match no
// known shape pass rather than silently dropping fresh postings.
func WithinDays(posted string, maxAgeDays int, now time.Time) bool {
	s := strings.ToLower(strings.TrimSpace(posted))
	if s == "" {
		return true
	}

	for _, fresh := range []string{"today", "just now", "just posted", "now"} {
		if s == fresh {
			return true
		}
	}
	if s == "yesterday" || s == "1 day ago" {
		return maxAgeDays >= 1
	}

	if m := relativePattern.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		switch strings.ToLower(m[2]) {
		case "hour", "hr":
			return n <= maxAgeDays*24
		case "day":
			return n <= maxAgeDays
		case "week":
			return n*7 <= maxAgeDays
		case "month":
			return false
		}
	}
	if strings.Contains(s, "month") {
		return false
	}

	if m := shorthandPattern.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		switch strings.ToLower(m[2]) {
		case "h":
			return n <= maxAgeDays*24
		case "d":
			return n <= maxAgeDays
		case "w":
			return n*7 <= maxAgeDays
		case "mo":
			return false
		}
	}

	cutoff := now.AddDate(0, 0, -maxAgeDays)
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, strings.TrimSpace(posted)); err == nil {
			return !ts.Before(cutoff)
		}
	}

	return true
}
