package recency

import (
	"testing"
	"time"
)

func TestWithinDays(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		posted string
		maxAge int
		want   bool
	}{
		{"today", 14, true},
		{"Just now", 14, true},
		{"yesterday", 14, true},
		{"yesterday", 0, false},
		{"3 days ago", 14, true},
		{"3 days ago", 2, false},
		{"1 day ago", 14, true},
		{"36 hours ago", 1, false},
		{"12 hours ago", 1, true},
		{"2 weeks ago", 14, true},
		{"3 weeks ago", 14, false},
		{"2 months ago", 14, false},
		{"1 month ago", 60, false},
		{"3d", 14, true},
		{"3w", 14, false},
		{"5h", 1, true},
		{"1mo", 60, false},
		{"2026-06-10", 14, true},
		{"2026-05-01", 14, false},
		{"Jun 12, 2026", 14, true},
		{"", 14, true},
		{"recently posted by the hiring team", 14, true},
	}

	for _, tc := range cases {
		t.Run(tc.posted, func(t *testing.T) {
			if got := WithinDays(tc.posted, tc.maxAge, now); got != tc.want {
				t.Fatalf("WithinDays(%q, %d) = %v, want %v", tc.posted, tc.maxAge, got, tc.want)
			}
		})
	}
}
