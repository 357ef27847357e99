package resume

import (
	"math"
	"testing"
	"time"
)

func TestExperienceYears(t *testing.T) {
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		text string
		want float64
	}{
		{
			name: "single range",
			text: "Data Engineer\nMar 2021 - Sept 2021",
			want: 0.5,
		},
		{
			name: "present clamps to now",
			text: "Engineer\nJun 2025 – Present",
			want: 1.0,
		},
		{
			name: "multiple ranges summed",
			text: "Jan 2020 - Jan 2021 something\nJan 2022 - Jul 2022",
			want: 1.5,
		},
		{
			name: "overlapping ranges not deduplicated",
			text: "Jan 2020 - Jan 2021\nJun 2020 - Jun 2021",
			want: 2.0,
		},
		{
			name: "unparseable bound skipped",
			text: "Blursday 2021 - Sept 2021",
			want: 0,
		},
		{
			name: "future start contributes nothing",
			text: "Jan 2030 - Jan 2031",
			want: 0,
		},
		{
			name: "bare year span",
			text: "2019 - 2022",
			want: 3.0,
		},
		{
			name: "no ranges",
			text: "Skills: Python, SQL",
			want: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := experienceYears(tc.text, now)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("experienceYears(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}
