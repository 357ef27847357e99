package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jobscout/jobscout/internal/scoring"
)

// csvColumns is the fixed column order of the tabular sink.
var csvColumns = []string{
	"match_pct", "job_title", "company", "platform",
	"job_url", "skill_match", "location", "posted_date",
}

// WriteCSV writes the ranked matches to path, one row per match, columns in
// fixed order.
func WriteCSV(path string, matches []*scoring.MatchResult) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv report %q: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(csvColumns); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, m := range matches {
		row := []string{
			strconv.FormatFloat(m.Score, 'f', 1, 64),
			m.Posting.Title,
			m.Posting.Company,
			m.Posting.Platform,
			m.Posting.URL,
			strings.Join(m.MatchedSkills, ";"),
			m.Posting.Location,
			m.Posting.PostedDateRaw,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
