package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jobscout/jobscout/internal/scoring"
)

// Record is one normalized line of the structured sink.
type Record struct {
	MatchScore         float64  `json:"match_score"`
	JobTitle           string   `json:"job_title"`
	Company            string   `json:"company"`
	Platform           string   `json:"platform"`
	Location           string   `json:"location"`
	JobURL             string   `json:"job_url"`
	PostedDate         string   `json:"posted_date"`
	Description        string   `json:"description"`
	MatchingSkills     []string `json:"matching_skills"`
	RequiredExperience float64  `json:"required_experience"`
	Salary             string   `json:"salary,omitempty"`
	ScrapedAt          string   `json:"scraped_at"`
}

// NewRecord converts a match into its sink representation.
func NewRecord(m *scoring.MatchResult, scrapedAt time.Time) Record {
	return Record{
		MatchScore:         m.Score,
		JobTitle:           m.Posting.Title,
		Company:            m.Posting.Company,
		Platform:           m.Posting.Platform,
		Location:           m.Posting.Location,
		JobURL:             m.Posting.URL,
		PostedDate:         m.Posting.PostedDateRaw,
		Description:        m.Posting.Description,
		MatchingSkills:     m.MatchedSkills,
		RequiredExperience: m.RequiredExperience,
		Salary:             m.Posting.Salary,
		ScrapedAt:          scrapedAt.UTC().Format(time.RFC3339),
	}
}

// WriteJSONL writes one Record per line.
func WriteJSONL(path string, matches []*scoring.MatchResult, scrapedAt time.Time) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating jsonl report %q: %w", path, err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	for _, m := range matches {
		if err := enc.Encode(NewRecord(m, scrapedAt)); err != nil {
			return fmt.Errorf("encoding jsonl record: %w", err)
		}
	}
	return nil
}
