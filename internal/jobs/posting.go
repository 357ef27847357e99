package jobs

import (
	"encoding/json"
	"os"
	"strings"
)

// Posting is one job record as delivered by an acquisition source. Field
// names follow the wire contract shared by all sources.
type Posting struct {
	Platform      string `json:"platform,omitempty" mapstructure:"platform"`
	Title         string `json:"job_title,omitempty" mapstructure:"job_title"`
	Company       string `json:"company,omitempty" mapstructure:"company"`
	Location      string `json:"location,omitempty" mapstructure:"location"`
	Description   string `json:"description,omitempty" mapstructure:"description"`
	PostedDateRaw string `json:"posted_date,omitempty" mapstructure:"posted_date"`
	URL           string `json:"job_url,omitempty" mapstructure:"job_url"`
	Salary        string `json:"salary,omitempty" mapstructure:"salary"`

	// AI is the optional advisor annotation attached after ranking. It is
	// never part of the wire contract.
	AI *AIAssessment `json:"ai,omitempty" mapstructure:"-"`
}

// AIAssessment is a second-opinion fit verdict for one posting.
type AIAssessment struct {
	Fit    bool    `json:"fit"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// DedupKey returns the normalized identity used to collapse the same job
// seen on different platforms.
func (p *Posting) DedupKey() string {
	company := strings.ToLower(strings.TrimSpace(p.Company))
	title := strings.ToLower(strings.TrimSpace(p.Title))
	return company + "|" + title
}

type Postings struct {
	Items []*Posting
}

func (p *Postings) Len() int {
	return len(p.Items)
}

func (p *Postings) Append(items ...*Posting) {
	p.Items = append(p.Items, items...)
}

// DumpToTmpFile writes the postings as indented JSON into a temp file and
// returns its name.
func (p *Postings) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "postings_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return "", err
	}
	return file.Name(), nil
}
