package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/jobs"
)

const remoteOKEndpoint = "https://remoteok.com/api"

// RemoteOKSource pulls the RemoteOK public JSON feed and keeps the entries
// matching the configured keywords.
type RemoteOKSource struct {
	endpoint string
	query    jobs.Query
	client   *http.Client
	logger   *zap.Logger
	now      func() time.Time
}

type remoteOKJob struct {
	ID          string   `json:"id"`
	Position    string   `json:"position"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	URL         string   `json:"url"`
	Salary      string   `json:"salary"`
	Epoch       int64    `json:"epoch"`
}

func NewRemoteOKSource(query jobs.Query, logger *zap.Logger) *RemoteOKSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemoteOKSource{
		endpoint: remoteOKEndpoint,
		query:    query,
		client:   newHTTPClient(),
		logger:   logger,
		now:      time.Now,
	}
}

func (s *RemoteOKSource) Name() string { return "remoteok" }

func (s *RemoteOKSource) Fetch(ctx context.Context) (*jobs.Postings, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching remoteok feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remoteok feed: HTTP %d", resp.StatusCode)
	}

	var feed []remoteOKJob
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decoding remoteok feed: %w", err)
	}

	keywords := normalizeKeywords(s.query.Keywords)
	postings := &jobs.Postings{}
	now := s.now()

	for _, j := range feed {
		// The first feed element is a legal notice without an ID.
		if j.ID == "" || j.Position == "" {
			continue
		}
		if !matchesKeywords(j, keywords) {
			continue
		}
		if !matchesLocation(j.Location, s.query) {
			continue
		}

		location := j.Location
		if location == "" {
			location = "Remote"
		}

		postings.Append(&jobs.Posting{
			Platform:      s.Name(),
			Title:         j.Position,
			Company:       j.Company,
			Location:      location,
			Description:   describeRemoteOK(j),
			PostedDateRaw: formatAge(now.Sub(time.Unix(j.Epoch, 0))),
			URL:           j.URL,
			Salary:        j.Salary,
		})
	}

	s.logger.Debug("remoteok feed fetched",
		zap.Int("feed_size", len(feed)),
		zap.Int("matched", postings.Len()),
	)
	return postings, nil
}

// describeRemoteOK falls back to the tag list when the feed entry carries no
// description, so scoring always has some text to work with.
func describeRemoteOK(j remoteOKJob) string {
	desc := strings.TrimSpace(j.Description)
	if desc != "" {
		return desc
	}
	return strings.Join(j.Tags, ", ")
}

func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

func matchesKeywords(j remoteOKJob, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	haystack := strings.ToLower(j.Position + " " + strings.Join(j.Tags, " "))
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

// formatAge renders a duration the way job boards report posting age, in
// the shapes the recency filter understands.
func formatAge(d time.Duration) string {
	hours := int(d.Hours())
	if hours < 0 {
		hours = 0
	}
	if hours < 24 {
		return fmt.Sprintf("%d hours ago", hours)
	}
	days := hours / 24
	if days < 7 {
		return fmt.Sprintf("%d days ago", days)
	}
	return fmt.Sprintf("%d weeks ago", days/7)
}
