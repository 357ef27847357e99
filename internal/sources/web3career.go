package sources

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/jobs"
)

const web3CareerBase = "https://web3.career"

// Web3CareerSource scrapes the web3.career listing table, one page per
// configured keyword. Rows the page renders without a title or job id are
// skipped silently; a keyword page that fails to load is logged and the
// remaining keywords still run.
type Web3CareerSource struct {
	base   string
	query  jobs.Query
	client *http.Client
	logger *zap.Logger
}

func NewWeb3CareerSource(query jobs.Query, logger *zap.Logger) *Web3CareerSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Web3CareerSource{
		base:   web3CareerBase,
		query:  query,
		client: newHTTPClient(),
		logger: logger,
	}
}

func (s *Web3CareerSource) Name() string { return "web3career" }

func (s *Web3CareerSource) Fetch(ctx context.Context) (*jobs.Postings, error) {
	postings := &jobs.Postings{}
	seen := make(map[string]bool)
	failures := 0

	for _, keyword := range normalizeKeywords(s.query.Keywords) {
		slug := strings.ReplaceAll(keyword, " ", "-")
		pageURL := fmt.Sprintf("%s/%s-jobs", s.base, slug)

		page, err := s.fetchPage(ctx, pageURL)
		if err != nil {
			failures++
			s.logger.Warn("fetching web3.career page failed",
				zap.String("keyword", keyword),
				zap.Error(err),
			)
			continue
		}

		for _, p := range page {
			if seen[p.URL] {
				continue
			}
			seen[p.URL] = true
			postings.Append(p)
		}
	}

	if postings.Len() == 0 && failures > 0 {
		return nil, fmt.Errorf("all %d web3.career keyword pages failed", failures)
	}
	return postings, nil
}

func (s *Web3CareerSource) fetchPage(ctx context.Context, pageURL string) ([]*jobs.Posting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}

	return s.parseListing(doc), nil
}

func (s *Web3CareerSource) parseListing(doc *goquery.Document) []*jobs.Posting {
	var postings []*jobs.Posting

	doc.Find("tr[data-jobid]").Each(func(_ int, row *goquery.Selection) {
		tds := row.Find("td")
		if tds.Length() < 4 {
			return
		}

		title := strings.TrimSpace(tds.Eq(0).Text())
		if title == "" {
			return
		}
		company := strings.TrimSpace(tds.Eq(1).Text())
		age := strings.TrimSpace(tds.Eq(2).Text())
		location := strings.TrimSpace(tds.Eq(3).Text())
		if !matchesLocation(location, s.query) {
			return
		}

		postings = append(postings, &jobs.Posting{
			Platform:      s.Name(),
			Title:         title,
			Company:       company,
			Location:      location,
			Description:   rowDescription(row),
			PostedDateRaw: age,
			URL:           s.jobURL(row, title, company),
			Salary:        rowSalary(tds),
		})
	})

	return postings
}

// jobURL prefers the row's own link and falls back to the slug scheme the
// site uses for job pages.
func (s *Web3CareerSource) jobURL(row *goquery.Selection, title, company string) string {
	if href, ok := row.Find("td").Eq(0).Find("a").Attr("href"); ok && href != "" {
		if strings.HasPrefix(href, "http") {
			return href
		}
		return s.base + href
	}

	jobID, _ := row.Attr("data-jobid")
	slug := strings.ToLower(strings.ReplaceAll(title, " ", "-"))
	slug = nonSlugChars.ReplaceAllString(slug, "")
	return fmt.Sprintf("%s/%s-%s/%s", s.base, slug, strings.ToLower(strings.ReplaceAll(company, " ", "")), jobID)
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9-]`)

// rowDescription collapses the row's visible text; the listing table has no
// full description, but the tag and title text still give the scorer
// vocabulary to match against.
func rowDescription(row *goquery.Selection) string {
	return strings.Join(strings.Fields(row.Text()), " ")
}

func rowSalary(tds *goquery.Selection) string {
	salary := ""
	tds.Each(func(_ int, td *goquery.Selection) {
		text := strings.TrimSpace(td.Text())
		if strings.Contains(text, "$") && strings.Contains(text, "k") {
			salary = text
		}
	})
	return salary
}
