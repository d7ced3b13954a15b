// Package jobscraper reads listings from the Find a Job board
package jobscraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Abraxas-365/careerpal/pkg/logx"
	"github.com/Abraxas-365/careerpal/recruitment/job"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout = 30 * time.Second
	JobsPerPage    = 10
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

var dateLayouts = []string{
	"2 January 2006",
	"2/1/2006",
	"2006-01-02",
	"2-1-2006",
}

type Options struct {
	BaseURL  string
	MaxPages int
	Client   *http.Client
	// RequestsPerMinute throttles page loads; zero disables throttling
	RequestsPerMinute int
}

type Scraper struct {
	base     *url.URL
	maxPages int
	client   *http.Client
	limiter  *rate.Limiter
	now      func() time.Time
}

var _ job.Scraper = (*Scraper)(nil)

func New(opts Options) (*Scraper, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid scraper base url %q", opts.BaseURL)
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	s := &Scraper{
		base:     base,
		maxPages: max(opts.MaxPages, 1),
		client:   client,
		now:      time.Now,
	}
	if opts.RequestsPerMinute > 0 {
		s.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), max(opts.RequestsPerMinute/2, 1))
	}
	return s, nil
}

// ============================================================================
// Search pages
// ============================================================================

// SearchLinks walks the result pages for query. The page count comes from
// the total in the first page's heading.
func (s *Scraper) SearchLinks(ctx context.Context, query string) ([]string, error) {
	first, err := s.fetch(ctx, s.searchURL(query, 1))
	if err != nil {
		return nil, job.ErrRegistry.NewWithCause(job.CodeScrapeFailed, err).WithDetail("query", query)
	}

	total := totalJobs(first)
	pages := min((total+JobsPerPage-1)/JobsPerPage, s.maxPages)
	logx.Infof("Scraping %q: %d jobs over %d pages", query, total, pages)

	seen := make(map[string]bool)
	var links []string
	collect := func(doc *goquery.Document) {
		for _, link := range s.listingLinks(doc) {
			if !seen[link] {
				seen[link] = true
				links = append(links, link)
			}
		}
	}

	if pages >= 1 {
		collect(first)
	}
	for page := 2; page <= pages; page++ {
		doc, err := s.fetch(ctx, s.searchURL(query, page))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logx.Warnf("Skipping search page %d for %q: %v", page, query, err)
			continue
		}
		collect(doc)
	}
	return links, nil
}

func (s *Scraper) searchURL(query string, page int) string {
	return fmt.Sprintf("%s/search?q=%s&p=%d", s.base.String(), url.QueryEscape(query), page)
}

// totalJobs reads "1,234 jobs found" style headings; anything else is zero
func totalJobs(doc *goquery.Document) int {
	fields := strings.Fields(doc.Find("h1.govuk-heading-l").First().Text())
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(strings.ReplaceAll(fields[0], ",", ""))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (s *Scraper) listingLinks(doc *goquery.Document) []string {
	var links []string
	doc.Find("div.search-result").Each(func(_ int, result *goquery.Selection) {
		href, ok := result.Find("h3.govuk-heading-s a").First().Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		if link := s.resolve(href); link != "" {
			links = append(links, link)
		}
	})
	return links
}

func (s *Scraper) resolve(href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return s.base.ResolveReference(ref).String()
}

// ============================================================================
// Detail pages
// ============================================================================

// FetchJob loads and parses a detail page, falling back to job.Unavailable
func (s *Scraper) FetchJob(ctx context.Context, link string) *job.Job {
	doc, err := s.fetch(ctx, link)
	if err != nil {
		logx.Warnf("Error fetching job details from %s: %v", link, err)
		j := job.Unavailable(link)
		j.CreatedAt = s.now().UTC()
		return j
	}
	j := parseDetail(doc, link)
	j.CreatedAt = s.now().UTC()
	return j
}

func parseDetail(doc *goquery.Document, link string) *job.Job {
	details := make(map[string]string)
	doc.Find("table.govuk-table tr.govuk-table__row").Each(func(_ int, row *goquery.Selection) {
		header := row.Find("th.govuk-table__header").First()
		cell := row.Find("td.govuk-table__cell").First()
		if header.Length() == 0 || cell.Length() == 0 {
			return
		}
		key := strings.ToLower(strings.TrimRight(strings.TrimSpace(header.Text()), ":"))
		details[key] = strings.TrimSpace(cell.Text())
	})

	field := func(key string) string {
		if v := details[key]; v != "" {
			return v
		}
		return job.NotAvailable
	}

	title := strings.TrimSpace(doc.Find("h1.govuk-heading-l").First().Text())
	if title == "" {
		title = job.NotAvailable
	}

	salary := field("salary")
	if extra := details["additional salary information"]; extra != "" {
		salary = salary + " - " + extra
	}

	return &job.Job{
		Title:         title,
		Company:       field("company"),
		Location:      field("location"),
		Salary:        strings.TrimSpace(salary),
		Description:   description(doc),
		PostingDate:   parseDate(details["posting date"]),
		ClosingDate:   parseDate(details["closing date"]),
		Hours:         field("hours"),
		JobType:       field("job type"),
		RemoteWorking: field("remote working"),
		Link:          link,
	}
}

// description joins the text nodes of the description block, one per line
func description(doc *goquery.Document) string {
	section := doc.Find(`div[itemprop="description"]`).First()
	if section.Length() == 0 {
		return job.NoDescription
	}
	var lines []string
	var walk func(*goquery.Selection)
	walk = func(sel *goquery.Selection) {
		sel.Contents().Each(func(_ int, n *goquery.Selection) {
			if goquery.NodeName(n) == "#text" {
				if t := strings.TrimSpace(n.Text()); t != "" {
					lines = append(lines, t)
				}
				return
			}
			walk(n)
		})
	}
	walk(section)
	if len(lines) == 0 {
		return job.NoDescription
	}
	return strings.Join(lines, "\n")
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" || s == job.NotAvailable {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	logx.Debugf("Could not parse date: %s", s)
	return nil
}

// ============================================================================
// HTTP
// ============================================================================

func (s *Scraper) fetch(ctx context.Context, target string) (*goquery.Document, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request %s: HTTP status %d", target, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", target, err)
	}
	return doc, nil
}
