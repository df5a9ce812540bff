// Package enrich derives the processed representation of a raw article:
// scraped full content, an extractive summary, source domain, and an
// estimated reading time. The pipeline never drops or fails a record.
package enrich

import (
	"context"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"newswire/internal/store"
)

const (
	// minContentLength is the threshold below which the pipeline attempts to
	// scrape the full page body from the article link.
	minContentLength = 500

	// wordsPerMinute is the assumed reading speed for the reading-time estimate.
	wordsPerMinute = 200

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// contentSelectors are tried in order; the first match wins. No scoring
// across candidates.
var contentSelectors = []string{"article", ".article-content", ".post-content", ".entry-content"}

// Pipeline enriches raw articles into processed ones. A single Pipeline is
// used sequentially; the politeness delay paces outbound scrape traffic
// per article processed.
type Pipeline struct {
	client       *http.Client
	maxSentences int
	delay        time.Duration
}

// NewPipeline creates a pipeline with the given scrape timeout and
// per-article politeness delay. Zero values select the defaults
// (10s timeout, 1s delay); a negative delay disables pacing.
func NewPipeline(timeout, delay time.Duration) *Pipeline {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	if delay == 0 {
		delay = time.Second
	}
	if delay < 0 {
		delay = 0
	}
	return &Pipeline{
		client:       &http.Client{Timeout: timeout},
		maxSentences: DefaultMaxSentences,
		delay:        delay,
	}
}

// Delay returns the per-article pacing delay in effect.
func (p *Pipeline) Delay() time.Duration {
	return p.delay
}

// Process enriches one raw article and always returns a processed one.
// Failures inside the pipeline are recorded on the article's
// ProcessingError field instead of propagating, so a bad article can never
// wedge the batch or trigger a reprocessing loop.
func (p *Pipeline) Process(ctx context.Context, article store.Article) store.Article {
	out := article

	if err := p.enrich(ctx, &out); err != nil {
		out.ProcessingError = err.Error()
	}

	out.Processed = true
	out.ProcessedTimestamp = time.Now().UTC().Format(time.RFC3339)

	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	return out
}

func (p *Pipeline) enrich(ctx context.Context, article *store.Article) error {
	// Short feed snippets get one scrape attempt, no retry. A scrape
	// failure only skips the full-content field.
	if len(article.Content) < minContentLength && article.Link != "" {
		full, err := p.fetchFullContent(ctx, article.Link)
		if err != nil {
			log.Printf("enrich: fetching full content from %s: %v", article.Link, err)
		} else if full != "" {
			article.FullContent = full
		}
	}

	article.Domain = domainOf(article.Source)

	effective := article.Content
	if article.FullContent != "" {
		article.Summary = Summarize(article.FullContent, p.maxSentences)
		effective = article.FullContent
	} else {
		article.Summary = article.Content
	}

	article.ReadingTimeMinutes = readingTime(effective)
	return nil
}

// fetchFullContent retrieves the page at link and extracts the text of the
// first content-bearing container. Returns "" when no candidate matches.
func (p *Pipeline) fetchFullContent(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	doc.Find("script, style, nav, header, footer, iframe").Remove()

	for _, selector := range contentSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return normalizeSpace(sel.Text()), nil
		}
	}
	return "", nil
}

// domainOf extracts the network-location component of the source feed URL.
func domainOf(source string) string {
	if source == "" {
		return "unknown"
	}
	u, err := url.Parse(source)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}

// readingTime rounds half-to-even, so 500 words is 2 minutes, not 3.
func readingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := int(math.RoundToEven(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// normalizeSpace collapses all runs of whitespace to single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
