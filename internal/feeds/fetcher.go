// Package feeds retrieves syndicated feeds and maps their entries to raw
// articles keyed by content-derived identifiers.
package feeds

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"newswire/internal/store"
)

type Fetcher struct {
	parser *gofeed.Parser
	client *http.Client
	strip  *bluemonday.Policy
}

// NewFetcher creates a feed fetcher. Feed descriptions routinely carry HTML,
// so entry content is stripped to plain text before storage.
func NewFetcher() *Fetcher {
	parser := gofeed.NewParser()
	parser.UserAgent = "newswire/1.0"
	return &Fetcher{
		parser: parser,
		client: &http.Client{},
		strip:  bluemonday.StrictPolicy(),
	}
}

// Fetch retrieves and parses a single feed, returning one raw article per
// entry. The publication date is kept as the feed-provided string: it is
// part of the identity hash and must never be normalized.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) ([]store.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request for %s: %w", feedURL, err)
	}
	req.Header.Set("User-Agent", "newswire/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", feedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s returned status %d", feedURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed %s: %w", feedURL, err)
	}

	parsed, err := f.parser.ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	fetchedAt := time.Now().UTC().Format(time.RFC3339)

	articles := make([]store.Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		content := item.Description
		if item.Content != "" {
			content = item.Content
		}

		articles = append(articles, store.Article{
			ID:             store.ArticleID(item.Title, item.Published),
			Title:          item.Title,
			Content:        f.plainText(content),
			Date:           item.Published,
			Link:           item.Link,
			Source:         feedURL,
			Categories:     item.Categories,
			FetchTimestamp: fetchedAt,
			Processed:      false,
		})
	}
	return articles, nil
}

func (f *Fetcher) plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(f.strip.Sanitize(s)))
}
