package newswire

import "newswire/internal/store"

// ErrNotFound is returned when an article id does not exist.
var ErrNotFound = store.ErrNotFound

// Article is a news item as exposed by the public API. Raw articles carry
// only the feed-derived fields; processed articles add the enrichment
// fields.
type Article struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Content            string   `json:"content"`
	Date               string   `json:"date"`
	Link               string   `json:"link"`
	Source             string   `json:"source"`
	Categories         []string `json:"categories"`
	FetchTimestamp     string   `json:"fetch_timestamp"`
	Processed          bool     `json:"processed"`
	FullContent        string   `json:"full_content,omitempty"`
	Summary            string   `json:"summary,omitempty"`
	Domain             string   `json:"domain,omitempty"`
	ReadingTimeMinutes int      `json:"reading_time_minutes,omitempty"`
	ProcessingError    string   `json:"processing_error,omitempty"`
	ProcessedTimestamp string   `json:"processed_timestamp,omitempty"`
}

// FetchResult summarizes one feed polling cycle.
type FetchResult struct {
	FeedsTotal     int `json:"feeds_total"`
	FeedsErrored   int `json:"feeds_errored"`
	NewArticles    int `json:"new_articles"`
	ProcessedCount int `json:"processed"`
}

// SyncResult summarizes a store reconciliation pass.
type SyncResult struct {
	Repaired         int `json:"repaired"`
	ProcessingErrors int `json:"processing_errors"`
}

// Analysis is an LLM-generated analysis of a single article.
type Analysis struct {
	ArticleID string `json:"article_id"`
	Analysis  string `json:"analysis"`
}

// --- internal type conversion helpers ---

func articleFromInternal(a store.Article) Article {
	return Article{
		ID:                 a.ID,
		Title:              a.Title,
		Content:            a.Content,
		Date:               a.Date,
		Link:               a.Link,
		Source:             a.Source,
		Categories:         a.Categories,
		FetchTimestamp:     a.FetchTimestamp,
		Processed:          a.Processed,
		FullContent:        a.FullContent,
		Summary:            a.Summary,
		Domain:             a.Domain,
		ReadingTimeMinutes: a.ReadingTimeMinutes,
		ProcessingError:    a.ProcessingError,
		ProcessedTimestamp: a.ProcessedTimestamp,
	}
}

func articlesFromInternal(articles []store.Article) []Article {
	out := make([]Article, len(articles))
	for i, a := range articles {
		out[i] = articleFromInternal(a)
	}
	return out
}
