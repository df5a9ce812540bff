package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <item>
      <title>First Story</title>
      <link>https://example.com/first</link>
      <description>&lt;p&gt;A &lt;b&gt;bold&lt;/b&gt; lead paragraph.&lt;/p&gt;</description>
      <pubDate>Mon, 01 Jan 2024 10:00:00 +0000</pubDate>
      <category>tech</category>
      <category>ai</category>
    </item>
    <item>
      <title>Second Story</title>
      <link>https://example.com/second</link>
      <description>Plain description.</description>
      <pubDate>Tue, 02 Jan 2024 10:00:00 +0000</pubDate>
    </item>
  </channel>
</rss>`

func serveFeed(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(body))
	}))
}

func TestFetchMapsEntries(t *testing.T) {
	srv := serveFeed(t, testRSS)
	defer srv.Close()

	articles, err := NewFetcher().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	first := articles[0]
	if first.Title != "First Story" {
		t.Errorf("title: got %q", first.Title)
	}
	if first.ID == "" || len(first.ID) != 32 {
		t.Errorf("expected 32-char id, got %q", first.ID)
	}
	if first.Link != "https://example.com/first" {
		t.Errorf("link: got %q", first.Link)
	}
	if first.Source != srv.URL {
		t.Errorf("source: got %q", first.Source)
	}
	if first.Date != "Mon, 01 Jan 2024 10:00:00 +0000" {
		t.Errorf("date must be the verbatim feed string, got %q", first.Date)
	}
	if len(first.Categories) != 2 || first.Categories[0] != "tech" {
		t.Errorf("categories: got %v", first.Categories)
	}
	if first.Processed {
		t.Error("raw articles must not be marked processed")
	}
	if first.FetchTimestamp == "" {
		t.Error("expected fetch timestamp")
	}
	if articles[0].ID == articles[1].ID {
		t.Error("distinct entries produced identical ids")
	}
}

func TestFetchStripsHTMLFromContent(t *testing.T) {
	srv := serveFeed(t, testRSS)
	defer srv.Close()

	articles, err := NewFetcher().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if strings.Contains(articles[0].Content, "<") {
		t.Errorf("markup leaked into content: %q", articles[0].Content)
	}
	if !strings.Contains(articles[0].Content, "bold") {
		t.Errorf("text lost while stripping markup: %q", articles[0].Content)
	}
}

func TestFetchIsIdempotent(t *testing.T) {
	srv := serveFeed(t, testRSS)
	defer srv.Close()

	fetcher := NewFetcher()
	a, err := fetcher.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	b, err := fetcher.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Errorf("entry %d: id changed between fetches: %s vs %s", i, a[i].ID, b[i].ID)
		}
	}
}

func TestFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := NewFetcher().Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for non-200 feed response")
	}
}

func TestFetchBadXML(t *testing.T) {
	srv := serveFeed(t, "this is not a feed")
	defer srv.Close()

	if _, err := NewFetcher().Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected parse error")
	}
}
