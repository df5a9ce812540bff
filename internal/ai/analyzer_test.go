package ai

import (
	"strings"
	"testing"

	"newswire/internal/store"
)

func TestAnalyzePromptIncludesArticle(t *testing.T) {
	article := store.Article{Title: "Big News", Content: "Something happened."}
	prompt := analyzePrompt(article)

	if !strings.Contains(prompt, "Big News") {
		t.Error("prompt missing title")
	}
	if !strings.Contains(prompt, "Something happened.") {
		t.Error("prompt missing content")
	}
	if !strings.Contains(prompt, "Sentiment") {
		t.Error("prompt missing sentiment instruction")
	}
}

func TestAnalyzePromptTruncatesLongContent(t *testing.T) {
	article := store.Article{Title: "t", Content: strings.Repeat("x", 5000)}
	prompt := analyzePrompt(article)

	if strings.Contains(prompt, strings.Repeat("x", 2001)) {
		t.Error("content was not truncated")
	}
	if !strings.Contains(prompt, "...") {
		t.Error("truncation marker missing")
	}
}

func TestClustersPromptListsTitles(t *testing.T) {
	articles := []store.Article{
		{Title: "Alpha"},
		{Title: "Beta"},
	}
	prompt := clustersPrompt(articles)

	if !strings.Contains(prompt, "- Alpha") || !strings.Contains(prompt, "- Beta") {
		t.Errorf("prompt missing titles: %q", prompt)
	}
	if !strings.Contains(prompt, "3-5 main topic clusters") {
		t.Error("prompt missing clustering instruction")
	}
}

func TestTrendingPromptCapsAtTenTitles(t *testing.T) {
	var articles []store.Article
	for i := 0; i < 15; i++ {
		articles = append(articles, store.Article{Title: strings.Repeat("t", i+1)})
	}
	prompt := trendingPrompt(articles)

	if got := strings.Count(prompt, "\n- "); got != 10 {
		t.Errorf("expected 10 titles in prompt, got %d", got)
	}
	if strings.Contains(prompt, strings.Repeat("t", 11)) {
		t.Error("prompt includes more than ten articles")
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("short", 10); got != "short" {
		t.Errorf("short text modified: %q", got)
	}
	got := truncateText(strings.Repeat("a", 20), 10)
	if len(got) != 13 || !strings.HasSuffix(got, "...") {
		t.Errorf("unexpected truncation: %q", got)
	}
}
