// Package ai holds the external AI collaborators: embedding generation and
// LLM analysis, both served by a local Ollama instance.
package ai

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"newswire/internal/store"
)

// analysisTimeout bounds each LLM call. A timed-out analysis fails that one
// request; there is no retry.
const analysisTimeout = 60 * time.Second

// Analyzer produces free-form structured analysis of articles via an LLM.
type Analyzer struct {
	client  *api.Client
	model   string
	timeout time.Duration
}

// NewAnalyzer creates an analyzer backed by Ollama. Only contacts the
// server when a method is called.
func NewAnalyzer(baseURL, model string) (*Analyzer, error) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		parsedURL, parseErr := url.Parse(baseURL)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid base URL: %w", parseErr)
		}
		client = api.NewClient(parsedURL, nil)
	}
	return &Analyzer{client: client, model: model, timeout: analysisTimeout}, nil
}

// AnalyzeArticle returns key insights for a single article: summary, main
// themes, takeaways, and sentiment. Failure propagates; without the LLM no
// result can be produced.
func (a *Analyzer) AnalyzeArticle(ctx context.Context, article store.Article) (string, error) {
	return a.generate(ctx, analyzePrompt(article))
}

// TopicClusters groups the given articles into 3-5 topic clusters.
func (a *Analyzer) TopicClusters(ctx context.Context, articles []store.Article) (string, error) {
	return a.generate(ctx, clustersPrompt(articles))
}

// TrendingAnalysis identifies trending topics across the most recent
// articles (at most ten are considered).
func (a *Analyzer) TrendingAnalysis(ctx context.Context, articles []store.Article) (string, error) {
	return a.generate(ctx, trendingPrompt(articles))
}

func (a *Analyzer) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	req := &api.GenerateRequest{
		Model:  a.model,
		Prompt: prompt,
		Stream: new(bool), // false
		Options: map[string]interface{}{
			"temperature": 0.3,
		},
	}

	var fullResponse strings.Builder
	err := a.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		fullResponse.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate failed: %w", err)
	}
	return strings.TrimSpace(fullResponse.String()), nil
}

func analyzePrompt(article store.Article) string {
	return fmt.Sprintf(`Analyze this news article and provide key insights:

Title: %s
Content: %s

Please provide:
1. A brief summary (2-3 sentences)
2. Main topics/themes
3. Key takeaways
4. Sentiment (positive/negative/neutral)

Format the response as JSON.`, article.Title, truncateText(article.Content, 2000))
}

func clustersPrompt(articles []store.Article) string {
	var titles []string
	for _, article := range articles {
		titles = append(titles, "- "+article.Title)
	}

	return fmt.Sprintf(`Given these news article titles:

%s

Group them into 3-5 main topic clusters. For each cluster:
1. Provide a cluster name/theme
2. List the relevant article titles
3. Write a brief overview of the cluster theme

Format the response as JSON.`, strings.Join(titles, "\n"))
}

func trendingPrompt(articles []store.Article) string {
	if len(articles) > 10 {
		articles = articles[:10]
	}
	var titles []string
	for _, article := range articles {
		titles = append(titles, "- "+article.Title)
	}

	return fmt.Sprintf(`Analyze these news articles and identify:
1. Top 3 trending topics
2. Their significance and potential impact
3. Related developments to watch

Articles:
%s`, strings.Join(titles, "\n"))
}

// truncateText truncates text to maxLen characters.
func truncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen] + "..."
}
