package main

import (
	"net/http"

	"newswire"
)

// newRouter sets up all routes using Go 1.22+ enhanced routing.
func newRouter(engine *newswire.Engine) http.Handler {
	mux := http.NewServeMux()

	h := &handlers{engine: engine}

	mux.HandleFunc("GET /{$}", h.handleWelcome)
	mux.HandleFunc("GET /fetch-news", h.handleFetchNews)
	mux.HandleFunc("GET /articles", h.handleArticles)
	mux.HandleFunc("GET /articles/{id}", h.handleArticle)
	mux.HandleFunc("GET /similar-articles/{id}", h.handleSimilarArticles)
	mux.HandleFunc("GET /analyze-article/{id}", h.handleAnalyzeArticle)
	mux.HandleFunc("GET /topic-clusters", h.handleTopicClusters)
	mux.HandleFunc("GET /trending-analysis", h.handleTrendingAnalysis)

	return mux
}
