package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"newswire"
)

// handlers holds dependencies for all HTTP handler methods.
type handlers struct {
	engine *newswire.Engine
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("newswire-web: encode response: %v", err)
	}
}

// writeError maps engine errors to HTTP statuses. Unknown article ids are
// a 404; everything else is a 500 without leaking internals.
func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, newswire.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "article not found"})
		return
	}
	log.Printf("newswire-web: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return defaultVal
	}
	return v
}

func (h *handlers) handleWelcome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the newswire API",
	})
}

func (h *handlers) handleFetchNews(w http.ResponseWriter, r *http.Request) {
	result, err := h.engine.FetchCycle(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handlers) handleArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.engine.Articles()
	if err != nil {
		writeError(w, err)
		return
	}
	if articles == nil {
		articles = []newswire.Article{}
	}
	writeJSON(w, http.StatusOK, articles)
}

func (h *handlers) handleArticle(w http.ResponseWriter, r *http.Request) {
	article, err := h.engine.Article(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

func (h *handlers) handleSimilarArticles(w http.ResponseWriter, r *http.Request) {
	k := parseIntParam(r, "count", 5)

	similar, err := h.engine.SimilarArticles(r.Context(), r.PathValue("id"), k)
	if err != nil {
		writeError(w, err)
		return
	}
	if similar == nil {
		similar = []newswire.Article{}
	}
	writeJSON(w, http.StatusOK, similar)
}

func (h *handlers) handleAnalyzeArticle(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.engine.Analyze(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (h *handlers) handleTopicClusters(w http.ResponseWriter, r *http.Request) {
	clusters, err := h.engine.TopicClusters(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"clusters": clusters})
}

func (h *handlers) handleTrendingAnalysis(w http.ResponseWriter, r *http.Request) {
	trends, err := h.engine.TrendingAnalysis(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"trends": trends})
}
