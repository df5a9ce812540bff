// Package newswire is the public API for the newswire content pipeline:
// feed ingestion, content enrichment, store reconciliation, vector
// similarity search, and LLM analysis.
package newswire

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	embedding "github.com/matthewjhunter/go-embedding"

	"newswire/internal/ai"
	"newswire/internal/enrich"
	"newswire/internal/feeds"
	"newswire/internal/reconcile"
	"newswire/internal/store"
	"newswire/internal/vector"
)

// feedTimeout bounds a single feed download.
const feedTimeout = 30 * time.Second

// EngineConfig configures the newswire engine.
type EngineConfig struct {
	DataDir         string
	Feeds           []string
	OllamaBaseURL   string
	AnalysisModel   string
	EmbeddingModel  string
	VectorDimension int
	ScrapeTimeout time.Duration

	// ScrapeDelay paces outbound scrape calls per article processed.
	// Zero selects the 1s default; a negative value disables pacing.
	ScrapeDelay time.Duration

	// Embedder overrides the Ollama-backed embedder when set. Used by
	// callers that bring their own embedding backend.
	Embedder embedding.Embedder
}

// Engine wraps the internal store, fetcher, enrichment pipeline,
// reconciler, vector index, and AI collaborators behind one API.
// All methods are safe for concurrent use.
type Engine struct {
	mu          sync.Mutex
	store       *store.Store
	fetcher     *feeds.Fetcher
	pipeline    *enrich.Pipeline
	reconciler  *reconcile.Reconciler
	index       *vector.Index
	recommender *vector.Recommender
	embedder    embedding.Embedder
	analyzer    *ai.Analyzer
	feedURLs    []string
}

// NewEngine creates an engine rooted at cfg.DataDir. The Ollama clients
// are created eagerly but only contact the server when called.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.DataDir == "" {
		cfg.DataDir = "./data"
	}
	if cfg.OllamaBaseURL == "" {
		cfg.OllamaBaseURL = "http://localhost:11434"
	}
	if cfg.AnalysisModel == "" {
		cfg.AnalysisModel = "llama3"
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = "mxbai-embed-large"
	}
	if cfg.VectorDimension == 0 {
		cfg.VectorDimension = 1024
	}
	if cfg.ScrapeTimeout == 0 {
		cfg.ScrapeTimeout = 10 * time.Second
	}
	if cfg.ScrapeDelay == 0 {
		cfg.ScrapeDelay = time.Second
	}

	s, err := store.New(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	embedder := cfg.Embedder
	if embedder == nil {
		embedder, err = ai.NewOllamaEmbedder(cfg.OllamaBaseURL, cfg.EmbeddingModel)
		if err != nil {
			return nil, fmt.Errorf("create embedder: %w", err)
		}
	}

	analyzer, err := ai.NewAnalyzer(cfg.OllamaBaseURL, cfg.AnalysisModel)
	if err != nil {
		return nil, fmt.Errorf("create analyzer: %w", err)
	}

	pipeline := enrich.NewPipeline(cfg.ScrapeTimeout, cfg.ScrapeDelay)
	index := vector.NewIndex(cfg.VectorDimension)

	return &Engine{
		store:       s,
		fetcher:     feeds.NewFetcher(),
		pipeline:    pipeline,
		reconciler:  reconcile.New(s, pipeline),
		index:       index,
		recommender: vector.NewRecommender(index, embedder),
		embedder:    embedder,
		analyzer:    analyzer,
		feedURLs:    cfg.Feeds,
	}, nil
}

// FetchCycle downloads all configured feeds, stores and enriches new
// articles, reconciles the store, and rebuilds the vector index from the
// processed corpus. A failing feed is logged and skipped; an embedding
// failure is fatal because it would leave the index stale.
func (e *Engine) FetchCycle(ctx context.Context) (*FetchResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := &FetchResult{FeedsTotal: len(e.feedURLs)}

	existing, err := e.store.IDs(store.Raw)
	if err != nil {
		return nil, fmt.Errorf("list raw ids: %w", err)
	}

	for _, feedURL := range e.feedURLs {
		articles, err := e.fetchOne(ctx, feedURL)
		if err != nil {
			log.Printf("newswire: fetch %s failed: %v", feedURL, err)
			result.FeedsErrored++
			continue
		}

		for _, article := range articles {
			if !existing[article.ID] {
				result.NewArticles++
				existing[article.ID] = true
			}
			if err := e.store.Put(store.Raw, &article); err != nil {
				return nil, fmt.Errorf("store raw article %s: %w", article.ID, err)
			}

			processed := e.pipeline.Process(ctx, article)
			if err := e.store.Put(store.Processed, &processed); err != nil {
				return nil, fmt.Errorf("store processed article %s: %w", article.ID, err)
			}
			result.ProcessedCount++
		}
	}

	if _, _, err := e.reconciler.Sync(ctx); err != nil {
		return nil, fmt.Errorf("reconcile store: %w", err)
	}
	if err := e.rebuildIndex(ctx); err != nil {
		return nil, err
	}

	return result, nil
}

func (e *Engine) fetchOne(ctx context.Context, feedURL string) ([]store.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, feedTimeout)
	defer cancel()
	return e.fetcher.Fetch(ctx, feedURL)
}

// rebuildIndex replaces the index contents with embeddings for the whole
// processed corpus. Caller must hold e.mu.
func (e *Engine) rebuildIndex(ctx context.Context) error {
	corpus, err := e.store.List(store.Processed)
	if err != nil {
		return fmt.Errorf("list processed articles: %w", err)
	}

	vectors, err := ai.ArticleEmbeddings(ctx, e.embedder, corpus)
	if err != nil {
		return fmt.Errorf("embed corpus: %w", err)
	}

	e.index.Clear()
	if err := e.index.Add(vectors); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}
	log.Printf("newswire: indexed %d articles", e.index.Len())
	return nil
}

// Sync reconciles the raw and processed stores so every raw article has a
// processed counterpart, then refreshes the vector index.
func (e *Engine) Sync(ctx context.Context) (*SyncResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	repaired, errored, err := e.reconciler.Sync(ctx)
	if err != nil {
		return nil, err
	}
	if err := e.rebuildIndex(ctx); err != nil {
		return nil, err
	}
	return &SyncResult{Repaired: repaired, ProcessingErrors: errored}, nil
}

// Articles returns all processed articles, newest first.
func (e *Engine) Articles() ([]Article, error) {
	articles, err := e.store.List(store.Processed)
	if err != nil {
		return nil, err
	}
	return articlesFromInternal(articles), nil
}

// Article returns a single processed article by id.
func (e *Engine) Article(id string) (*Article, error) {
	a, err := e.store.Get(store.Processed, id)
	if err != nil {
		return nil, err
	}
	result := articleFromInternal(*a)
	return &result, nil
}

// SimilarArticles returns up to k processed articles most similar to the
// article with the given id, nearest first, never including the article
// itself. Returns ErrNotFound when the id is not in the corpus.
func (e *Engine) SimilarArticles(ctx context.Context, id string, k int) ([]Article, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	corpus, err := e.store.List(store.Processed)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]store.Article, len(corpus))
	for _, a := range corpus {
		byID[a.ID] = a
	}
	if _, ok := byID[id]; !ok {
		return nil, fmt.Errorf("article %s: %w", id, ErrNotFound)
	}

	ids, err := e.recommender.Similar(ctx, id, corpus, k)
	if err != nil {
		return nil, err
	}

	result := make([]Article, 0, len(ids))
	for _, similarID := range ids {
		if a, ok := byID[similarID]; ok {
			result = append(result, articleFromInternal(a))
		}
	}
	return result, nil
}

// Analyze runs LLM analysis on a single processed article.
func (e *Engine) Analyze(ctx context.Context, id string) (*Analysis, error) {
	a, err := e.store.Get(store.Processed, id)
	if err != nil {
		return nil, err
	}
	text, err := e.analyzer.AnalyzeArticle(ctx, *a)
	if err != nil {
		return nil, err
	}
	return &Analysis{ArticleID: id, Analysis: text}, nil
}

// TopicClusters groups the processed corpus into topic clusters via the LLM.
func (e *Engine) TopicClusters(ctx context.Context) (string, error) {
	articles, err := e.store.List(store.Processed)
	if err != nil {
		return "", err
	}
	return e.analyzer.TopicClusters(ctx, articles)
}

// TrendingAnalysis identifies trending topics across the most recent
// processed articles.
func (e *Engine) TrendingAnalysis(ctx context.Context) (string, error) {
	articles, err := e.store.List(store.Processed)
	if err != nil {
		return "", err
	}
	return e.analyzer.TrendingAnalysis(ctx, articles)
}
