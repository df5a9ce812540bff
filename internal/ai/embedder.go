package ai

import (
	"context"
	"fmt"
	"net/url"

	embedding "github.com/matthewjhunter/go-embedding"
	"github.com/ollama/ollama/api"

	"newswire/internal/store"
	"newswire/internal/vector"
)

// OllamaEmbedder generates embeddings through a local Ollama server.
// It satisfies the embedding.Embedder interface.
type OllamaEmbedder struct {
	client *api.Client
	model  string
}

var _ embedding.Embedder = (*OllamaEmbedder)(nil)

// NewOllamaEmbedder creates an embedder for the given model. The client is
// built from the environment (OLLAMA_HOST) when possible, falling back to
// baseURL. No connection is made until Embed is called.
func NewOllamaEmbedder(baseURL, model string) (*OllamaEmbedder, error) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		parsedURL, parseErr := url.Parse(baseURL)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid base URL: %w", parseErr)
		}
		client = api.NewClient(parsedURL, nil)
	}
	return &OllamaEmbedder{client: client, model: model}, nil
}

// Embed returns one vector per input text, in input order.
func (e *OllamaEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := e.client.Embed(ctx, &api.EmbedRequest{
		Model: e.model,
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama embed: %w", err)
	}
	return resp.Embeddings, nil
}

func (e *OllamaEmbedder) Model() string { return e.model }

// ArticleEmbeddings generates embeddings for a batch of articles and maps
// each article id to its vector. An embedder failure is a hard error: there
// is no partial-batch degradation, because a partially embedded corpus
// would silently skew similarity results.
func ArticleEmbeddings(ctx context.Context, embedder embedding.Embedder, articles []store.Article) (map[string][]float32, error) {
	if len(articles) == 0 {
		return map[string][]float32{}, nil
	}

	texts := make([]string, len(articles))
	for i, article := range articles {
		texts[i] = vector.DocumentText(article)
	}

	vecs, err := embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("generate embeddings: %w", err)
	}
	if len(vecs) != len(articles) {
		return nil, fmt.Errorf("embedding count mismatch: %d texts, %d vectors", len(articles), len(vecs))
	}

	out := make(map[string][]float32, len(articles))
	for i, article := range articles {
		out[article.ID] = vecs[i]
	}
	return out, nil
}
