package vector

import (
	"context"
	"fmt"

	embedding "github.com/matthewjhunter/go-embedding"

	"newswire/internal/store"
)

// DocumentText builds the text an article is embedded from. Title and
// content together give a better semantic representation than either alone.
// The bulk index load and query-time embedding must use the same form so a
// query article is distance zero from its own indexed vector.
func DocumentText(article store.Article) string {
	return article.Title + " " + article.Content
}

// Recommender answers "articles similar to this one" queries against an
// index, generating the query embedding on the fly rather than caching it
// from the bulk load.
type Recommender struct {
	index    *Index
	embedder embedding.Embedder
}

// NewRecommender creates a recommender over the given index and embedder.
func NewRecommender(index *Index, embedder embedding.Embedder) *Recommender {
	return &Recommender{index: index, embedder: embedder}
}

// Similar returns up to k article ids most similar to the article with the
// given id within corpus. An unknown id yields an empty result, not an
// error. An embedder failure is a hard error; no result can exist without it.
func (r *Recommender) Similar(ctx context.Context, id string, corpus []store.Article, k int) ([]string, error) {
	var query *store.Article
	for i := range corpus {
		if corpus[i].ID == id {
			query = &corpus[i]
			break
		}
	}
	if query == nil {
		return nil, nil
	}

	vec, err := embedding.Single(ctx, r.embedder, DocumentText(*query))
	if err != nil {
		return nil, fmt.Errorf("embed query article %s: %w", id, err)
	}

	// Ask for one extra neighbor to absorb the query article matching itself.
	neighbors, err := r.index.Search(vec, k+1)
	if err != nil {
		return nil, err
	}

	similar := make([]string, 0, k)
	for _, n := range neighbors {
		if n == id {
			continue
		}
		similar = append(similar, n)
		if len(similar) == k {
			break
		}
	}
	return similar, nil
}
