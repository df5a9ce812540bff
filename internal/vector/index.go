// Package vector provides an exact nearest-neighbor index over article
// embeddings and a recommender that joins query results back to articles.
//
// Search is brute-force Euclidean distance. The corpus is bounded by a
// handful of feeds' recent entries, so exact search stays cheap and avoids
// the complexity of approximate indexing.
package vector

import (
	"fmt"
	"sort"
)

// Index holds embeddings and article identifiers in parallel slices:
// position i in both refers to the same article. It is rebuilt from scratch
// on every fetch cycle; there is no incremental delete.
type Index struct {
	dim     int
	vectors [][]float32
	ids     []string
}

// NewIndex creates an empty index for embeddings of the given dimension.
func NewIndex(dim int) *Index {
	return &Index{dim: dim}
}

// Clear resets the index to empty, keeping the configured dimension.
func (ix *Index) Clear() {
	ix.vectors = nil
	ix.ids = nil
}

// Len returns the number of indexed articles.
func (ix *Index) Len() int {
	return len(ix.ids)
}

// Dimension returns the configured embedding dimension.
func (ix *Index) Dimension() int {
	return ix.dim
}

// Add appends a batch of embeddings keyed by article id. The whole batch is
// validated first; a single dimension mismatch rejects the batch and leaves
// the index unchanged.
func (ix *Index) Add(embeddings map[string][]float32) error {
	for id, vec := range embeddings {
		if len(vec) != ix.dim {
			return fmt.Errorf("embedding for %s has dimension %d, index expects %d", id, len(vec), ix.dim)
		}
	}
	for id, vec := range embeddings {
		ix.ids = append(ix.ids, id)
		ix.vectors = append(ix.vectors, vec)
	}
	return nil
}

// Search returns the k nearest article ids by Euclidean distance, nearest
// first. When k exceeds the index size, all indexed ids are returned.
func (ix *Index) Search(query []float32, k int) ([]string, error) {
	if len(query) != ix.dim {
		return nil, fmt.Errorf("query has dimension %d, index expects %d", len(query), ix.dim)
	}
	if k <= 0 || ix.Len() == 0 {
		return nil, nil
	}

	order := make([]int, len(ix.ids))
	dists := make([]float32, len(ix.ids))
	for i := range ix.ids {
		order[i] = i
		dists[i] = squaredDistance(query, ix.vectors[i])
	}
	sort.SliceStable(order, func(a, b int) bool {
		return dists[order[a]] < dists[order[b]]
	})

	if k > len(order) {
		k = len(order)
	}
	out := make([]string, k)
	for i := 0; i < k; i++ {
		out[i] = ix.ids[order[i]]
	}
	return out, nil
}

// squaredDistance avoids the sqrt; ordering by squared Euclidean distance
// is identical to ordering by Euclidean distance.
func squaredDistance(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
