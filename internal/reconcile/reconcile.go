// Package reconcile repairs drift between the raw and processed article
// sets. A crash between the two writes of a cycle can leave a raw record
// without a processed counterpart; the reconciler heals that on the next
// run, guaranteeing eventual 1:1 coverage.
package reconcile

import (
	"context"
	"fmt"
	"log"
	"time"

	"newswire/internal/enrich"
	"newswire/internal/store"
)

type Reconciler struct {
	store    *store.Store
	pipeline *enrich.Pipeline
}

func New(s *store.Store, p *enrich.Pipeline) *Reconciler {
	return &Reconciler{store: s, pipeline: p}
}

// MissingFromProcessed returns the raw identifiers that have no processed
// counterpart.
func (r *Reconciler) MissingFromProcessed() (map[string]bool, error) {
	rawIDs, err := r.store.IDs(store.Raw)
	if err != nil {
		return nil, fmt.Errorf("list raw identifiers: %w", err)
	}
	processedIDs, err := r.store.IDs(store.Processed)
	if err != nil {
		return nil, fmt.Errorf("list processed identifiers: %w", err)
	}

	missing := make(map[string]bool)
	for id := range rawIDs {
		if !processedIDs[id] {
			missing[id] = true
		}
	}
	return missing, nil
}

// RepairMissing enriches and persists every raw article missing from the
// processed set. A record that cannot be read or written still gets a
// minimal processed counterpart carrying the error, so the identifier sets
// converge in finite passes instead of retrying forever.
func (r *Reconciler) RepairMissing(ctx context.Context) (int, error) {
	missing, err := r.MissingFromProcessed()
	if err != nil {
		return 0, err
	}

	repaired := 0
	for id := range missing {
		raw, err := r.store.Get(store.Raw, id)
		if err != nil {
			log.Printf("reconcile: unreadable raw record %s: %v", id, err)
			if err := r.persistMinimal(id, err); err != nil {
				log.Printf("reconcile: minimal record for %s: %v", id, err)
				continue
			}
			repaired++
			continue
		}

		processed := r.pipeline.Process(ctx, *raw)
		if err := r.store.Put(store.Processed, &processed); err != nil {
			log.Printf("reconcile: persisting processed record %s: %v", id, err)
			if err := r.persistMinimal(id, err); err != nil {
				log.Printf("reconcile: minimal record for %s: %v", id, err)
				continue
			}
		}
		repaired++
	}
	return repaired, nil
}

// RepairUnprocessed sweeps processed records whose processed flag is still
// false. The set is empty under normal operation; a legacy or partially
// written record would otherwise never be enriched.
func (r *Reconciler) RepairUnprocessed(ctx context.Context) (int, error) {
	articles, err := r.store.List(store.Processed)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, article := range articles {
		if article.Processed {
			continue
		}
		processed := r.pipeline.Process(ctx, article)
		if err := r.store.Put(store.Processed, &processed); err != nil {
			log.Printf("reconcile: re-persisting %s: %v", article.ID, err)
			continue
		}
		repaired++
	}
	return repaired, nil
}

// Sync runs both repair passes and recounts how many processed records
// carry a processing error, for observability.
func (r *Reconciler) Sync(ctx context.Context) (repaired, errored int, err error) {
	missing, err := r.RepairMissing(ctx)
	if err != nil {
		return 0, 0, err
	}
	flagged, err := r.RepairUnprocessed(ctx)
	if err != nil {
		return missing, 0, err
	}

	articles, err := r.store.List(store.Processed)
	if err != nil {
		return missing + flagged, 0, err
	}
	for _, article := range articles {
		if article.ProcessingError != "" {
			errored++
		}
	}
	return missing + flagged, errored, nil
}

func (r *Reconciler) persistMinimal(id string, cause error) error {
	minimal := &store.Article{
		ID:                 id,
		Processed:          true,
		ProcessedTimestamp: time.Now().UTC().Format(time.RFC3339),
		ProcessingError:    cause.Error(),
	}
	return r.store.Put(store.Processed, minimal)
}
