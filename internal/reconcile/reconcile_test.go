package reconcile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"newswire/internal/enrich"
	"newswire/internal/store"
)

func newTestReconciler(t *testing.T) (*Reconciler, *store.Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := store.New(dir)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	return New(s, enrich.NewPipeline(0, -1)), s, dir
}

func putRaw(t *testing.T, s *store.Store, title, date string) string {
	t.Helper()
	a := &store.Article{
		ID:      store.ArticleID(title, date),
		Title:   title,
		Date:    date,
		Content: "content for " + title,
	}
	if err := s.Put(store.Raw, a); err != nil {
		t.Fatalf("Put raw: %v", err)
	}
	return a.ID
}

func TestMissingFromProcessed(t *testing.T) {
	rec, s, _ := newTestReconciler(t)

	a := putRaw(t, s, "A", "2024-01-01")
	b := putRaw(t, s, "B", "2024-01-01")

	// Give A a processed counterpart; B stays missing.
	raw, _ := s.Get(store.Raw, a)
	processed := *raw
	processed.Processed = true
	if err := s.Put(store.Processed, &processed); err != nil {
		t.Fatalf("Put processed: %v", err)
	}

	missing, err := rec.MissingFromProcessed()
	if err != nil {
		t.Fatalf("MissingFromProcessed: %v", err)
	}
	if len(missing) != 1 || !missing[b] {
		t.Errorf("expected only %s missing, got %v", b, missing)
	}
}

func TestSyncConvergesIdentifierSets(t *testing.T) {
	rec, s, _ := newTestReconciler(t)

	for _, title := range []string{"A", "B", "C"} {
		putRaw(t, s, title, "2024-01-01")
	}

	repaired, errored, err := rec.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if repaired != 3 {
		t.Errorf("expected 3 repaired, got %d", repaired)
	}
	if errored != 0 {
		t.Errorf("expected 0 errored, got %d", errored)
	}

	rawIDs, _ := s.IDs(store.Raw)
	processedIDs, _ := s.IDs(store.Processed)
	if len(rawIDs) != len(processedIDs) {
		t.Fatalf("identifier sets differ: raw=%d processed=%d", len(rawIDs), len(processedIDs))
	}
	for id := range rawIDs {
		if !processedIDs[id] {
			t.Errorf("raw id %s has no processed counterpart", id)
		}
	}

	// Repaired records are fully enriched.
	for id := range processedIDs {
		article, err := s.Get(store.Processed, id)
		if err != nil {
			t.Fatalf("Get processed %s: %v", id, err)
		}
		if !article.Processed {
			t.Errorf("record %s not flagged processed", id)
		}
		if article.ReadingTimeMinutes < 1 {
			t.Errorf("record %s missing reading time", id)
		}
	}
}

func TestSyncIsIdempotent(t *testing.T) {
	rec, _, _ := newTestReconciler(t)
	// Seed via the first sync
	putRaw(t, rec.store, "A", "2024-01-01")
	if _, _, err := rec.Sync(context.Background()); err != nil {
		t.Fatalf("first Sync: %v", err)
	}

	repaired, _, err := rec.Sync(context.Background())
	if err != nil {
		t.Fatalf("second Sync: %v", err)
	}
	if repaired != 0 {
		t.Errorf("expected nothing to repair on second pass, got %d", repaired)
	}
}

func TestRepairMissingHandlesCorruptRaw(t *testing.T) {
	rec, s, dir := newTestReconciler(t)

	id := "00000000000000000000000000000000"
	bad := filepath.Join(dir, "raw_news", id+".json")
	if err := os.WriteFile(bad, []byte("{broken"), 0644); err != nil {
		t.Fatalf("write corrupt raw: %v", err)
	}

	repaired, err := rec.RepairMissing(context.Background())
	if err != nil {
		t.Fatalf("RepairMissing: %v", err)
	}
	if repaired != 1 {
		t.Fatalf("expected 1 repair, got %d", repaired)
	}

	// A minimal processed record exists so the id can never go missing again.
	article, err := s.Get(store.Processed, id)
	if err != nil {
		t.Fatalf("Get minimal record: %v", err)
	}
	if !article.Processed || article.ProcessingError == "" {
		t.Errorf("expected flagged minimal record with error, got %+v", article)
	}

	_, errored, err := rec.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if errored != 1 {
		t.Errorf("expected 1 record counted as errored, got %d", errored)
	}
}

func TestRepairUnprocessedFlagged(t *testing.T) {
	rec, s, _ := newTestReconciler(t)

	// A processed-directory record that was never actually enriched.
	a := &store.Article{
		ID:      store.ArticleID("stale", "2024-01-01"),
		Title:   "stale",
		Date:    "2024-01-01",
		Content: "stale content",
	}
	if err := s.Put(store.Raw, a); err != nil {
		t.Fatalf("Put raw: %v", err)
	}
	if err := s.Put(store.Processed, a); err != nil {
		t.Fatalf("Put processed: %v", err)
	}

	repaired, err := rec.RepairUnprocessed(context.Background())
	if err != nil {
		t.Fatalf("RepairUnprocessed: %v", err)
	}
	if repaired != 1 {
		t.Fatalf("expected 1 repair, got %d", repaired)
	}

	got, _ := s.Get(store.Processed, a.ID)
	if !got.Processed || got.Summary == "" {
		t.Errorf("expected enriched record, got %+v", got)
	}
}
