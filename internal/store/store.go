// Package store persists articles as one indented JSON record per file,
// keyed by a content-derived identifier. Two sibling directories hold the
// raw and processed representations of the same article set.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned when no record exists for a requested id.
// Callers use it to distinguish "unknown article" from storage failures.
var ErrNotFound = errors.New("article not found")

// Kind selects which of the two on-disk representations an operation targets.
type Kind string

const (
	Raw       Kind = "raw"
	Processed Kind = "processed"
)

// Store is a directory-backed key-value store for articles. Records are
// written atomically (temp file + rename) so a crash mid-write never leaves
// a half-written JSON file behind.
type Store struct {
	rawDir       string
	processedDir string
}

// New creates a store rooted at dataDir, ensuring both record directories
// exist. Safe to call repeatedly over the same directory.
func New(dataDir string) (*Store, error) {
	s := &Store{
		rawDir:       filepath.Join(dataDir, "raw_news"),
		processedDir: filepath.Join(dataDir, "processed_news"),
	}
	for _, dir := range []string{s.rawDir, s.processedDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory %s: %w", dir, err)
		}
	}
	return s, nil
}

func (s *Store) dir(kind Kind) string {
	if kind == Processed {
		return s.processedDir
	}
	return s.rawDir
}

func (s *Store) path(kind Kind, id string) string {
	return filepath.Join(s.dir(kind), id+".json")
}

// Put writes one article record, overwriting any existing record with the
// same id. The write goes to a temp file first and is renamed into place.
func (s *Store) Put(kind Kind, article *Article) error {
	if article.ID == "" {
		return fmt.Errorf("put %s record: empty article id", kind)
	}

	data, err := json.MarshalIndent(article, "", "  ")
	if err != nil {
		return fmt.Errorf("encode article %s: %w", article.ID, err)
	}

	dir := s.dir(kind)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write article %s: %w", article.ID, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file for %s: %w", article.ID, err)
	}

	if err := os.Rename(tmpName, s.path(kind, article.ID)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file for %s: %w", article.ID, err)
	}
	return nil
}

// Get reads one record by id. Returns ErrNotFound if no record exists.
func (s *Store) Get(kind Kind, id string) (*Article, error) {
	data, err := os.ReadFile(s.path(kind, id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s record %s: %w", kind, id, ErrNotFound)
		}
		return nil, fmt.Errorf("read %s record %s: %w", kind, id, err)
	}

	var article Article
	if err := json.Unmarshal(data, &article); err != nil {
		return nil, fmt.Errorf("decode %s record %s: %w", kind, id, err)
	}
	return &article, nil
}

// List reads every record in a directory, ordered by publication-date string
// descending. The date is an opaque string so the ordering is lexical.
// A single unreadable or corrupt file is logged and skipped, never fatal.
func (s *Store) List(kind Kind) ([]Article, error) {
	entries, err := os.ReadDir(s.dir(kind))
	if err != nil {
		return nil, fmt.Errorf("list %s records: %w", kind, err)
	}

	var articles []Article
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir(kind), name))
		if err != nil {
			log.Printf("store: skipping unreadable %s record %s: %v", kind, name, err)
			continue
		}
		var article Article
		if err := json.Unmarshal(data, &article); err != nil {
			log.Printf("store: skipping corrupt %s record %s: %v", kind, name, err)
			continue
		}
		articles = append(articles, article)
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Date > articles[j].Date
	})
	return articles, nil
}

// IDs returns the identifier set for a directory, derived from filenames.
func (s *Store) IDs(kind Kind) (map[string]bool, error) {
	entries, err := os.ReadDir(s.dir(kind))
	if err != nil {
		return nil, fmt.Errorf("list %s identifiers: %w", kind, err)
	}

	ids := make(map[string]bool, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids[strings.TrimSuffix(name, ".json")] = true
	}
	return ids, nil
}

// Delete removes one record. Deleting an absent record is not an error.
func (s *Store) Delete(kind Kind, id string) error {
	if err := os.Remove(s.path(kind, id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s record %s: %w", kind, id, err)
	}
	return nil
}

// Clear removes every record in a directory.
func (s *Store) Clear(kind Kind) error {
	ids, err := s.IDs(kind)
	if err != nil {
		return err
	}
	for id := range ids {
		if err := s.Delete(kind, id); err != nil {
			return err
		}
	}
	return nil
}
