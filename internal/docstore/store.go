// Package docstore persists ingested documents and their embedding records.
// It keeps an in-memory view backed by SQLite so the store survives process
// restarts; readers always see either the old or the new full record.
package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/studybuddy-ai/studybuddy/internal/db"
)

// Store manages document persistence with an in-memory cache in front of
// durable SQLite storage. Construct one per process with New.
type Store struct {
	db *db.DB

	mu    sync.RWMutex
	cache map[string]*Document
}

// New creates a document store and hydrates its cache from durable storage.
func New(database *db.DB) (*Store, error) {
	s := &Store{
		db:    database,
		cache: make(map[string]*Document),
	}
	if err := s.loadAll(context.Background()); err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}
	log.Printf("docstore: loaded %d document(s) from storage", len(s.cache))
	return s, nil
}

func (s *Store) loadAll(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT id, payload FROM documents`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return err
		}
		var doc Document
		if err := json.Unmarshal([]byte(payload), &doc); err != nil {
			// A corrupt row should not take down the whole store.
			log.Printf("docstore: skipping unreadable document %s: %v", id, err)
			continue
		}
		s.cache[id] = &doc
	}
	return rows.Err()
}

// Save stamps a fresh timestamp and upserts the full document, writing
// through to durable storage before updating the in-memory view.
func (s *Store) Save(ctx context.Context, id string, doc Document) error {
	if id == "" {
		return fmt.Errorf("docstore: document id is required")
	}
	doc.ID = id
	doc.Timestamp = time.Now().UTC()

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document %s: %w", id, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (id, filename, payload, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET filename = excluded.filename, payload = excluded.payload, created_at = excluded.created_at`,
		id, doc.Filename, string(payload), doc.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("saving document %s: %w", id, err)
	}

	s.mu.Lock()
	s.cache[id] = &doc
	s.mu.Unlock()
	return nil
}

// Get returns the document with the given id, consulting the in-memory cache
// first and hydrating from durable storage on a miss. A nil document with a
// nil error means not found.
func (s *Store) Get(ctx context.Context, id string) (*Document, error) {
	s.mu.RLock()
	doc, ok := s.cache[id]
	s.mu.RUnlock()
	if ok {
		return doc, nil
	}

	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM documents WHERE id = ?`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", id, err)
	}

	var hydrated Document
	if err := json.Unmarshal([]byte(payload), &hydrated); err != nil {
		return nil, fmt.Errorf("decoding document %s: %w", id, err)
	}

	s.mu.Lock()
	s.cache[id] = &hydrated
	s.mu.Unlock()
	return &hydrated, nil
}

// GetAll returns all documents, newest first.
func (s *Store) GetAll() []Document {
	s.mu.RLock()
	docs := make([]Document, 0, len(s.cache))
	for _, d := range s.cache {
		docs = append(docs, *d)
	}
	s.mu.RUnlock()

	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].Timestamp.Equal(docs[j].Timestamp) {
			return docs[i].Timestamp.After(docs[j].Timestamp)
		}
		return docs[i].ID < docs[j].ID
	})
	return docs
}

// Delete removes the document with the given id from cache and storage.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting document %s: %w", id, err)
	}
	s.mu.Lock()
	delete(s.cache, id)
	s.mu.Unlock()
	return nil
}

// Clear removes every document.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return fmt.Errorf("clearing documents: %w", err)
	}
	s.mu.Lock()
	s.cache = make(map[string]*Document)
	s.mu.Unlock()
	return nil
}

// Count returns the number of documents in the store.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache)
}

// DropCache empties the in-memory view without touching durable storage.
// Gets will re-hydrate on demand. Intended for tests simulating restarts.
func (s *Store) DropCache() {
	s.mu.Lock()
	s.cache = make(map[string]*Document)
	s.mu.Unlock()
}
