package docstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTestRouter(t *testing.T) (chi.Router, *Store) {
	t.Helper()
	store := setupTestStore(t)
	r := chi.NewRouter()
	RegisterRoutes(r, store)
	return r, store
}

func TestListOmitsEmbeddings(t *testing.T) {
	router, store := newTestRouter(t)
	if err := store.Save(context.Background(), "doc-1", sampleDocument()); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var entries []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if _, present := entries[0]["embeddings"]; present {
		t.Error("list response must not carry embeddings")
	}
	if entries[0]["chunkCount"] == nil {
		t.Error("list response missing chunkCount")
	}
}

func TestGetDocumentByID(t *testing.T) {
	router, store := newTestRouter(t)
	if err := store.Save(context.Background(), "doc-1", sampleDocument()); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/documents/doc-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var doc Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.ID != "doc-1" || doc.Filename != "circuits.pdf" {
		t.Errorf("unexpected document %+v", doc)
	}
}

func TestGetUnknownDocumentIs404(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/documents/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestDeleteDocument(t *testing.T) {
	router, store := newTestRouter(t)
	if err := store.Save(context.Background(), "doc-1", sampleDocument()); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/documents/doc-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if store.Count() != 0 {
		t.Errorf("expected empty store, got %d documents", store.Count())
	}

	// Deleting again is a 404.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/documents/doc-1", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestClearDocuments(t *testing.T) {
	router, store := newTestRouter(t)
	for _, id := range []string{"a", "b", "c"} {
		if err := store.Save(context.Background(), id, sampleDocument()); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/documents", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if store.Count() != 0 {
		t.Errorf("expected empty store, got %d documents", store.Count())
	}
}
