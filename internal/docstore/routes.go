package docstore

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// listEntry is the trimmed listing shape: embeddings stay out of list
// responses, they can run to megabytes per document.
type listEntry struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Stats      Stats     `json:"stats"`
	ChunkCount int       `json:"chunkCount"`
	Timestamp  time.Time `json:"timestamp"`
}

// RegisterRoutes mounts document read/delete endpoints.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Get("/api/documents", handleList(store))
	r.Get("/api/documents/{id}", handleGet(store))
	r.Delete("/api/documents/{id}", handleDelete(store))
	r.Delete("/api/documents", handleClear(store))
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs := store.GetAll()
		entries := make([]listEntry, len(docs))
		for i, d := range docs {
			entries[i] = listEntry{
				ID:         d.ID,
				Filename:   d.Filename,
				Stats:      d.Stats,
				ChunkCount: len(d.Embeddings),
				Timestamp:  d.Timestamp,
			}
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func handleGet(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		doc, err := store.Get(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if doc == nil {
			writeError(w, http.StatusNotFound, "document not found")
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

func handleDelete(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		doc, err := store.Get(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if doc == nil {
			writeError(w, http.StatusNotFound, "document not found")
			return
		}
		if err := store.Delete(r.Context(), id); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func handleClear(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Clear(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
