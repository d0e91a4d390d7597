package export

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studybuddy-ai/studybuddy/internal/auth"
)

// RegisterRoutes mounts export endpoints. clientID/clientSecret are the
// Google OAuth app credentials from config; the user token comes from the
// token store.
func RegisterRoutes(r chi.Router, tokens *auth.Store, clientID, clientSecret string) {
	r.Post("/api/export/html", handleHTML())
	r.Post("/api/export/gdocs", handleGDocs(tokens, clientID, clientSecret))
}

type exportRequest struct {
	Title   string                     `json:"title"`
	Results map[string]json.RawMessage `json:"results"`
}

func handleHTML() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req exportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if len(req.Results) == 0 {
			writeError(w, http.StatusBadRequest, "results are required")
			return
		}

		page, err := RenderHTML(req.Title, FormatMarkdown(req.Title, req.Results))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(page))
	}
}

func handleGDocs(tokens *auth.Store, clientID, clientSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req exportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if len(req.Results) == 0 {
			writeError(w, http.StatusBadRequest, "results are required")
			return
		}

		token, err := tokens.Token(r.Context(), auth.ProviderGoogle)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if token == nil {
			writeError(w, http.StatusUnauthorized, "Google account not connected; run `studybuddy auth google`")
			return
		}

		ts := auth.NewGoogleTokenSource(r.Context(), clientID, clientSecret, token)
		exporter, err := NewGDocsExporter(r.Context(), ts)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		result, err := exporter.Export(r.Context(), req.Title, FormatMarkdown(req.Title, req.Results))
		if err != nil {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, result)
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
