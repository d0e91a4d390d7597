package ingest

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// maxUploadBytes caps multipart uploads at 10MB.
const maxUploadBytes = 10 << 20

// RegisterRoutes mounts the document upload endpoint.
func RegisterRoutes(r chi.Router, pipeline *Pipeline) {
	r.Post("/api/documents", handleUpload(pipeline))
}

type uploadRequest struct {
	Filename  string `json:"filename"`
	Text      string `json:"text"`
	PageCount int    `json:"pageCount"`
}

// handleUpload accepts either a multipart text file under the "file" field
// or a JSON body carrying pre-extracted text (the path PDFs take, since
// their extraction happens outside this server).
func handleUpload(pipeline *Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if strings.HasPrefix(ct, "multipart/form-data") {
			handleMultipartUpload(pipeline, w, r)
			return
		}

		var req uploadRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxUploadBytes)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			writeError(w, http.StatusBadRequest, "text is required")
			return
		}
		if req.Filename == "" {
			req.Filename = "untitled.txt"
		}

		result, err := pipeline.IngestText(r.Context(), req.Filename, req.Text, req.PageCount)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, result)
	}
}

func handleMultipartUpload(pipeline *Pipeline, w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "file exceeds 10MB limit")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	if header.Header.Get("Content-Type") == "application/pdf" || strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		writeError(w, http.StatusUnsupportedMediaType, "PDF uploads must be pre-extracted; send JSON {filename, text, pageCount}")
		return
	}
	if !SupportedFile(header.Filename) {
		writeError(w, http.StatusUnsupportedMediaType, "unsupported file type")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading upload: "+err.Error())
		return
	}
	ex, err := TextExtractor{}.Extract(data)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	result, err := pipeline.IngestText(r.Context(), header.Filename, ex.Text, ex.PageCount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
