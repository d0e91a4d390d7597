package chat

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// RegisterRoutes mounts chat and similarity-query endpoints.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/api/chat", handleChat(svc))
	r.Get("/api/chat/ws", handleChatSocket(svc))
	r.Post("/api/documents/{id}/query", handleQuery(svc))
}

type chatRequest struct {
	Messages   []Message `json:"messages"`
	DocumentID string    `json:"documentId"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func handleChat(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if len(req.Messages) == 0 {
			writeError(w, http.StatusBadRequest, "messages are required")
			return
		}

		reply, err := svc.Reply(r.Context(), req.Messages, req.DocumentID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The HTTP layer's CORS policy governs; the upgrade itself accepts any
	// origin the router let through.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleChatSocket mirrors the POST contract over a websocket: the client
// sends one chatRequest per turn and receives one chatResponse (or error)
// back.
func handleChatSocket(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("chat: websocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		for {
			var req chatRequest
			if err := conn.ReadJSON(&req); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Printf("chat: websocket read failed: %v", err)
				}
				return
			}

			if len(req.Messages) == 0 {
				if err := conn.WriteJSON(map[string]string{"error": "messages are required"}); err != nil {
					return
				}
				continue
			}

			reply, err := svc.Reply(r.Context(), req.Messages, req.DocumentID)
			if err != nil {
				if werr := conn.WriteJSON(map[string]string{"error": err.Error()}); werr != nil {
					return
				}
				continue
			}
			if err := conn.WriteJSON(chatResponse{Reply: reply}); err != nil {
				return
			}
		}
	}
}

type queryRequest struct {
	Query string `json:"query"`
	K     int    `json:"k"`
}

type queryMatch struct {
	Content     string  `json:"content"`
	Similarity  float64 `json:"similarity"`
	ChunkNumber int     `json:"chunkNumber"`
}

func handleQuery(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		scored, err := svc.Query(r.Context(), id, req.Query, req.K)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		matches := make([]queryMatch, len(scored))
		for i, s := range scored {
			matches[i] = queryMatch{
				Content:     s.Record.Content,
				Similarity:  s.Similarity,
				ChunkNumber: s.Record.Metadata.ChunkNumber,
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"matches": matches})
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
