package chat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

func newChatRouter(t *testing.T) chi.Router {
	t.Helper()
	svc, _, _ := setupService(t)
	r := chi.NewRouter()
	RegisterRoutes(r, svc)
	return r
}

func TestChatEndpoint(t *testing.T) {
	router := newChatRouter(t)

	body := `{"messages":[{"role":"user","content":"What is mitosis?"}],"documentId":"doc-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp chatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Reply == "" {
		t.Error("expected a reply")
	}
}

func TestChatEndpointRequiresMessages(t *testing.T) {
	router := newChatRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"messages":[]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestQueryEndpointReturnsMatches(t *testing.T) {
	router := newChatRouter(t)

	body := `{"query":"What is mitosis?","k":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/documents/doc-1/query", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Matches []queryMatch `json:"matches"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(resp.Matches))
	}
	if resp.Matches[0].Content != "Mitosis has four phases." {
		t.Errorf("unexpected top match %q", resp.Matches[0].Content)
	}
	if resp.Matches[0].ChunkNumber != 1 {
		t.Errorf("unexpected chunk number %d", resp.Matches[0].ChunkNumber)
	}
}

func TestQueryEndpointUnknownDocument(t *testing.T) {
	router := newChatRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/documents/missing/query", strings.NewReader(`{"query":"q"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestChatWebSocketRoundTrip(t *testing.T) {
	router := newChatRouter(t)
	server := httptest.NewServer(router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/chat/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dialing websocket: %v", err)
	}
	defer conn.Close()

	req := chatRequest{
		Messages:   []Message{{Role: "user", Content: "What is mitosis?"}},
		DocumentID: "doc-1",
	}
	if err := conn.WriteJSON(req); err != nil {
		t.Fatal(err)
	}

	var resp chatResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Reply == "" {
		t.Error("expected a reply over the websocket")
	}

	// A second turn reuses the same connection.
	if err := conn.WriteJSON(req); err != nil {
		t.Fatal(err)
	}
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}
}

func TestChatWebSocketReportsEmptyMessages(t *testing.T) {
	router := newChatRouter(t)
	server := httptest.NewServer(router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/chat/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(chatRequest{}); err != nil {
		t.Fatal(err)
	}

	var resp map[string]string
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["error"] == "" {
		t.Error("expected an error message for an empty request")
	}
}
