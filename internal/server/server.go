package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/studybuddy-ai/studybuddy/internal/agents"
	"github.com/studybuddy-ai/studybuddy/internal/auth"
	"github.com/studybuddy-ai/studybuddy/internal/chat"
	"github.com/studybuddy-ai/studybuddy/internal/config"
	"github.com/studybuddy-ai/studybuddy/internal/db"
	"github.com/studybuddy-ai/studybuddy/internal/docstore"
	"github.com/studybuddy-ai/studybuddy/internal/embeddings"
	"github.com/studybuddy-ai/studybuddy/internal/export"
	"github.com/studybuddy-ai/studybuddy/internal/ingest"
	"github.com/studybuddy-ai/studybuddy/internal/llm"
)

// Server is the studybuddy HTTP server. It owns the router and wires the
// feature packages (agents, ingestion, documents, chat, export) onto it.
type Server struct {
	cfg        *config.Config
	db         *db.DB
	store      *docstore.Store
	embedder   embeddings.Embedder
	provider   llm.Provider
	tokens     *auth.Store
	router     chi.Router
	httpServer *http.Server
}

// New creates a server with all dependencies and registers every feature
// package's routes.
func New(cfg *config.Config, database *db.DB, store *docstore.Store, embedder embeddings.Embedder, provider llm.Provider) (*Server, error) {
	s := &Server{
		cfg:      cfg,
		db:       database,
		store:    store,
		embedder: embedder,
		provider: provider,
		tokens:   auth.NewStore(database),
	}

	runner, err := agents.NewRunner(provider, cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("creating agent runner: %w", err)
	}
	planner, err := agents.NewPlanner(provider, cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("creating planner: %w", err)
	}
	chatSvc, err := chat.NewService(store, embedder, provider, cfg.Model, cfg.TopK)
	if err != nil {
		return nil, fmt.Errorf("creating chat service: %w", err)
	}
	pipeline := ingest.New(store, embedder, cfg.ChunkSize)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if cfg.CORSAllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	agents.RegisterRoutes(r, agents.NewOrchestrator(runner), planner)
	ingest.RegisterRoutes(r, pipeline)
	docstore.RegisterRoutes(r, store)
	chat.RegisterRoutes(r, chatSvc)
	export.RegisterRoutes(r, s.tokens, cfg.GoogleClientID, cfg.GoogleClientSecret)

	s.router = r
	return s, nil
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Tokens returns the OAuth token store.
func (s *Server) Tokens() *auth.Store { return s.tokens }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("studybuddy server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
