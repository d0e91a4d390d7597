// Package auth handles the Google OAuth flow for Docs export and the
// persistence of the resulting tokens.
package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"github.com/studybuddy-ai/studybuddy/internal/db"
)

// ProviderGoogle is the token-store key for Google OAuth tokens.
const ProviderGoogle = "google"

// Store persists OAuth tokens in the application database, one row per
// provider.
type Store struct {
	db *db.DB
}

func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// SaveToken upserts the token for a provider.
func (s *Store) SaveToken(ctx context.Context, provider string, token *oauth2.Token) error {
	payload, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO oauth_tokens (provider, token, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(provider) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at`,
		provider, string(payload), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving %s token: %w", provider, err)
	}
	return nil
}

// Token returns the stored token for a provider, or nil when none is stored.
func (s *Store) Token(ctx context.Context, provider string) (*oauth2.Token, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT token FROM oauth_tokens WHERE provider = ?`, provider).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s token: %w", provider, err)
	}

	var token oauth2.Token
	if err := json.Unmarshal([]byte(payload), &token); err != nil {
		return nil, fmt.Errorf("decoding %s token: %w", provider, err)
	}
	return &token, nil
}

// HasToken reports whether a refreshable token is stored for a provider.
func (s *Store) HasToken(ctx context.Context, provider string) bool {
	token, err := s.Token(ctx, provider)
	return err == nil && token != nil && token.RefreshToken != ""
}

// Delete removes the stored token for a provider.
func (s *Store) Delete(ctx context.Context, provider string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM oauth_tokens WHERE provider = ?`, provider); err != nil {
		return fmt.Errorf("deleting %s token: %w", provider, err)
	}
	return nil
}
