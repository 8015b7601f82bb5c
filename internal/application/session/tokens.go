// Package session binds per-browser-session state (the token pair and the
// invoice wizard) to an opaque session id held in the marker cookie.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	model "github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/session"
)

// Backend is the key/value store session state lives in.
// Get returns an error for absent or expired keys.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Marker controls the browser side of the session (the marker cookie).
type Marker interface {
	ClearMarker()
}

// TokenStore persists the token pair of one browser session.
type TokenStore struct {
	backend   Backend
	sessionID string
	marker    Marker
	now       func() time.Time
}

// NewTokenStore binds a token store to a session id.
// marker may be nil when there is no browser to notify (background work, tests).
func NewTokenStore(backend Backend, sessionID string, marker Marker) *TokenStore {
	return &TokenStore{backend: backend, sessionID: sessionID, marker: marker, now: time.Now}
}

// SessionID returns the opaque id the store is bound to.
func (s *TokenStore) SessionID() string {
	return s.sessionID
}

func (s *TokenStore) key() string {
	return model.Key(model.TokenNamespace, s.sessionID)
}

// Load returns the persisted pair, or an empty pair when absent or malformed.
// PRE: none
// POST: never fails; backend errors are logged and read as absent
func (s *TokenStore) Load(ctx context.Context) model.TokenPair {
	if s.sessionID == "" {
		return model.TokenPair{}
	}
	raw, err := s.backend.Get(ctx, s.key())
	if err != nil {
		return model.TokenPair{}
	}
	var pair model.TokenPair
	if err := json.Unmarshal(raw, &pair); err != nil {
		slog.Warn("token_store", "event", "malformed", "session", s.sessionID)
		return model.TokenPair{}
	}
	return pair
}

// Save overwrites the persisted pair. The entry lives as long as the marker,
// or less when the refresh token expires sooner.
// PRE: the store is bound to a session id
// POST: a later Load returns pair
func (s *TokenStore) Save(ctx context.Context, pair model.TokenPair) error {
	if s.sessionID == "" {
		return fmt.Errorf("token store has no session id")
	}
	raw, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("encode tokens: %w", err)
	}
	if err := s.backend.Put(ctx, s.key(), raw, pair.TTL(s.now())); err != nil {
		return fmt.Errorf("save tokens: %w", err)
	}
	return nil
}

// Clear removes the persisted pair and clears the session marker.
// PRE: none
// POST: Load returns an empty pair; the marker cookie is expired
func (s *TokenStore) Clear(ctx context.Context) {
	if s.sessionID != "" {
		if err := s.backend.Delete(ctx, s.key()); err != nil {
			slog.Warn("token_store", "event", "clear_failed", "session", s.sessionID, "error", err)
		}
	}
	if s.marker != nil {
		s.marker.ClearMarker()
	}
}
