// Package session manages the persisted admin session: one bearer token,
// written on login, cleared on logout or when the backend rejects it. The
// token survives process restarts via a small state file, the Go stand-in
// for the browser build's local storage key.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const stateFileMode = 0o600

// Store holds the admin bearer token. Reads vastly outnumber writes; writes
// happen only on login, logout and 401 handling.
type Store struct {
	path string

	mu    sync.RWMutex
	state state
}

type state struct {
	Token     string    `json:"token,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	SavedAt   time.Time `json:"saved_at,omitempty"`
}

// Open loads the session state from path, creating an empty store when the
// file does not exist. A stored token that is already expired (by its own
// JWT exp claim or the recorded expiry) is dropped on load.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session state: %w", err)
	}

	if err := json.Unmarshal(data, &s.state); err != nil {
		// A corrupt state file is not fatal, the user just logs in again.
		s.state = state{}
		return s, nil
	}

	if s.state.Token != "" && tokenExpired(s.state.Token, s.state.ExpiresAt) {
		s.state = state{}
		if err := s.persist(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// CurrentToken returns the stored bearer token, if a live one exists.
func (s *Store) CurrentToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Token == "" {
		return "", false
	}
	if tokenExpired(s.state.Token, s.state.ExpiresAt) {
		return "", false
	}
	return s.state.Token, true
}

// Login stores a freshly issued token. expiresIn is the server-reported
// lifetime in seconds; zero means rely solely on the token's exp claim.
func (s *Store) Login(token string, expiresIn int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.state = state{Token: token, SavedAt: now}
	if expiresIn > 0 {
		s.state.ExpiresAt = now.Add(time.Duration(expiresIn) * time.Second)
	}
	return s.persist()
}

// Logout removes the stored token.
func (s *Store) Logout() error {
	return s.Clear()
}

// Clear drops the stored token. Called on explicit logout and whenever the
// backend answers 401, so a dead token is never retried.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Token == "" {
		return nil
	}
	s.state = state{}
	return s.persist()
}

func (s *Store) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}
	if err := os.WriteFile(s.path, data, stateFileMode); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}
	return nil
}

// tokenExpired checks the JWT exp claim without verifying the signature; the
// client does not hold the signing secret. The recorded expiry acts as a
// fallback for opaque tokens.
func tokenExpired(token string, recordedExpiry time.Time) bool {
	if !recordedExpiry.IsZero() && time.Now().After(recordedExpiry) {
		return true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Now().After(exp.Time)
}
