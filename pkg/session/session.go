// Package session tracks per-user conversation state: identity, bounded
// dialogue history, and the page the user is on. Stores are pluggable so
// a single-process deployment can stay in memory while a multi-instance
// deployment shares sessions through Redis.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/acetransit/voicekit/pkg/nlu"
)

// HistoryLimit bounds the turns kept per session. Older turns are
// dropped; the remote resolver only ever sees this window.
const HistoryLimit = 6

// DefaultTTL is how long an idle session survives before eviction.
const DefaultTTL = 30 * time.Minute

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session: not found")

// Session is one user's conversation state.
type Session struct {
	ID          string     `json:"id"`
	History     []nlu.Turn `json:"history,omitempty"`
	CurrentPage string     `json:"currentPage"`
	CurrentStep int        `json:"currentStep"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewSession creates a session with a fresh id on the home page.
func NewSession() *Session {
	return &Session{
		ID:          uuid.NewString(),
		CurrentPage: "/",
		UpdatedAt:   time.Now(),
	}
}

// AddTurn appends an exchange, trimming history to HistoryLimit.
func (s *Session) AddTurn(role, text string) {
	s.History = append(s.History, nlu.Turn{Role: role, Text: text})
	if n := len(s.History); n > HistoryLimit {
		s.History = s.History[n-HistoryLimit:]
	}
	s.UpdatedAt = time.Now()
}

// Store persists sessions. Implementations must be safe for concurrent
// use. Get returns ErrNotFound for unknown or expired ids.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
