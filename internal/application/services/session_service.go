package services

import (
	"context"
	"sync"

	"github.com/moritahq/vet-night-map/backend/internal/domain/providers"
	"github.com/moritahq/vet-night-map/backend/internal/infrastructure/observability"
)

// SessionService enforces one in-flight search per session. Starting a
// new search bumps the session's generation, cancels the previous
// search's context and resets the presenter so stale artifacts never
// mix with fresh results.
type SessionService struct {
	presenter providers.ResultPresenter

	mu       sync.Mutex
	sessions map[string]*searchSession
}

type searchSession struct {
	generation uint64
	cancel     context.CancelFunc
}

// NewSessionService creates a new session service
func NewSessionService(presenter providers.ResultPresenter) *SessionService {
	return &SessionService{
		presenter: presenter,
		sessions:  make(map[string]*searchSession),
	}
}

// Begin starts a new search generation for the session. Any in-flight
// search for the same session is cancelled. The returned context is
// derived from parent and must be used for the whole search pipeline.
func (s *SessionService) Begin(parent context.Context, sessionID string) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(parent)

	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		session = &searchSession{}
		s.sessions[sessionID] = session
	}
	if session.cancel != nil {
		session.cancel()
	}
	session.generation++
	session.cancel = cancel
	generation := session.generation
	s.mu.Unlock()

	if s.presenter != nil {
		if err := s.presenter.Reset(ctx); err != nil {
			observability.LoggerFromContext(ctx).Warn().
				Err(err).
				Str("session_id", sessionID).
				Msg("presenter reset failed")
		}
	}

	return ctx, generation
}

// IsCurrent reports whether the generation is still the session's
// latest. Superseded generations must discard their results.
func (s *SessionService) IsCurrent(sessionID string, generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	return ok && session.generation == generation
}

// End releases the session's cancel handle if the generation is still
// current. Superseded generations are a no-op.
func (s *SessionService) End(sessionID string, generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok || session.generation != generation {
		return
	}
	if session.cancel != nil {
		session.cancel()
		session.cancel = nil
	}
}
