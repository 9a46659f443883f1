// internal/pipeline/fetch-recommendations/session.go
package fetchrecommendations

import (
	"context"
	"sync"
	"time"

	"nashville-eats/internal/common/logger"
	"nashville-eats/internal/models"

	"github.com/google/uuid"
)

// Session is the idle/loading/success/error state machine for one client.
// Only the most recent request may change state; earlier responses that
// finish later come back marked Stale.
type Session struct {
	handler *Handler
	ttl     time.Duration
	logger  logger.Logger

	mu     sync.Mutex
	record models.QuizSession
	last   *Output
}

func NewSession(id string, handler *Handler, ttl time.Duration, log logger.Logger) *Session {
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now()
	return &Session{
		handler: handler,
		ttl:     ttl,
		logger:  log.WithFields(map[string]interface{}{"sessionId": id}),
		record: models.QuizSession{
			ID:           id,
			State:        StateIdle,
			CreatedAt:    now,
			LastActivity: now,
			ExpiresAt:    now.Add(ttl),
		},
	}
}

func (s *Session) ID() string {
	return s.record.ID
}

func (s *Session) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.State
}

// Snapshot returns a copy of the session record.
func (s *Session) Snapshot() models.QuizSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record
}

// Last returns the output of the latest completed request, if any.
func (s *Session) Last() *Output {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Fetch starts a new request for params. Unconstrained params reset the
// session to idle without calling the provider.
func (s *Session) Fetch(ctx context.Context, params models.QueryParameters) (*Output, error) {
	requestID := uuid.NewString()

	s.mu.Lock()
	s.record.LatestRequestID = requestID
	s.record.UpdateActivity(s.ttl)
	if params.IsUnconstrained() {
		s.record.State = StateIdle
		s.last = nil
		s.mu.Unlock()
		return &Output{
			Data:      []models.Restaurant{},
			State:     StateIdle,
			Source:    SourceNone,
			RequestID: requestID,
		}, nil
	}
	s.record.State = StateLoading
	s.mu.Unlock()

	out, err := s.handler.Execute(ctx, &Input{Params: params, RequestID: requestID})

	s.mu.Lock()
	defer s.mu.Unlock()

	latest := s.record.LatestRequestID == requestID
	if err != nil {
		if latest {
			s.record.State = StateError
		}
		return nil, err
	}

	if !latest {
		out.Stale = true
		s.logger.Debug("discarding superseded response", map[string]interface{}{
			"requestId": requestID,
			"latestId":  s.record.LatestRequestID,
		})
		return out, nil
	}

	s.record.State = out.State
	s.last = out
	return out, nil
}

// SessionStore keeps sessions by client-supplied id and drops expired ones.
type SessionStore struct {
	handler *Handler
	ttl     time.Duration
	logger  logger.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionStore(handler *Handler, ttl time.Duration, log logger.Logger) *SessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SessionStore{
		handler:  handler,
		ttl:      ttl,
		logger:   log,
		sessions: make(map[string]*Session),
	}
}

// Get returns the live session for id, creating one when absent or expired.
func (st *SessionStore) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	if s, ok := st.sessions[id]; ok {
		snap := s.Snapshot()
		if !snap.IsExpired() {
			return s
		}
	}
	s := NewSession(id, st.handler, st.ttl, st.logger)
	st.sessions[s.ID()] = s
	return s
}

// Sweep removes expired sessions and reports how many were dropped.
func (st *SessionStore) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, s := range st.sessions {
		snap := s.Snapshot()
		if snap.IsExpired() {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
