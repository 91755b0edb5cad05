package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/fatvo/clock"
	"github.com/google/uuid"
)

const (
	// DefaultTTL is how long an idle session is kept.
	DefaultTTL = 24 * time.Hour
	// DefaultSweepInterval is the default pause between janitor runs.
	DefaultSweepInterval = 10 * time.Minute
)

// Store maps session identifiers to Managers. Sessions share nothing but the
// map; the store lock is never held while a session is working.
type Store struct {
	creator ThreadCreator
	opts    []Option
	clock   clock.Clock
	logger  *slog.Logger
	ttl     time.Duration

	mu       sync.RWMutex
	sessions map[string]*Manager
}

// NewStore returns an empty Store. Options are passed on to every Manager it
// creates.
func NewStore(creator ThreadCreator, opts ...Option) *Store {
	o := buildOptions(opts)
	return &Store{
		creator:  creator,
		opts:     opts,
		clock:    o.clock,
		logger:   o.logger,
		ttl:      o.ttl,
		sessions: make(map[string]*Manager),
	}
}

// New creates a session with a random identifier.
func (s *Store) New() *Manager {
	m := NewManager(uuid.NewString(), s.creator, s.opts...)
	s.mu.Lock()
	s.sessions[m.ID()] = m
	s.mu.Unlock()
	s.logger.Debug("session created", "session_id", m.ID())
	return m
}

// Get returns the session with the given identifier.
func (s *Store) Get(id string) (*Manager, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.sessions[id]
	return m, ok
}

// GetOrCreate returns the session with the given identifier, creating it
// when absent. An empty id always creates a new session.
func (s *Store) GetOrCreate(id string) *Manager {
	if id == "" {
		return s.New()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.sessions[id]; ok {
		return m
	}
	m := NewManager(id, s.creator, s.opts...)
	s.sessions[id] = m
	return m
}

// Delete removes a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep evicts sessions idle for longer than the TTL. Sessions with a turn
// in flight are kept. It returns the number evicted.
func (s *Store) Sweep() int {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, m := range s.sessions {
		if m.Busy() || now.Sub(m.LastActive()) <= s.ttl {
			continue
		}
		delete(s.sessions, id)
		evicted++
	}
	if evicted > 0 {
		s.logger.Info("evicted idle sessions", "count", evicted, "remaining", len(s.sessions))
	}
	return evicted
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	s.logger.Info("session janitor started", "ttl", s.ttl, "interval", interval)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("session janitor stopped")
			return nil
		case <-s.clock.After(interval):
			s.Sweep()
		}
	}
}
