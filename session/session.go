// Package session holds per-user conversation state: the message history and
// the lazily created remote thread handle.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/fatvo"
	"github.com/fwojciec/fatvo/clock"
)

// ThreadCreator creates a remote conversation thread. The gateway satisfies
// it.
type ThreadCreator interface {
	CreateThread(ctx context.Context) (string, error)
}

// Option configures a Manager or a Store.
type Option func(*options)

type options struct {
	clock  clock.Clock
	logger *slog.Logger
	ttl    time.Duration
}

func buildOptions(opts []Option) options {
	o := options{
		clock:  clock.Real(),
		logger: slog.Default(),
		ttl:    DefaultTTL,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock sets the time source used for timestamps and expiry.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithTTL sets how long an idle session survives in a Store.
func WithTTL(d time.Duration) Option {
	return func(o *options) {
		o.ttl = d
	}
}

// Manager owns one session. All methods are safe for concurrent use.
//
// The state machine is Uninitialized → Active → (Reset) → Uninitialized. A
// thread is created on the first GetOrCreateThread call after construction
// or reset, never eagerly.
type Manager struct {
	creator ThreadCreator
	clock   clock.Clock
	logger  *slog.Logger

	mu         sync.Mutex
	session    fatvo.Session
	generation uint64

	create sync.Mutex // serialises thread creation
	turn   sync.Mutex
	busy   atomic.Bool
}

// NewManager returns a Manager for a fresh, uninitialized session.
func NewManager(id string, creator ThreadCreator, opts ...Option) *Manager {
	o := buildOptions(opts)
	now := o.clock.Now()
	return &Manager{
		creator: creator,
		clock:   o.clock,
		logger:  o.logger.With("session_id", id),
		session: fatvo.Session{
			ID:        id,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// ID returns the session identifier.
func (m *Manager) ID() string {
	return m.session.ID
}

// GetOrCreateThread returns the session's thread handle, creating it on
// first use. On failure the session stays uninitialized and the error wraps
// fatvo.ErrThreadCreation together with the cause.
func (m *Manager) GetOrCreateThread(ctx context.Context) (string, error) {
	m.create.Lock()
	defer m.create.Unlock()

	m.mu.Lock()
	id, gen := m.session.ThreadID, m.generation
	m.mu.Unlock()
	if id != "" {
		return id, nil
	}

	id, err := m.creator.CreateThread(ctx)
	if err != nil {
		m.logger.Warn("thread creation failed", "error", err)
		return "", fmt.Errorf("%w: %w", fatvo.ErrThreadCreation, err)
	}
	if id == "" {
		return "", fmt.Errorf("%w: empty thread id", fatvo.ErrThreadCreation)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.generation == gen {
		m.session.ThreadID = id
		m.session.UpdatedAt = m.clock.Now()
	}
	m.logger.Info("thread created", "thread_id", id)
	return id, nil
}

// Append records a message and returns it as stored.
func (m *Manager) Append(role fatvo.Role, content, alternate string, status fatvo.ConversionStatus) fatvo.Message {
	return m.AppendMessage(fatvo.Message{
		Role:      role,
		Content:   content,
		Alternate: alternate,
		Status:    status,
	})
}

// AppendMessage records msg, stamping its timestamp when unset.
func (m *Manager) AppendMessage(msg fatvo.Message) fatvo.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appendLocked(msg)
}

// AppendTurn records msgs only if the session has not been reset since
// generation was observed. It reports whether the messages were recorded.
func (m *Manager) AppendTurn(generation uint64, msgs ...fatvo.Message) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.generation != generation {
		m.logger.Debug("discarding messages from before reset", "count", len(msgs))
		return false
	}
	for _, msg := range msgs {
		m.appendLocked(msg)
	}
	return true
}

func (m *Manager) appendLocked(msg fatvo.Message) fatvo.Message {
	now := m.clock.Now()
	if msg.Timestamp.IsZero() {
		msg.Timestamp = now
	}
	m.session.Messages = append(m.session.Messages, msg)
	m.session.UpdatedAt = now
	return msg
}

// Reset discards the history and the thread handle together. A new thread
// is created lazily by the next GetOrCreateThread.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.Messages = nil
	m.session.ThreadID = ""
	m.session.UpdatedAt = m.clock.Now()
	m.generation++
	m.logger.Info("session reset", "generation", m.generation)
}

// Generation counts resets. Callers capture it before a long operation and
// pass it to AppendTurn.
func (m *Manager) Generation() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generation
}

// Acquire takes the session's turn lock. It fails with fatvo.ErrBusy while
// another turn holds it. The returned release func must be called exactly
// once.
func (m *Manager) Acquire() (release func(), err error) {
	if !m.turn.TryLock() {
		return nil, fatvo.ErrBusy
	}
	m.busy.Store(true)
	var once sync.Once
	return func() {
		once.Do(func() {
			m.busy.Store(false)
			m.turn.Unlock()
		})
	}, nil
}

// Busy reports whether a turn is in flight.
func (m *Manager) Busy() bool {
	return m.busy.Load()
}

// Snapshot returns a copy of the session safe to read without locking.
func (m *Manager) Snapshot() fatvo.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.session
	s.Messages = append([]fatvo.Message(nil), m.session.Messages...)
	return s
}

// State returns the lifecycle state.
func (m *Manager) State() fatvo.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.State()
}

// ThreadID returns the current thread handle, empty when uninitialized.
func (m *Manager) ThreadID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.ThreadID
}

// Len returns the number of messages in the history.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.session.Messages)
}

// LastActive returns when the session last changed.
func (m *Manager) LastActive() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.UpdatedAt
}
