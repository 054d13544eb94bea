package session

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/superdense/internal/logging"
	"github.com/aretw0/superdense/pkg/adapters/system"
	"github.com/aretw0/superdense/pkg/domain"
	"github.com/aretw0/superdense/pkg/ports"
	"github.com/aretw0/superdense/pkg/runner"
	"github.com/google/uuid"
)

// Session is one user's runner.
type Session struct {
	ID        string
	Runner    *runner.Runner
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

// LastSeen returns the last time the session was accessed through the Manager.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(at time.Time) {
	s.mu.Lock()
	s.lastSeen = at
	s.mu.Unlock()
}

// ObserverFactory builds a per-session observer, e.g. a Redis publisher bound to the session ID.
type ObserverFactory func(sessionID string) runner.Observer

// Manager orchestrates session access, ensuring safe concurrent operations.
type Manager struct {
	engine     ports.StatelessEngine
	runnerOpts []runner.Option
	observers  []ObserverFactory
	clock      ports.Clock
	newID      func() string
	logger     *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// Option configures the Manager.
type Option func(*Manager)

// WithRunnerOptions applies opts to every runner the Manager creates.
func WithRunnerOptions(opts ...runner.Option) Option {
	return func(m *Manager) {
		m.runnerOpts = append(m.runnerOpts, opts...)
	}
}

// WithSessionObserver attaches an observer built for each new session.
func WithSessionObserver(factory ObserverFactory) Option {
	return func(m *Manager) {
		if factory != nil {
			m.observers = append(m.observers, factory)
		}
	}
}

// WithClock sets the time source used for TTL bookkeeping.
func WithClock(clock ports.Clock) Option {
	return func(m *Manager) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// WithIDGenerator overrides the UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager whose runners share engine.
func NewManager(engine ports.StatelessEngine, opts ...Option) *Manager {
	m := &Manager{
		engine:   engine,
		clock:    system.Clock{},
		newID:    uuid.NewString,
		logger:   logging.NewNop(),
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a new idle session.
func (m *Manager) Create(ctx context.Context) (*Session, error) {
	id := m.newID()
	now := m.clock.Now()

	opts := append([]runner.Option{runner.WithLogger(m.logger.With("session_id", id))}, m.runnerOpts...)
	for _, factory := range m.observers {
		opts = append(opts, runner.WithObserver(factory(id)))
	}

	s := &Session{
		ID:        id,
		Runner:    runner.New(m.engine, opts...),
		CreatedAt: now,
		lastSeen:  now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[id]; exists {
		return nil, fmt.Errorf("session %q already exists", id)
	}
	m.sessions[id] = s
	m.logger.Info("session created", "session_id", id)
	return s, nil
}

// Get returns the session and refreshes its TTL.
func (m *Manager) Get(ctx context.Context, sessionID string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("get %q: %w", sessionID, domain.ErrSessionNotFound)
	}
	s.touch(m.clock.Now())
	return s, nil
}

// Delete removes the session. A run in progress still completes in the background.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[sessionID]; !ok {
		return fmt.Errorf("delete %q: %w", sessionID, domain.ErrSessionNotFound)
	}
	delete(m.sessions, sessionID)
	m.logger.Info("session deleted", "session_id", sessionID)
	return nil
}

// List returns the IDs of all sessions, sorted.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Prune removes idle sessions not accessed within ttl and returns how many were removed.
// Sessions with a run in progress are kept.
func (m *Manager) Prune(ctx context.Context, ttl time.Duration) int {
	cutoff := m.clock.Now().Add(-ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.Runner.Active() || s.LastSeen().After(cutoff) {
			continue
		}
		delete(m.sessions, id)
		removed++
	}
	if removed > 0 {
		m.logger.Info("sessions pruned", "count", removed, "ttl", ttl)
	}
	return removed
}

// RunJanitor prunes every interval until ctx is done.
func (m *Manager) RunJanitor(ctx context.Context, ttl, interval time.Duration) {
	if ttl <= 0 || interval <= 0 {
		return
	}
	t := m.clock.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C():
			m.Prune(ctx, ttl)
		}
	}
}
