package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/atriumhq/atrium/internal/logging"
	"github.com/atriumhq/atrium/pkg/domain"
	"github.com/atriumhq/atrium/pkg/ports"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.SessionStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	onEnd  []func() // invalidation hooks fired when a session ends
	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// OnEnd registers a hook fired after a session is deleted. The derived-query
// cache registers its InvalidateAll here.
func OnEnd(fn func()) Option {
	return func(m *Manager) {
		m.onEnd = append(m.onEnd, fn)
	}
}

// NewManager creates a new session Manager with the given persistence store.
func NewManager(store ports.SessionStore, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		locks:  make(map[string]*lockEntry),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after
// unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it
// reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return // Should not happen if paired correctly
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// withLock executes a function while holding the lock for the session.
func (m *Manager) withLock(sessionID string, fn func() error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()
	return fn()
}

// SignIn creates or replaces the session state for an actor.
func (m *Manager) SignIn(ctx context.Context, sessionID, actorID string) (*domain.SessionState, error) {
	if actorID == "" {
		return nil, domain.ErrNoActor
	}

	state := domain.NewSessionState(sessionID, actorID)
	err := m.withLock(sessionID, func() error {
		if err := m.store.Save(ctx, sessionID, state); err != nil {
			return fmt.Errorf("failed to initialize session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.logger.Debug("session started", "session_id", sessionID, "actor_id", actorID)
	return state, nil
}

// Load retrieves an existing session from the store.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.SessionState, error) {
	var state *domain.SessionState
	err := m.withLock(sessionID, func() error {
		var err error
		state, err = m.store.Load(ctx, sessionID)
		return err
	})
	return state, err
}

// CommitSearch records the committed search query on the session. This is
// the shared state the debounced commit action updates.
func (m *Manager) CommitSearch(ctx context.Context, sessionID, query string) error {
	return m.update(ctx, sessionID, func(state *domain.SessionState) {
		state.CommittedQuery = query
	})
}

// CommittedSearch returns the last committed query, or "" for a fresh or
// absent session.
func (m *Manager) CommittedSearch(ctx context.Context, sessionID string) string {
	state, err := m.Load(ctx, sessionID)
	if err != nil {
		return ""
	}
	return state.CommittedQuery
}

// End deletes the session and fires the end-of-session hooks (cache
// invalidation, primarily). Ending an absent session still fires the hooks.
func (m *Manager) End(ctx context.Context, sessionID string) error {
	err := m.withLock(sessionID, func() error {
		return m.store.Delete(ctx, sessionID)
	})
	for _, fn := range m.onEnd {
		fn()
	}
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	m.logger.Debug("session ended", "session_id", sessionID)
	return nil
}

// ActorProvider returns the injected current-actor provider for the given
// session, suitable for cache-key construction and facade calls.
func (m *Manager) ActorProvider(sessionID string) domain.ActorProvider {
	return domain.ActorFunc(func(ctx context.Context) (string, error) {
		state, err := m.Load(ctx, sessionID)
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				return "", domain.ErrNoActor
			}
			return "", err
		}
		if state.ActorID == "" {
			return "", domain.ErrNoActor
		}
		return state.ActorID, nil
	})
}

// update loads, mutates and saves under the session lock.
func (m *Manager) update(ctx context.Context, sessionID string, mutate func(*domain.SessionState)) error {
	return m.withLock(sessionID, func() error {
		state, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		mutate(state)
		state.UpdatedAt = time.Now().UTC()
		return m.store.Save(ctx, sessionID, state)
	})
}
