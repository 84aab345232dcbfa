package session

import (
	"context"
	"sync"
	"time"

	"ephemera/internal/logger"
	"ephemera/internal/metadata"
	"ephemera/internal/store"
)

const (
	// DefaultIdleTTL is the duration after which an untouched session
	// is evicted by the janitor.
	DefaultIdleTTL = 30 * time.Minute
)

// Manager owns the active sessions, one per owner. A session is
// initialized lazily on first access (load + default-category
// provisioning) and torn down explicitly on sign-out or by the
// janitor once it has been idle long enough.
type Manager struct {
	store    store.Store
	fetcher  metadata.Fetcher
	logger   logger.Logger
	interval time.Duration
	idleTTL  time.Duration

	mu      sync.Mutex
	entries map[string]*entry
	stopCh  chan struct{}
}

// entry defers session loading behind a Once so two concurrent first
// requests for the same owner initialize (and provision defaults)
// exactly once.
type entry struct {
	once sync.Once
	sess *Session
	err  error
}

// NewManager creates a session manager.
func NewManager(st store.Store, fetcher metadata.Fetcher, log logger.Logger, interval, idleTTL time.Duration) *Manager {
	if idleTTL == 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Manager{
		store:    st,
		fetcher:  fetcher,
		logger:   log,
		interval: interval,
		idleTTL:  idleTTL,
		entries:  make(map[string]*entry),
		stopCh:   make(chan struct{}),
	}
}

// Get returns the owner's session, loading it on first access.
func (m *Manager) Get(ctx context.Context, ownerID string) (*Session, error) {
	m.mu.Lock()
	e, ok := m.entries[ownerID]
	if !ok {
		e = &entry{sess: New(ownerID, m.store, m.fetcher, m.logger)}
		m.entries[ownerID] = e
	}
	m.mu.Unlock()

	e.once.Do(func() {
		e.err = e.sess.Load(ctx)
	})

	if e.err != nil {
		// Drop the failed entry so the next request retries the load.
		m.mu.Lock()
		if m.entries[ownerID] == e {
			delete(m.entries, ownerID)
		}
		m.mu.Unlock()
		return nil, e.err
	}
	return e.sess, nil
}

// Teardown drops the owner's session. Outstanding remote calls still
// complete against the store; only the local mirror goes away.
func (m *Manager) Teardown(ownerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[ownerID]; ok {
		delete(m.entries, ownerID)
		m.logger.Info("session torn down", logger.String("owner", ownerID))
	}
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Start begins the periodic eviction of idle sessions.
func (m *Manager) Start(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.Sweep()
			case <-m.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the janitor.
func (m *Manager) Stop() {
	close(m.stopCh)
}

// Sweep evicts sessions that have been idle past the TTL.
func (m *Manager) Sweep() {
	cutoff := time.Now().Add(-m.idleTTL)

	m.mu.Lock()
	defer m.mu.Unlock()
	evicted := 0
	for owner, e := range m.entries {
		if e.sess.LastUsed().Before(cutoff) {
			delete(m.entries, owner)
			evicted++
		}
	}
	if evicted > 0 {
		m.logger.Info("idle sessions evicted",
			logger.Int("evicted", evicted),
			logger.Int("remaining", len(m.entries)))
	}
}
