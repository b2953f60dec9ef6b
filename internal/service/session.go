package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dukerupert/gamestore/internal/cart"
	"github.com/dukerupert/gamestore/internal/promo"
	"github.com/dukerupert/gamestore/internal/telemetry"
	"github.com/google/uuid"
)

//go:generate mockgen -source=session.go -destination=../mocks/session_store.go -package=mocks

// SessionStore keeps shopper sessions in process memory.
// Update and View serialize access per session; different sessions proceed
// in parallel.
type SessionStore interface {
	// Create starts a new empty session and returns its token.
	Create(ctx context.Context) (string, error)

	// Update runs fn with exclusive access to the session.
	// Returns ErrSessionNotFound for unknown or expired tokens.
	Update(ctx context.Context, token string, fn func(*cart.Session) error) error

	// View runs fn with exclusive access but does not refresh the idle timer.
	View(ctx context.Context, token string, fn func(*cart.Session) error) error

	// Len returns the number of live sessions.
	Len() int
}

// SessionStoreConfig configures the in-memory store.
type SessionStoreConfig struct {
	// TTL is how long an untouched session survives.
	TTL time.Duration

	// SweepInterval is how often expired sessions are removed.
	SweepInterval time.Duration

	// SharedLedger, when set, is used by every session so promo caps are
	// process-wide. Nil gives each session its own counters.
	SharedLedger *promo.Ledger

	// Metrics receives sweep counts. Optional.
	Metrics *telemetry.BusinessMetrics
}

// DefaultSessionStoreConfig returns sensible defaults
func DefaultSessionStoreConfig() SessionStoreConfig {
	return SessionStoreConfig{
		TTL:           24 * time.Hour,
		SweepInterval: 5 * time.Minute,
	}
}

type sessionEntry struct {
	mu       sync.Mutex
	session  *cart.Session
	lastSeen time.Time
}

// MemorySessionStore is the SessionStore used by the server.
type MemorySessionStore struct {
	config   SessionStoreConfig
	registry *promo.Registry
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemorySessionStore creates a store and starts its sweeper goroutine.
// Call Close to stop it.
func NewMemorySessionStore(config SessionStoreConfig, registry *promo.Registry, logger *slog.Logger) *MemorySessionStore {
	return newMemorySessionStore(config, registry, logger, time.Now)
}

func newMemorySessionStore(config SessionStoreConfig, registry *promo.Registry, logger *slog.Logger, now func() time.Time) *MemorySessionStore {
	if logger == nil {
		logger = slog.Default()
	}
	if config.TTL <= 0 {
		config.TTL = DefaultSessionStoreConfig().TTL
	}
	if config.SweepInterval <= 0 {
		config.SweepInterval = DefaultSessionStoreConfig().SweepInterval
	}

	s := &MemorySessionStore{
		config:   config,
		registry: registry,
		logger:   logger,
		now:      now,
		sessions: make(map[string]*sessionEntry),
		stop:     make(chan struct{}),
	}

	go s.sweepLoop()

	return s
}

// GenerateSessionID returns a new random session token.
func GenerateSessionID() string {
	return uuid.NewString()
}

// Create starts a new empty session.
func (s *MemorySessionStore) Create(ctx context.Context) (string, error) {
	token := GenerateSessionID()
	entry := &sessionEntry{
		session:  cart.NewSession(s.registry, s.config.SharedLedger),
		lastSeen: s.now(),
	}

	s.mu.Lock()
	s.sessions[token] = entry
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "session created", "session", shortToken(token))
	return token, nil
}

// Update runs fn under the session's lock and refreshes its idle timer.
func (s *MemorySessionStore) Update(ctx context.Context, token string, fn func(*cart.Session) error) error {
	return s.with(ctx, token, true, fn)
}

// View runs fn under the session's lock.
func (s *MemorySessionStore) View(ctx context.Context, token string, fn func(*cart.Session) error) error {
	return s.with(ctx, token, false, fn)
}

func (s *MemorySessionStore) with(ctx context.Context, token string, touch bool, fn func(*cart.Session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	entry, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if s.now().Sub(entry.lastSeen) > s.config.TTL {
		return ErrSessionNotFound
	}
	if touch {
		entry.lastSeen = s.now()
	}

	return fn(entry.session)
}

// Len returns the number of sessions, including expired ones not yet swept.
func (s *MemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were removed.
func (s *MemorySessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for token, entry := range s.sessions {
		entry.mu.Lock()
		expired := now.Sub(entry.lastSeen) > s.config.TTL
		entry.mu.Unlock()
		if expired {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// Close stops the sweeper goroutine.
func (s *MemorySessionStore) Close() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}

func (s *MemorySessionStore) sweepLoop() {
	ticker := time.NewTicker(s.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.config.Metrics.RecordSessionsExpired(n)
				s.logger.Info("expired sessions swept", "removed", n, "remaining", s.Len())
			}
		case <-s.stop:
			return
		}
	}
}

// shortToken keeps log lines from carrying full session credentials.
func shortToken(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8]
}
