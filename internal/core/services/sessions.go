package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ewilliams-labs/trackscope/internal/core/domain"
	"github.com/ewilliams-labs/trackscope/internal/core/ports"
)

// Sessions keeps one Explorer per client session. Every explorer shares the
// same read-only dataset.
type Sessions struct {
	dataset   *domain.Dataset
	plot      domain.Plot
	observers []ports.ViewObserver
	logger    *slog.Logger

	mu       sync.RWMutex
	explorer map[string]*Explorer
	limits   SessionLimits
}

// SessionLimits bounds the registry. Zero values disable a limit.
type SessionLimits struct {
	// MaxSessions caps live sessions; creating one more evicts the least
	// recently active.
	MaxSessions int
	// IdleTTL evicts sessions not read or changed for this long.
	IdleTTL time.Duration
}

// NewSessions constructs a session registry over dataset.
func NewSessions(dataset *domain.Dataset, plot domain.Plot, logger *slog.Logger, observers ...ports.ViewObserver) *Sessions {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sessions{
		dataset:   dataset,
		plot:      plot,
		observers: observers,
		logger:    logger,
		explorer:  make(map[string]*Explorer),
	}
}

// Dataset returns the shared dataset.
func (s *Sessions) Dataset() *domain.Dataset { return s.dataset }

// SetLimits replaces the registry limits. They apply from the next Create
// or EvictIdle.
func (s *Sessions) SetLimits(l SessionLimits) {
	s.mu.Lock()
	s.limits = l
	s.mu.Unlock()
}

// Create starts a new session in the initial view state.
func (s *Sessions) Create() (*Explorer, error) {
	id := uuid.NewString()
	e, err := NewExplorer(id, s.dataset, s.plot, s.logger, s.observers...)
	if err != nil {
		return nil, fmt.Errorf("service: create session: %w", err)
	}
	s.mu.Lock()
	s.evictIdleLocked(time.Now())
	if limit := s.limits.MaxSessions; limit > 0 {
		for len(s.explorer) >= limit {
			s.evictOldestLocked()
		}
	}
	s.explorer[id] = e
	s.mu.Unlock()
	s.logger.Info("session created", "session", id)
	return e, nil
}

// EvictIdle removes sessions idle for longer than the configured TTL as of
// now and returns how many were removed.
func (s *Sessions) EvictIdle(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictIdleLocked(now)
}

// RunJanitor evicts idle sessions every interval until ctx is done.
func (s *Sessions) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.EvictIdle(now); n > 0 {
				s.logger.Info("idle sessions evicted", "count", n, "remaining", s.Len())
			}
		}
	}
}

func (s *Sessions) evictIdleLocked(now time.Time) int {
	ttl := s.limits.IdleTTL
	if ttl <= 0 {
		return 0
	}
	n := 0
	for id, e := range s.explorer {
		if now.Sub(e.LastActive()) > ttl {
			delete(s.explorer, id)
			n++
		}
	}
	return n
}

func (s *Sessions) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, e := range s.explorer {
		if t := e.LastActive(); oldestID == "" || t.Before(oldest) {
			oldestID, oldest = id, t
		}
	}
	if oldestID == "" {
		return
	}
	delete(s.explorer, oldestID)
	s.logger.Info("session evicted", "session", oldestID, "reason", "max sessions")
}

// Get returns the explorer of session id.
func (s *Sessions) Get(id string) (*Explorer, error) {
	if id == "" {
		return nil, fmt.Errorf("service: session id cannot be empty: %w", domain.ErrNotFound)
	}
	s.mu.RLock()
	e, ok := s.explorer[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("service: session %s: %w", id, domain.ErrNotFound)
	}
	return e, nil
}

// Delete ends session id.
func (s *Sessions) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.explorer[id]; !ok {
		return fmt.Errorf("service: session %s: %w", id, domain.ErrNotFound)
	}
	delete(s.explorer, id)
	s.logger.Info("session deleted", "session", id)
	return nil
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.explorer)
}
