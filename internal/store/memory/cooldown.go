package memory

import (
	"context"
	"sync"
	"time"

	"github.com/spreadup/arbscan/internal/domain"
)

// CooldownStore tracks the last alert time per asset key.
type CooldownStore struct {
	mu   sync.Mutex
	last map[string]time.Time
	now  func() time.Time
}

var _ domain.CooldownStore = (*CooldownStore)(nil)

// NewCooldownStore returns an empty cooldown tracker.
func NewCooldownStore() *CooldownStore {
	return &CooldownStore{
		last: map[string]time.Time{},
		now:  time.Now,
	}
}

// ShouldAlert reports whether the key is out of cooldown and, if so, marks it
// as alerted now. The check and the mark happen under one lock so concurrent
// callers cannot both win the same window.
func (s *CooldownStore) ShouldAlert(ctx context.Context, key string, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if at, ok := s.last[key]; ok && now.Sub(at) < window {
		return false, nil
	}
	s.last[key] = now
	return true, nil
}
