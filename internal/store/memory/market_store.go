// Package memory provides the in-process store implementations. They are the
// default backing for single-instance deployments; the Redis equivalents in
// cache/redis serve multi-instance setups.
package memory

import (
	"context"
	"sync"

	"github.com/spreadup/arbscan/internal/domain"
)

// MarketStore keeps the latest scan snapshot under a read-write lock. The
// snapshot is replaced wholesale so readers always see one cycle's output.
type MarketStore struct {
	mu   sync.RWMutex
	snap domain.Snapshot
	set  bool
}

var _ domain.MarketStore = (*MarketStore)(nil)

// NewMarketStore returns an empty store. Get returns ErrNoData until the
// first Set.
func NewMarketStore() *MarketStore {
	return &MarketStore{}
}

func (s *MarketStore) Set(ctx context.Context, snap domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	s.set = true
	return nil
}

func (s *MarketStore) Get(ctx context.Context) (domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set {
		return domain.Snapshot{}, domain.ErrNoData
	}
	return s.snap, nil
}
