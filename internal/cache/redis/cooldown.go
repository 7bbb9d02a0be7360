package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spreadup/arbscan/internal/domain"
)

// CooldownStore implements domain.CooldownStore on Redis.
//
// Key schema:
//
//	cooldown:{assetKey} - sentinel value, TTL = cooldown window
type CooldownStore struct {
	rdb *redis.Client
}

var _ domain.CooldownStore = (*CooldownStore)(nil)

// NewCooldownStore creates a CooldownStore backed by the given Client.
func NewCooldownStore(c *Client) *CooldownStore {
	return &CooldownStore{rdb: c.Underlying()}
}

func cooldownKey(assetKey string) string { return "cooldown:" + assetKey }

// ShouldAlert claims the cooldown window for the key with a single SET NX EX,
// so concurrent scanner instances cannot both win the same window. The key
// expires on its own; no cleanup pass is needed.
func (s *CooldownStore) ShouldAlert(ctx context.Context, key string, window time.Duration) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, cooldownKey(key), 1, window).Result()
	if err != nil {
		return false, fmt.Errorf("redis: cooldown claim %s: %w", key, err)
	}
	return ok, nil
}
