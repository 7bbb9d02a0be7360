package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/spreadup/arbscan/internal/domain"
)

// ProfileStore implements domain.ProfileStore on Redis.
//
// Key schema:
//
//	profile:{chatID} - JSON-serialized FilterProfile
//	subscribers      - set of subscribed chat IDs
type ProfileStore struct {
	rdb       *redis.Client
	exchanges []string
}

var _ domain.ProfileStore = (*ProfileStore)(nil)

// NewProfileStore creates a ProfileStore backed by the given Client.
// exchanges seeds the default profile handed out on first access.
func NewProfileStore(c *Client, exchanges []string) *ProfileStore {
	return &ProfileStore{rdb: c.Underlying(), exchanges: exchanges}
}

func profileKey(chatID string) string { return "profile:" + chatID }

const subscribersKey = "subscribers"

// Get returns the chat's profile, materializing and persisting the default
// when none exists yet.
func (s *ProfileStore) Get(ctx context.Context, chatID string) (domain.FilterProfile, error) {
	data, err := s.rdb.Get(ctx, profileKey(chatID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			p := domain.DefaultProfile(s.exchanges)
			if err := s.Put(ctx, chatID, p); err != nil {
				return domain.FilterProfile{}, err
			}
			return p, nil
		}
		return domain.FilterProfile{}, fmt.Errorf("redis: get profile %s: %w", chatID, err)
	}

	var p domain.FilterProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.FilterProfile{}, fmt.Errorf("redis: unmarshal profile %s: %w", chatID, err)
	}
	return p, nil
}

// Put stores the chat's profile. Profiles have no TTL; a subscriber's
// preferences survive restarts.
func (s *ProfileStore) Put(ctx context.Context, chatID string, profile domain.FilterProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("redis: marshal profile %s: %w", chatID, err)
	}
	if err := s.rdb.Set(ctx, profileKey(chatID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis: put profile %s: %w", chatID, err)
	}
	return nil
}

func (s *ProfileStore) Subscribe(ctx context.Context, chatID string) error {
	if err := s.rdb.SAdd(ctx, subscribersKey, chatID).Err(); err != nil {
		return fmt.Errorf("redis: subscribe %s: %w", chatID, err)
	}
	return nil
}

func (s *ProfileStore) Unsubscribe(ctx context.Context, chatID string) error {
	if err := s.rdb.SRem(ctx, subscribersKey, chatID).Err(); err != nil {
		return fmt.Errorf("redis: unsubscribe %s: %w", chatID, err)
	}
	return nil
}

// Subscribers returns the subscribed chat IDs sorted, matching the in-memory
// store's deterministic ordering.
func (s *ProfileStore) Subscribers(ctx context.Context) ([]string, error) {
	ids, err := s.rdb.SMembers(ctx, subscribersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: list subscribers: %w", err)
	}
	// SMEMBERS order is unspecified.
	sort.Strings(ids)
	return ids, nil
}

func (s *ProfileStore) Count(ctx context.Context) (int, error) {
	n, err := s.rdb.SCard(ctx, subscribersKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis: count subscribers: %w", err)
	}
	return int(n), nil
}
