package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/spreadup/arbscan/internal/domain"
)

// ProfileStore keeps filter profiles and subscription flags in process
// memory. Profiles materialize lazily: the first Get for an unknown chat
// returns (and remembers) the default profile.
type ProfileStore struct {
	mu         sync.RWMutex
	profiles   map[string]domain.FilterProfile
	subscribed map[string]bool
	exchanges  []string
}

var _ domain.ProfileStore = (*ProfileStore)(nil)

// NewProfileStore returns an empty store. exchanges seeds the default
// profile's enabled-venue set.
func NewProfileStore(exchanges []string) *ProfileStore {
	return &ProfileStore{
		profiles:   map[string]domain.FilterProfile{},
		subscribed: map[string]bool{},
		exchanges:  exchanges,
	}
}

func (s *ProfileStore) Get(ctx context.Context, chatID string) (domain.FilterProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[chatID]
	if !ok {
		p = domain.DefaultProfile(s.exchanges)
		s.profiles[chatID] = p
	}
	return p, nil
}

func (s *ProfileStore) Put(ctx context.Context, chatID string, profile domain.FilterProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[chatID] = profile
	return nil
}

func (s *ProfileStore) Subscribe(ctx context.Context, chatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribed[chatID] = true
	if _, ok := s.profiles[chatID]; !ok {
		s.profiles[chatID] = domain.DefaultProfile(s.exchanges)
	}
	return nil
}

func (s *ProfileStore) Unsubscribe(ctx context.Context, chatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscribed, chatID)
	return nil
}

// Subscribers returns the subscribed chat IDs in sorted order so alert
// evaluation is deterministic.
func (s *ProfileStore) Subscribers(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.subscribed))
	for id := range s.subscribed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *ProfileStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribed), nil
}
