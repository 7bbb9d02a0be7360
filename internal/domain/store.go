package domain

import (
	"context"
	"time"
)

// MarketStore holds the latest scan snapshot. Set replaces the whole snapshot
// atomically; Get before the first completed scan returns ErrNoData.
type MarketStore interface {
	Set(ctx context.Context, snap Snapshot) error
	Get(ctx context.Context) (Snapshot, error)
}

// ProfileStore keeps per-chat filter profiles and subscription flags. Get
// creates the default profile on first access so every chat always has one.
type ProfileStore interface {
	Get(ctx context.Context, chatID string) (FilterProfile, error)
	Put(ctx context.Context, chatID string, profile FilterProfile) error
	Subscribe(ctx context.Context, chatID string) error
	Unsubscribe(ctx context.Context, chatID string) error
	Subscribers(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
}

// CooldownStore rate-limits alerts per asset key. ShouldAlert atomically
// checks the key and, when it is not in cooldown, marks it as alerted for the
// given window. The cooldown is global across subscribers.
type CooldownStore interface {
	ShouldAlert(ctx context.Context, key string, window time.Duration) (bool, error)
}

// Dispatcher delivers a notification payload to its recipient. A failed
// delivery is the dispatcher's problem; callers continue with the remaining
// recipients.
type Dispatcher interface {
	Dispatch(ctx context.Context, n Notification) error
}

// Notification is a fully-formed alert handed to the delivery channel.
type Notification struct {
	ID     string
	ChatID string
	Kind   OpportunityKind
	Title  string
	Body   string
}

// AssetKey builds the cooldown key for an alert. The kind prefix keeps the
// spot-futures and funding alert streams on independent cooldowns for the
// same base asset.
func AssetKey(kind OpportunityKind, baseAsset string) string {
	return string(kind) + ":" + baseAsset
}
