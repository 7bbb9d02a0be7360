// Package notify delivers alert notifications over external channels.
// Telegram is the primary per-chat channel; a Discord webhook can mirror
// every alert into an ops channel.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spreadup/arbscan/internal/domain"
)

// Sender is one delivery channel. chatID addresses the recipient on channels
// that support it; broadcast-style channels may ignore it.
type Sender interface {
	Send(ctx context.Context, chatID, title, message string) error
	// Name returns a human-readable identifier for the sender (e.g. "telegram").
	Name() string
}

// Notifier fans one notification out to every registered sender. It is the
// delivery seam behind the alerting policy.
type Notifier struct {
	senders []Sender
	logger  *slog.Logger
}

var _ domain.Dispatcher = (*Notifier)(nil)

// NewNotifier creates a Notifier delivering to the given senders. With no
// senders configured, Dispatch is a no-op; the scanner still runs and the API
// still serves opportunities.
func NewNotifier(senders []Sender, logger *slog.Logger) *Notifier {
	return &Notifier{
		senders: senders,
		logger:  logger.With(slog.String("component", "notifier")),
	}
}

// Dispatch delivers one notification to all senders. Errors from individual
// senders are collected and returned combined; a single sender failure does
// not prevent delivery on the remaining channels.
func (n *Notifier) Dispatch(ctx context.Context, note domain.Notification) error {
	if len(n.senders) == 0 {
		return nil
	}

	var errs []string
	for _, s := range n.senders {
		if err := s.Send(ctx, note.ChatID, note.Title, note.Body); err != nil {
			n.logger.ErrorContext(ctx, "sender failed",
				slog.String("sender", s.Name()),
				slog.String("notification_id", note.ID),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Sprintf("%s: %v", s.Name(), err))
		} else {
			n.logger.DebugContext(ctx, "notification sent",
				slog.String("sender", s.Name()),
				slog.String("chat_id", note.ChatID),
				slog.String("title", note.Title),
			)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("notify: %d sender(s) failed: %s", len(errs), strings.Join(errs, "; "))
	}
	return nil
}
