package notifications

import (
	"context"
	"log/slog"
	"sync"

	"github.com/deskops/notifykit/pkg/logger"
)

const defaultStreamBuffer = 16

// Hub fans freshly accepted notifications out to live subscribers, keyed by
// recipient. A recipient may hold several concurrent subscriptions (multiple
// tabs or devices); each gets its own buffered channel. Delivery is best
// effort: a subscriber that has fallen behind has the notification dropped
// rather than blocking the publisher, since the persisted feed remains the
// source of truth.
type Hub struct {
	mu      sync.RWMutex
	streams map[string]map[*subscription]struct{}
	buffer  int
	closed  bool
	logger  *slog.Logger
}

type subscription struct {
	recipientID string
	ch          chan Notification
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithHubBuffer sets the per-subscription channel buffer size.
func WithHubBuffer(size int) HubOption {
	return func(h *Hub) {
		if size > 0 {
			h.buffer = size
		}
	}
}

// WithHubLogger sets the logger for the Hub.
func WithHubLogger(log *slog.Logger) HubOption {
	return func(h *Hub) {
		h.logger = log
	}
}

// NewHub creates a new live notification hub.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		streams: make(map[string]map[*subscription]struct{}),
		buffer:  defaultStreamBuffer,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Subscribe registers a live stream for the recipient. The returned channel
// is closed and the subscription removed when ctx is cancelled or the hub is
// closed, whichever comes first.
func (h *Hub) Subscribe(ctx context.Context, recipientID string) (<-chan Notification, error) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, ErrHubClosed
	}

	sub := &subscription{
		recipientID: recipientID,
		ch:          make(chan Notification, h.buffer),
	}
	if h.streams[recipientID] == nil {
		h.streams[recipientID] = make(map[*subscription]struct{})
	}
	h.streams[recipientID][sub] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.unsubscribe(sub)
	}()

	return sub.ch, nil
}

// Publish delivers a notification to every live stream of its recipient.
// Streams with a full buffer are skipped.
func (h *Hub) Publish(ctx context.Context, notif Notification) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return ErrHubClosed
	}

	for sub := range h.streams[notif.RecipientID] {
		select {
		case sub.ch <- notif:
		default:
			h.logger.LogAttrs(ctx, slog.LevelWarn, "dropping notification for slow subscriber",
				logger.NotificationID(notif.ID),
				logger.RecipientID(notif.RecipientID),
			)
		}
	}
	return nil
}

// Subscribers returns the number of live streams for a recipient.
func (h *Hub) Subscribers(recipientID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.streams[recipientID])
}

// Close shuts the hub down and closes every subscriber channel. Subsequent
// Publish and Subscribe calls return ErrHubClosed.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for _, subs := range h.streams {
		for sub := range subs {
			close(sub.ch)
		}
	}
	h.streams = make(map[string]map[*subscription]struct{})
}

func (h *Hub) unsubscribe(sub *subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}

	subs := h.streams[sub.recipientID]
	if _, ok := subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.streams, sub.recipientID)
	}
	close(sub.ch)
}
