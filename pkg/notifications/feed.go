package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/deskops/notifykit/pkg/logger"
)

const (
	// DefaultListLimit applies when a list request names no limit.
	DefaultListLimit = 50

	// MaxListLimit caps page sizes regardless of what the caller asks for.
	MaxListLimit = 100
)

// ListQuery carries pagination and filtering for a feed page. Zero or
// negative limits fall back to DefaultListLimit; limits above MaxListLimit
// are clamped down. Since bounds results to rows created strictly after it.
type ListQuery struct {
	Limit      int
	Offset     int
	OnlyUnread bool
	Since      *time.Time
}

// SnoozeRequest hides a notification until a point in time, given either as
// an absolute timestamp or a number of minutes from now. When both are set
// the absolute timestamp wins.
type SnoozeRequest struct {
	Until   *time.Time `json:"snoozeUntil,omitempty"`
	Minutes int        `json:"minutes,omitempty"`
}

// Feed is the recipient-facing read and state-change surface over persisted
// notifications. All operations are scoped to one recipient; ids owned by
// someone else behave like unknown ids.
type Feed struct {
	storage Storage
	hub     *Hub
	logger  *slog.Logger
	now     func() time.Time
}

// FeedOption configures a Feed.
type FeedOption func(*Feed)

// WithFeedLogger sets the logger for the Feed.
func WithFeedLogger(log *slog.Logger) FeedOption {
	return func(f *Feed) {
		f.logger = log
	}
}

// WithFeedHub attaches a live hub so that notifications created through
// AdminCreate reach live subscribers too.
func WithFeedHub(hub *Hub) FeedOption {
	return func(f *Feed) {
		f.hub = hub
	}
}

// WithFeedClock overrides the time source, mainly for testing snooze.
func WithFeedClock(now func() time.Time) FeedOption {
	return func(f *Feed) {
		if now != nil {
			f.now = now
		}
	}
}

// NewFeed creates a new notification feed service.
func NewFeed(storage Storage, opts ...FeedOption) *Feed {
	f := &Feed{
		storage: storage,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// List returns one page of the recipient's notifications, newest first.
func (f *Feed) List(ctx context.Context, recipientID string, q ListQuery) ([]Notification, error) {
	if q.Limit <= 0 {
		q.Limit = DefaultListLimit
	}
	if q.Limit > MaxListLimit {
		q.Limit = MaxListLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	return f.storage.List(ctx, recipientID, ListOptions{
		Limit:      q.Limit,
		Offset:     q.Offset,
		OnlyUnread: q.OnlyUnread,
		Since:      q.Since,
	})
}

// Get returns a single notification owned by the recipient.
func (f *Feed) Get(ctx context.Context, recipientID, notifID string) (*Notification, error) {
	return f.storage.Get(ctx, recipientID, notifID)
}

// CountUnread returns the recipient's unread count.
func (f *Feed) CountUnread(ctx context.Context, recipientID string) (int, error) {
	return f.storage.CountUnread(ctx, recipientID)
}

// MarkRead marks the given notifications as read. Unknown and foreign ids
// are skipped without error.
func (f *Feed) MarkRead(ctx context.Context, recipientID string, notifIDs ...string) error {
	if len(notifIDs) == 0 {
		return nil
	}
	return f.storage.MarkRead(ctx, recipientID, notifIDs...)
}

// MarkAllRead marks every unread notification of the recipient as read.
func (f *Feed) MarkAllRead(ctx context.Context, recipientID string) error {
	unread, err := f.storage.List(ctx, recipientID, ListOptions{OnlyUnread: true})
	if err != nil {
		return err
	}
	if len(unread) == 0 {
		return nil
	}

	ids := make([]string, len(unread))
	for i, n := range unread {
		ids[i] = n.ID
	}
	return f.storage.MarkRead(ctx, recipientID, ids...)
}

// Snooze hides a notification until the requested time. A request naming
// neither a timestamp nor minutes is rejected. Snoozing an unknown or
// foreign id succeeds without effect, matching the other state changes.
func (f *Feed) Snooze(ctx context.Context, recipientID, notifID string, req SnoozeRequest) error {
	until, err := f.snoozeDeadline(req)
	if err != nil {
		return err
	}

	if err := f.storage.Snooze(ctx, recipientID, notifID, until); err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			return nil
		}
		return err
	}

	f.logger.LogAttrs(ctx, slog.LevelDebug, "notification snoozed",
		logger.NotificationID(notifID),
		logger.RecipientID(recipientID),
		slog.Time("until", until),
	)
	return nil
}

func (f *Feed) snoozeDeadline(req SnoozeRequest) (time.Time, error) {
	if req.Until != nil {
		return *req.Until, nil
	}
	if req.Minutes > 0 {
		return f.now().Add(time.Duration(req.Minutes) * time.Minute), nil
	}
	return time.Time{}, ErrSnoozeUnspecified
}

// Dismiss removes the given notifications. Unknown and foreign ids are
// skipped without error.
func (f *Feed) Dismiss(ctx context.Context, recipientID string, notifIDs ...string) error {
	if len(notifIDs) == 0 {
		return nil
	}
	return f.storage.Delete(ctx, recipientID, notifIDs...)
}

// ClearAll removes every notification owned by the recipient.
func (f *Feed) ClearAll(ctx context.Context, recipientID string) error {
	return f.storage.DeleteAll(ctx, recipientID)
}

// AdminCreate persists a notification directly, bypassing the preference
// gates. It backs operator tooling where delivery is mandated; normal
// event-driven creation goes through Factory.Create.
func (f *Feed) AdminCreate(ctx context.Context, in CreateInput) (*Notification, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if in.Type == "" {
		in.Type = TypeGeneral
	}
	category := in.Category
	if category == "" {
		category = inferCategory(in.Type, in.Title, in.Message)
	}

	notif := Notification{
		ID:          uuid.New().String(),
		RecipientID: in.RecipientID,
		Title:       in.Title,
		Message:     in.Message,
		Type:        in.Type,
		Category:    category,
		Priority:    in.Priority,
		EntityID:    in.EntityID,
		CreatedAt:   f.now(),
	}

	if err := f.storage.Create(ctx, notif); err != nil {
		return nil, fmt.Errorf("failed to persist notification for recipient %s: %w", in.RecipientID, err)
	}

	if f.hub != nil {
		if err := f.hub.Publish(ctx, notif); err != nil {
			f.logger.LogAttrs(ctx, slog.LevelWarn, "failed to publish notification to live hub",
				logger.NotificationID(notif.ID),
				logger.Error(err),
			)
		}
	}
	return &notif, nil
}
