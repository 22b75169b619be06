package notifications

import (
	"context"
	"time"
)

// Storage handles notification persistence and retrieval. Every operation
// except Create is scoped to a recipient: ids belonging to someone else
// behave exactly like unknown ids.
type Storage interface {
	// Create stores a new notification.
	Create(ctx context.Context, notif Notification) error

	// Get retrieves a single notification owned by the recipient.
	// Returns ErrNotificationNotFound otherwise.
	Get(ctx context.Context, recipientID, notifID string) (*Notification, error)

	// List returns the recipient's notifications, newest first.
	List(ctx context.Context, recipientID string, opts ListOptions) ([]Notification, error)

	// MarkRead marks the given notifications as read. Ids that do not
	// exist or belong to someone else are silently skipped.
	MarkRead(ctx context.Context, recipientID string, notifIDs ...string) error

	// Snooze sets the snoozed-until timestamp on a single notification.
	// Returns ErrNotificationNotFound when the recipient owns no such row.
	Snooze(ctx context.Context, recipientID, notifID string, until time.Time) error

	// Delete removes the given notifications. Ids that do not exist or
	// belong to someone else are silently skipped.
	Delete(ctx context.Context, recipientID string, notifIDs ...string) error

	// DeleteAll removes every notification owned by the recipient.
	DeleteAll(ctx context.Context, recipientID string) error

	// CountUnread returns the recipient's unread count.
	CountUnread(ctx context.Context, recipientID string) (int, error)
}

// ListOptions provides filtering and pagination options for listing notifications.
type ListOptions struct {
	Limit      int        // Maximum number of notifications to return
	Offset     int        // Number of notifications to skip for pagination
	OnlyUnread bool       // When true, only return unread notifications
	Since      *time.Time // If set, only return notifications created strictly after this time
}
