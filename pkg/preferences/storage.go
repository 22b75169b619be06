package preferences

import "context"

// Storage handles preference persistence. A user has at most one record.
type Storage interface {
	// Get retrieves a user's preference record.
	// Returns ErrPreferenceNotFound when no record exists.
	Get(ctx context.Context, userID string) (*Preference, error)

	// Upsert creates or replaces a user's preference record (last-writer-wins).
	Upsert(ctx context.Context, pref Preference) error

	// Delete removes a user's preference record. Deleting a missing record is a no-op.
	Delete(ctx context.Context, userID string) error
}
