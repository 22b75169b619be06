package preferences

import "errors"

var (
	// ErrPreferenceNotFound is returned when a user has no stored preference record.
	// Callers must treat this as "all categories enabled, DND off", never as a block.
	ErrPreferenceNotFound = errors.New("preference record not found")

	// ErrInvalidClock is returned for malformed time-of-day values.
	ErrInvalidClock = errors.New("invalid time of day, expected HH:MM")

	// ErrUserIDRequired is returned when a preference record has no owner.
	ErrUserIDRequired = errors.New("user ID is required")
)
