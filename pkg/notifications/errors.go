package notifications

import "errors"

var (
	// ErrNotificationNotFound is returned when a notification is not found.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrMissingField is returned when a required notification field is empty.
	ErrMissingField = errors.New("missing required notification field")

	// ErrUnknownRole is returned when a broadcast targets a role the
	// directory does not know.
	ErrUnknownRole = errors.New("unknown role")

	// ErrSnoozeUnspecified is returned when a snooze request carries
	// neither an absolute time nor a duration.
	ErrSnoozeUnspecified = errors.New("snooze requires a time or a number of minutes")

	// ErrHubClosed is returned when publishing to a closed hub.
	ErrHubClosed = errors.New("notification hub is closed")
)
