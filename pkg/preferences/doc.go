// Package preferences stores per-user notification delivery settings:
// a boolean toggle per notification category and an optional do-not-disturb
// window with wrap-around support (e.g. 22:00-06:00) and day-of-week
// restrictions.
//
// The package is deliberately fail-open: a user without a stored record is
// treated as having every category enabled and DND disabled. Gating logic
// that consumes these records lives in the notifications package; this
// package only answers "is this category on" and "is now inside the quiet
// window".
//
// Three interchangeable Storage implementations are provided: MemoryStorage
// for development and tests, PostgresStorage for the system of record, and
// RedisStorage for low-latency lookups on the notification hot path.
package preferences
