// Package core provides the HTTP response and error primitives shared by the
// notifier module: a JSON response envelope, an HTTP error type with status
// code and machine-readable key, and a field-level validation error.
package core
