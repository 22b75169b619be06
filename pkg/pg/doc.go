// Package pg wires PostgreSQL into the notification engine: a pgx connection
// pool with retrying Connect, goose migrations for the notification,
// preference and template tables, error classification helpers, and a
// healthcheck closure for liveness probes.
//
// Configuration is described by Config, populated from environment variables
// via the config package.
package pg
