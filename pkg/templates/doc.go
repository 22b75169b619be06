// Package templates provides a registry of named, reusable notification
// messages with {{variable}} placeholder substitution.
//
// Templates give broadcasts and recurring domain events consistent wording.
// The registry enforces name uniqueness, defaults priority to medium, and
// only ever soft-deactivates: a deactivated template vanishes from default
// listings but remains addressable by id.
//
// Rendering is pure. Preview substitutes a caller-supplied variable map into
// the title and message, leaves unresolved placeholders verbatim, and never
// writes anything.
package templates
