package livefeed

import (
	"time"

	"github.com/deskops/notifykit/pkg/notifications"
)

// Source tags where a feed item came from.
type Source string

const (
	// SourcePersisted marks items backed by a stored notification row.
	SourcePersisted Source = "persisted"

	// SourceSynthesized marks ephemeral items computed from domain
	// snapshots at read time. They have no stored row and their Key is
	// content-derived instead of a random id.
	SourceSynthesized Source = "synthesized"
)

// Item is the unified display shape for the notification panel. Exactly one
// of the two identities is meaningful per source: persisted items carry the
// stored notification's ID, synthesized items carry a deterministic Key.
// Consumers switch on Source rather than parsing identifiers.
type Item struct {
	Source Source `json:"source"`

	// ID is set for persisted items only.
	ID string `json:"id,omitempty"`

	// Key is set for synthesized items only. It is stable across repeated
	// evaluations of an unchanged condition.
	Key string `json:"key,omitempty"`

	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Type      notifications.Type     `json:"type"`
	Priority  notifications.Priority `json:"priority"`
	Read      bool                   `json:"read"`
	EntityID  string                 `json:"entityId,omitempty"`
	CreatedAt time.Time              `json:"createdAt,omitempty"`
}

// FromPersisted converts a stored notification row into the display shape.
func FromPersisted(n notifications.Notification) Item {
	return Item{
		Source:    SourcePersisted,
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Priority:  n.Priority,
		Read:      n.Read,
		EntityID:  n.EntityID,
		CreatedAt: n.CreatedAt,
	}
}
