package templates

import "context"

// Storage handles template persistence. Templates are never hard-deleted;
// deactivation flips the Active flag and history is retained.
type Storage interface {
	// Create stores a new template. Returns ErrDuplicateName when the
	// name is already taken.
	Create(ctx context.Context, tpl Template) error

	// Update replaces an existing template (last-writer-wins).
	// Returns ErrTemplateNotFound when the id is unknown and
	// ErrDuplicateName when renaming onto a taken name.
	Update(ctx context.Context, tpl Template) error

	// Get retrieves a template by id, active or not.
	// Returns ErrTemplateNotFound when the id is unknown.
	Get(ctx context.Context, id string) (*Template, error)

	// GetByName retrieves a template by its unique name.
	// Returns ErrTemplateNotFound when the name is unknown.
	GetByName(ctx context.Context, name string) (*Template, error)

	// List returns templates, newest-first. By default only active
	// templates are returned; includeInactive widens the listing.
	List(ctx context.Context, includeInactive bool) ([]Template, error)
}
