package templates

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/deskops/notifykit/pkg/logger"
)

// DefaultPriority is stamped on templates created without one.
const DefaultPriority = "medium"

// Registry manages the template catalogue: creation with name uniqueness,
// updates, soft deactivation and pure preview rendering.
type Registry struct {
	storage Storage
	logger  *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger sets the logger for the Registry.
func WithRegistryLogger(log *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = log
	}
}

// NewRegistry creates a new template registry.
func NewRegistry(storage Storage, opts ...RegistryOption) *Registry {
	r := &Registry{
		storage: storage,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create validates and stores a new template. Name, category, type and both
// message bodies are required; priority defaults to medium and new templates
// start active.
func (r *Registry) Create(ctx context.Context, tpl Template) (*Template, error) {
	if err := validate(tpl); err != nil {
		return nil, err
	}

	if tpl.ID == "" {
		tpl.ID = uuid.New().String()
	}
	if tpl.Priority == "" {
		tpl.Priority = DefaultPriority
	}
	tpl.Active = true
	now := time.Now()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now

	if err := r.storage.Create(ctx, tpl); err != nil {
		return nil, err
	}

	r.logger.LogAttrs(ctx, slog.LevelInfo, "template created",
		logger.TemplateName(tpl.Name),
		logger.Category(tpl.Category),
	)
	return &tpl, nil
}

// Update replaces a template's content. The updated template keeps its id
// and creation time; edits are last-writer-wins.
func (r *Registry) Update(ctx context.Context, tpl Template) (*Template, error) {
	if err := validate(tpl); err != nil {
		return nil, err
	}

	existing, err := r.storage.Get(ctx, tpl.ID)
	if err != nil {
		return nil, err
	}

	tpl.CreatedAt = existing.CreatedAt
	tpl.UpdatedAt = time.Now()

	if err := r.storage.Update(ctx, tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// Get retrieves a template by id, whether active or deactivated.
func (r *Registry) Get(ctx context.Context, id string) (*Template, error) {
	return r.storage.Get(ctx, id)
}

// List returns active templates, or all templates when includeInactive is set.
func (r *Registry) List(ctx context.Context, includeInactive bool) ([]Template, error) {
	return r.storage.List(ctx, includeInactive)
}

// Deactivate soft-deletes a template. The record is retained and stays
// addressable by id; it only disappears from default listings.
func (r *Registry) Deactivate(ctx context.Context, id string) error {
	tpl, err := r.storage.Get(ctx, id)
	if err != nil {
		return err
	}
	if !tpl.Active {
		return nil
	}

	tpl.Active = false
	tpl.UpdatedAt = time.Now()
	if err := r.storage.Update(ctx, *tpl); err != nil {
		return err
	}

	r.logger.LogAttrs(ctx, slog.LevelInfo, "template deactivated",
		logger.TemplateName(tpl.Name),
	)
	return nil
}

// Preview renders a template against the supplied variables without
// persisting anything. Unresolved placeholders stay verbatim in the output
// so callers can spot missing variables.
func (r *Registry) Preview(ctx context.Context, id string, vars map[string]string) (*Preview, error) {
	tpl, err := r.storage.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	preview := tpl.Render(vars)
	return &preview, nil
}

func validate(tpl Template) error {
	for field, value := range map[string]string{
		"name":            tpl.Name,
		"category":        tpl.Category,
		"type":            tpl.Type,
		"titleTemplate":   tpl.TitleTemplate,
		"messageTemplate": tpl.MessageTemplate,
	} {
		if value == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, field)
		}
	}
	return nil
}
