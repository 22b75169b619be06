package notifier

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/deskops/notifykit/pkg/livefeed"
	"github.com/deskops/notifykit/pkg/notifications"
	"github.com/deskops/notifykit/pkg/preferences"
	"github.com/deskops/notifykit/pkg/templates"
)

// Module bundles the notification services behind one HTTP surface.
type Module struct {
	feed        *notifications.Feed
	dispatcher  *notifications.Dispatcher
	registry    *templates.Registry
	preferences *preferences.Service
	hub         *notifications.Hub
	synthesizer *livefeed.Synthesizer
	resolver    CallerResolver
	logger      *slog.Logger
}

// Deps are the services the module serves. Feed is required; the others
// disable their route groups when nil.
type Deps struct {
	Feed        *notifications.Feed
	Dispatcher  *notifications.Dispatcher
	Registry    *templates.Registry
	Preferences *preferences.Service
	Hub         *notifications.Hub
	Synthesizer *livefeed.Synthesizer
}

// ModuleOption configures a Module.
type ModuleOption func(*Module)

// WithCallerResolver replaces the default header-based caller resolution.
func WithCallerResolver(resolve CallerResolver) ModuleOption {
	return func(m *Module) {
		if resolve != nil {
			m.resolver = resolve
		}
	}
}

// WithModuleLogger sets the logger for the Module.
func WithModuleLogger(log *slog.Logger) ModuleOption {
	return func(m *Module) {
		m.logger = log
	}
}

// NewModule creates the notification HTTP module.
func NewModule(deps Deps, opts ...ModuleOption) *Module {
	m := &Module{
		feed:        deps.Feed,
		dispatcher:  deps.Dispatcher,
		registry:    deps.Registry,
		preferences: deps.Preferences,
		hub:         deps.Hub,
		synthesizer: deps.Synthesizer,
		resolver:    HeaderCallerResolver(),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Router mounts the module's routes. Mount it under a prefix of the host
// application, e.g. r.Mount("/notifications", module.Router()).
func (m *Module) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(RequireCaller(m.resolver))

	r.Get("/", m.listFeed)
	r.Get("/unread-count", m.unreadCount)
	r.Post("/read", m.markRead)
	r.Post("/read-all", m.markAllRead)
	r.Post("/{id}/snooze", m.snooze)
	r.Delete("/{id}", m.dismiss)
	r.Delete("/", m.clearAll)

	if m.synthesizer != nil {
		r.Post("/display", m.display)
	}
	if m.hub != nil {
		r.Get("/stream", m.stream)
	}

	if m.preferences != nil {
		r.Route("/preferences", func(pr chi.Router) {
			pr.Get("/", m.getPreferences)
			pr.Put("/", m.updatePreferences)
			pr.Delete("/", m.resetPreferences)
		})
	}

	if m.registry != nil {
		r.Route("/templates", func(tr chi.Router) {
			tr.Use(RequireAdmin)
			tr.Get("/", m.listTemplates)
			tr.Post("/", m.createTemplate)
			tr.Get("/{id}", m.getTemplate)
			tr.Put("/{id}", m.updateTemplate)
			tr.Delete("/{id}", m.deactivateTemplate)
			tr.Post("/{id}/preview", m.previewTemplate)
		})
	}

	if m.dispatcher != nil {
		r.With(RequireAdmin).Post("/broadcast", m.broadcast)
	}
	r.With(RequireAdmin).Post("/direct", m.directCreate)

	return r
}
