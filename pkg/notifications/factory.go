package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/deskops/notifykit/pkg/logger"
	"github.com/deskops/notifykit/pkg/preferences"
	"github.com/deskops/notifykit/pkg/templates"
)

// PreferenceSource resolves a recipient's delivery settings. A recipient
// without a stored record must resolve to the fail-open defaults; only real
// storage failures may return an error.
type PreferenceSource interface {
	Resolve(ctx context.Context, userID string) (preferences.Preference, error)
}

// CreateInput carries the parameters of a single notification request.
// Title and message arrive fully rendered; the factory never substitutes
// placeholders itself.
type CreateInput struct {
	RecipientID string
	Title       string
	Message     string
	Type        Type
	EntityID    string

	// Priority defaults to medium when empty.
	Priority Priority

	// Category selects the preference toggle to consult. When empty the
	// factory falls back to keyword inference on type and wording.
	Category Category
}

// Gate decision outcomes and reasons, emitted with every create attempt.
const (
	OutcomeAccepted   = "accepted"
	OutcomeSuppressed = "suppressed"

	ReasonQuietHours       = "quiet_hours"
	ReasonCategoryDisabled = "category_disabled"
)

// Factory decides, for each domain event, whether the recipient receives a
// notification. It evaluates the do-not-disturb and category gates against
// the recipient's preferences, stamps defaults, persists accepted
// notifications and publishes them to the live hub.
//
// Suppression by a gate is a successful outcome: Create returns (nil, nil).
// A persistence failure is fatal and propagates with event context attached.
type Factory struct {
	prefs   PreferenceSource
	storage Storage
	hub     *Hub
	logger  *slog.Logger
	now     func() time.Time
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithFactoryLogger sets the logger for the Factory.
func WithFactoryLogger(log *slog.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = log
	}
}

// WithFactoryHub attaches a live delivery hub. Accepted notifications are
// published to it best-effort after they are persisted.
func WithFactoryHub(hub *Hub) FactoryOption {
	return func(f *Factory) {
		f.hub = hub
	}
}

// WithFactoryClock overrides the time source, mainly for testing
// do-not-disturb windows.
func WithFactoryClock(now func() time.Time) FactoryOption {
	return func(f *Factory) {
		if now != nil {
			f.now = now
		}
	}
}

// NewFactory creates a new notification factory.
func NewFactory(prefs PreferenceSource, storage Storage, opts ...FactoryOption) *Factory {
	f := &Factory{
		prefs:   prefs,
		storage: storage,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create runs the gate pipeline for a single recipient and persists the
// notification when it passes. The order is fixed: validation, preference
// resolution, do-not-disturb gate, category gate, persistence. Critical
// priority bypasses both gates but not the persistence step.
func (f *Factory) Create(ctx context.Context, in CreateInput) (*Notification, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if in.Type == "" {
		in.Type = TypeGeneral
	}

	pref, err := f.prefs.Resolve(ctx, in.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("notification for recipient %s (type %s): %w", in.RecipientID, in.Type, err)
	}

	now := f.now()

	// Critical notifications bypass both gates: losing an outage alert to a
	// muted toggle or a quiet-hours window is an unacceptable silent drop.
	if in.Priority != PriorityCritical && pref.InQuietHours(now) {
		f.logDecision(ctx, in, OutcomeSuppressed, ReasonQuietHours)
		return nil, nil
	}

	category := in.Category
	if category == "" {
		category = inferCategory(in.Type, in.Title, in.Message)
	}

	if in.Priority != PriorityCritical && !pref.CategoryEnabled(string(category)) {
		f.logDecision(ctx, in, OutcomeSuppressed, ReasonCategoryDisabled)
		return nil, nil
	}

	notif := Notification{
		ID:          uuid.New().String(),
		RecipientID: in.RecipientID,
		Title:       in.Title,
		Message:     in.Message,
		Type:        in.Type,
		Category:    category,
		Priority:    in.Priority,
		EntityID:    in.EntityID,
		CreatedAt:   now,
	}

	if err := f.storage.Create(ctx, notif); err != nil {
		return nil, fmt.Errorf("failed to persist notification for recipient %s (type %s, priority %s): %w",
			in.RecipientID, in.Type, in.Priority, err)
	}

	f.publish(ctx, notif)
	f.logDecision(ctx, in, OutcomeAccepted, "")

	return &notif, nil
}

// CreateFromTemplate renders a registry template with the supplied variables
// and feeds the result through the normal gate pipeline. Deactivated
// templates are rejected.
func (f *Factory) CreateFromTemplate(ctx context.Context, tpl templates.Template, recipientID string, vars map[string]string, entityID string) (*Notification, error) {
	if !tpl.Active {
		return nil, templates.ErrTemplateInactive
	}

	preview := tpl.Render(vars)
	return f.Create(ctx, CreateInput{
		RecipientID: recipientID,
		Title:       preview.Title,
		Message:     preview.Message,
		Type:        Type(tpl.Type),
		EntityID:    entityID,
		Priority:    Priority(tpl.Priority),
		Category:    Category(tpl.Category),
	})
}

// publish hands an accepted notification to the live hub. Delivery is best
// effort: the persisted row is the source of truth, so hub failures are
// logged and swallowed.
func (f *Factory) publish(ctx context.Context, notif Notification) {
	if f.hub == nil {
		return
	}
	if err := f.hub.Publish(ctx, notif); err != nil {
		f.logger.LogAttrs(ctx, slog.LevelWarn, "failed to publish notification to live hub",
			logger.NotificationID(notif.ID),
			logger.RecipientID(notif.RecipientID),
			logger.Error(err),
		)
	}
}

func (f *Factory) logDecision(ctx context.Context, in CreateInput, outcome, reason string) {
	attrs := []slog.Attr{
		logger.Component("factory"),
		logger.Outcome(outcome),
		logger.RecipientID(in.RecipientID),
		logger.NotificationType(string(in.Type)),
		logger.Priority(string(in.Priority)),
	}
	if reason != "" {
		attrs = append(attrs, logger.Reason(reason))
	}
	f.logger.LogAttrs(ctx, slog.LevelInfo, "notification decision", attrs...)
}

func validateInput(in CreateInput) error {
	for field, value := range map[string]string{
		"recipientId": in.RecipientID,
		"title":       in.Title,
		"message":     in.Message,
	} {
		if value == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, field)
		}
	}
	return nil
}

// inferCategory maps a notification's type and wording to a preference
// category. It exists as a fallback for callers that predate explicit
// categories; new callers should always pass CreateInput.Category.
func inferCategory(t Type, title, message string) Category {
	text := strings.ToLower(title + " " + message)

	switch t {
	case TypeSystem:
		return CategorySystemAnnouncements
	case TypeEmployee:
		return CategoryEmployeeChanges
	case TypeMaintenance:
		return CategoryMaintenanceAlerts
	case TypeUpgrade:
		return CategoryUpgradeRequests
	case TypeTicket:
		if strings.Contains(text, "assign") {
			return CategoryTicketAssignments
		}
		return CategoryTicketStatusChanges
	case TypeAsset:
		if strings.Contains(text, "maintenance") {
			return CategoryMaintenanceAlerts
		}
		if strings.Contains(text, "upgrade") {
			return CategoryUpgradeRequests
		}
		return CategoryAssetAssignments
	}

	if strings.Contains(text, "upgrade") {
		return CategoryUpgradeRequests
	}
	return CategoryAlerts
}
