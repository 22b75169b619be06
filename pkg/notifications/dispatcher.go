package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/deskops/notifykit/pkg/logger"
	"github.com/deskops/notifykit/pkg/templates"
)

// TargetAll addresses a broadcast to every known user instead of a role.
const TargetAll = "all"

// RecipientSource resolves broadcast targets to user ids.
type RecipientSource interface {
	// MembersOf returns the ids of users holding the given role.
	// Returns ErrUnknownRole for roles the directory does not know.
	MembersOf(ctx context.Context, role string) ([]string, error)

	// All returns every known user id.
	All(ctx context.Context) ([]string, error)
}

// StaticDirectory is an in-memory RecipientSource backed by a fixed
// role-to-members mapping. Suitable for tests and small deployments where
// the user set is known up front.
type StaticDirectory struct {
	mu    sync.RWMutex
	roles map[string][]string
}

// NewStaticDirectory creates a directory from a role-to-members mapping.
// The mapping is copied, so later mutation of the argument is safe.
func NewStaticDirectory(roles map[string][]string) *StaticDirectory {
	d := &StaticDirectory{roles: make(map[string][]string, len(roles))}
	for role, members := range roles {
		d.roles[role] = append([]string(nil), members...)
	}
	return d
}

// SetRole replaces the member list for a role.
func (d *StaticDirectory) SetRole(role string, members []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.roles[role] = append([]string(nil), members...)
}

func (d *StaticDirectory) MembersOf(ctx context.Context, role string) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	members, ok := d.roles[role]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRole, role)
	}
	return append([]string(nil), members...), nil
}

func (d *StaticDirectory) All(ctx context.Context) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	seen := make(map[string]struct{})
	var all []string
	for _, members := range d.roles {
		for _, id := range members {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			all = append(all, id)
		}
	}
	return all, nil
}

// BroadcastInput describes a notification addressed to a role rather than a
// single recipient. Target is a role name or TargetAll.
type BroadcastInput struct {
	Target   string
	Title    string
	Message  string
	Type     Type
	Priority Priority
	Category Category
	EntityID string
}

// BroadcastResult reports the outcome of a broadcast. RecipientCount is the
// number of recipients whose gates passed and for whom a notification row
// was actually persisted, not the size of the target audience.
type BroadcastResult struct {
	Target         string `json:"target"`
	AudienceSize   int    `json:"audienceSize"`
	RecipientCount int    `json:"recipientCount"`
}

// Dispatcher expands a role target into its members and runs each one
// through the factory's gate pipeline. Per-recipient gate suppression is
// normal and does not fail the broadcast; only directory and persistence
// errors do.
type Dispatcher struct {
	factory   *Factory
	directory RecipientSource
	logger    *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatcherLogger sets the logger for the Dispatcher.
func WithDispatcherLogger(log *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = log
	}
}

// NewDispatcher creates a new broadcast dispatcher.
func NewDispatcher(factory *Factory, directory RecipientSource, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		factory:   factory,
		directory: directory,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Broadcast delivers the input to every member of the target role, or to
// every known user when the target is TargetAll.
func (d *Dispatcher) Broadcast(ctx context.Context, in BroadcastInput) (BroadcastResult, error) {
	return d.broadcast(ctx, in.Target, func(recipientID string) (*Notification, error) {
		return d.factory.Create(ctx, CreateInput{
			RecipientID: recipientID,
			Title:       in.Title,
			Message:     in.Message,
			Type:        in.Type,
			Priority:    in.Priority,
			Category:    in.Category,
			EntityID:    in.EntityID,
		})
	})
}

// BroadcastTemplate renders a registry template once per recipient and
// delivers it to the target audience.
func (d *Dispatcher) BroadcastTemplate(ctx context.Context, target string, tpl templates.Template, vars map[string]string, entityID string) (BroadcastResult, error) {
	return d.broadcast(ctx, target, func(recipientID string) (*Notification, error) {
		return d.factory.CreateFromTemplate(ctx, tpl, recipientID, vars, entityID)
	})
}

func (d *Dispatcher) broadcast(ctx context.Context, target string, deliver func(recipientID string) (*Notification, error)) (BroadcastResult, error) {
	recipients, err := d.resolve(ctx, target)
	if err != nil {
		return BroadcastResult{}, err
	}

	result := BroadcastResult{Target: target, AudienceSize: len(recipients)}
	for _, recipientID := range recipients {
		notif, err := deliver(recipientID)
		if err != nil {
			return result, fmt.Errorf("broadcast to %s: %w", target, err)
		}
		if notif != nil {
			result.RecipientCount++
		}
	}

	d.logger.LogAttrs(ctx, slog.LevelInfo, "broadcast dispatched",
		logger.Component("dispatcher"),
		logger.Role(target),
		logger.RecipientCount(result.RecipientCount),
	)
	return result, nil
}

func (d *Dispatcher) resolve(ctx context.Context, target string) ([]string, error) {
	if target == "" {
		return nil, fmt.Errorf("%w: target", ErrMissingField)
	}
	if target == TargetAll {
		return d.directory.All(ctx)
	}
	return d.directory.MembersOf(ctx, target)
}
