package preferences

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/deskops/notifykit/pkg/logger"
)

// Service exposes preference reads and writes on top of a Storage.
// Reads resolve a missing record to fail-open defaults; writes are
// last-writer-wins with no optimistic locking.
type Service struct {
	storage Storage
	logger  *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger for the Service.
func WithServiceLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = log
	}
}

// NewService creates a new preference service.
func NewService(storage Storage, opts ...ServiceOption) *Service {
	s := &Service{
		storage: storage,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve returns the user's preference record, or the fail-open defaults
// when none exists. Storage failures other than a missing record propagate:
// a broken preference store must not silently disable gating.
func (s *Service) Resolve(ctx context.Context, userID string) (Preference, error) {
	pref, err := s.storage.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrPreferenceNotFound) {
			return Default(userID), nil
		}
		return Preference{}, fmt.Errorf("failed to resolve preferences for user %s: %w", userID, err)
	}
	return *pref, nil
}

// Update validates and stores a preference record, replacing any existing one.
func (s *Service) Update(ctx context.Context, pref Preference) error {
	if pref.UserID == "" {
		return ErrUserIDRequired
	}
	if err := pref.Validate(); err != nil {
		return err
	}

	pref.UpdatedAt = time.Now()
	if err := s.storage.Upsert(ctx, pref); err != nil {
		return err
	}

	s.logger.LogAttrs(ctx, slog.LevelDebug, "preferences updated",
		logger.RecipientID(pref.UserID),
	)
	return nil
}

// Reset deletes the user's stored record, reverting them to defaults.
func (s *Service) Reset(ctx context.Context, userID string) error {
	return s.storage.Delete(ctx, userID)
}
