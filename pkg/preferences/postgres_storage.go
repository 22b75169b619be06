package preferences

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deskops/notifykit/pkg/pg"
)

// PostgresStorage persists preference records in the
// notification_preferences table, one row per user.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage creates a Postgres-backed preference storage.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

func (s *PostgresStorage) Get(ctx context.Context, userID string) (*Preference, error) {
	const query = `
		SELECT user_id, ticket_assignments, ticket_status_changes, asset_assignments,
		       maintenance_alerts, upgrade_requests, system_announcements, employee_changes,
		       dnd_enabled, dnd_start, dnd_end, dnd_days, updated_at
		FROM notification_preferences
		WHERE user_id = $1`

	var (
		pref Preference
		days []int32
	)
	err := s.pool.QueryRow(ctx, query, userID).Scan(
		&pref.UserID, &pref.TicketAssignments, &pref.TicketStatusChanges, &pref.AssetAssignments,
		&pref.MaintenanceAlerts, &pref.UpgradeRequests, &pref.SystemAnnouncements, &pref.EmployeeChanges,
		&pref.DNDEnabled, &pref.DNDStart, &pref.DNDEnd, &days, &pref.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrPreferenceNotFound
		}
		return nil, fmt.Errorf("failed to read preference record: %w", err)
	}

	pref.DNDDays = make([]time.Weekday, 0, len(days))
	for _, d := range days {
		pref.DNDDays = append(pref.DNDDays, time.Weekday(d))
	}
	return &pref, nil
}

func (s *PostgresStorage) Upsert(ctx context.Context, pref Preference) error {
	if pref.UserID == "" {
		return ErrUserIDRequired
	}

	const query = `
		INSERT INTO notification_preferences (
			user_id, ticket_assignments, ticket_status_changes, asset_assignments,
			maintenance_alerts, upgrade_requests, system_announcements, employee_changes,
			dnd_enabled, dnd_start, dnd_end, dnd_days, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (user_id) DO UPDATE SET
			ticket_assignments = EXCLUDED.ticket_assignments,
			ticket_status_changes = EXCLUDED.ticket_status_changes,
			asset_assignments = EXCLUDED.asset_assignments,
			maintenance_alerts = EXCLUDED.maintenance_alerts,
			upgrade_requests = EXCLUDED.upgrade_requests,
			system_announcements = EXCLUDED.system_announcements,
			employee_changes = EXCLUDED.employee_changes,
			dnd_enabled = EXCLUDED.dnd_enabled,
			dnd_start = EXCLUDED.dnd_start,
			dnd_end = EXCLUDED.dnd_end,
			dnd_days = EXCLUDED.dnd_days,
			updated_at = EXCLUDED.updated_at`

	days := make([]int32, 0, len(pref.DNDDays))
	for _, d := range pref.DNDDays {
		days = append(days, int32(d))
	}

	updatedAt := pref.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err := s.pool.Exec(ctx, query,
		pref.UserID, pref.TicketAssignments, pref.TicketStatusChanges, pref.AssetAssignments,
		pref.MaintenanceAlerts, pref.UpgradeRequests, pref.SystemAnnouncements, pref.EmployeeChanges,
		pref.DNDEnabled, pref.DNDStart, pref.DNDEnd, days, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store preference record: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Delete(ctx context.Context, userID string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM notification_preferences WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete preference record: %w", err)
	}
	return nil
}
