package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deskops/notifykit/pkg/pg"
)

// PostgresStorage persists notifications in the notifications table.
// All recipient-scoped operations filter on recipient_id in SQL, so foreign
// ids never match and batch operations are naturally silent about them.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage creates a Postgres-backed notification storage.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

const notificationColumns = `id, recipient_id, title, message, type, category, priority, read, read_at, snoozed_until, entity_id, created_at`

func scanNotification(row pgx.Row) (*Notification, error) {
	var n Notification
	err := row.Scan(
		&n.ID, &n.RecipientID, &n.Title, &n.Message, &n.Type, &n.Category,
		&n.Priority, &n.Read, &n.ReadAt, &n.SnoozedUntil, &n.EntityID, &n.CreatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to read notification: %w", err)
	}
	return &n, nil
}

func (s *PostgresStorage) Create(ctx context.Context, notif Notification) error {
	const query = `
		INSERT INTO notifications (` + notificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = time.Now()
	}

	_, err := s.pool.Exec(ctx, query,
		notif.ID, notif.RecipientID, notif.Title, notif.Message, notif.Type, notif.Category,
		notif.Priority, notif.Read, notif.ReadAt, notif.SnoozedUntil, notif.EntityID, notif.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store notification %s: %w", notif.ID, err)
	}
	return nil
}

func (s *PostgresStorage) Get(ctx context.Context, recipientID, notifID string) (*Notification, error) {
	const query = `SELECT ` + notificationColumns + ` FROM notifications WHERE recipient_id = $1 AND id = $2`
	return scanNotification(s.pool.QueryRow(ctx, query, recipientID, notifID))
}

func (s *PostgresStorage) List(ctx context.Context, recipientID string, opts ListOptions) ([]Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE recipient_id = $1`
	args := []any{recipientID}

	if opts.OnlyUnread {
		query += ` AND NOT read`
	}
	if opts.Since != nil {
		args = append(args, *opts.Since)
		query += fmt.Sprintf(` AND created_at > $%d`, len(args))
	}

	query += ` ORDER BY created_at DESC, id DESC`

	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	listed := []Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		listed = append(listed, *n)
	}
	return listed, rows.Err()
}

func (s *PostgresStorage) MarkRead(ctx context.Context, recipientID string, notifIDs ...string) error {
	if len(notifIDs) == 0 {
		return nil
	}

	const query = `
		UPDATE notifications
		SET read = TRUE, read_at = NOW()
		WHERE recipient_id = $1 AND id = ANY($2) AND NOT read`

	if _, err := s.pool.Exec(ctx, query, recipientID, notifIDs); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Snooze(ctx context.Context, recipientID, notifID string, until time.Time) error {
	const query = `UPDATE notifications SET snoozed_until = $3 WHERE recipient_id = $1 AND id = $2`

	tag, err := s.pool.Exec(ctx, query, recipientID, notifID, until)
	if err != nil {
		return fmt.Errorf("failed to snooze notification %s: %w", notifID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *PostgresStorage) Delete(ctx context.Context, recipientID string, notifIDs ...string) error {
	if len(notifIDs) == 0 {
		return nil
	}

	const query = `DELETE FROM notifications WHERE recipient_id = $1 AND id = ANY($2)`
	if _, err := s.pool.Exec(ctx, query, recipientID, notifIDs); err != nil {
		return fmt.Errorf("failed to delete notifications: %w", err)
	}
	return nil
}

func (s *PostgresStorage) DeleteAll(ctx context.Context, recipientID string) error {
	const query = `DELETE FROM notifications WHERE recipient_id = $1`
	if _, err := s.pool.Exec(ctx, query, recipientID); err != nil {
		return fmt.Errorf("failed to clear notifications: %w", err)
	}
	return nil
}

func (s *PostgresStorage) CountUnread(ctx context.Context, recipientID string) (int, error) {
	const query = `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND NOT read`

	var count int
	if err := s.pool.QueryRow(ctx, query, recipientID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}
