package templates

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deskops/notifykit/pkg/pg"
)

// PostgresStorage persists templates in the notification_templates table.
// Name uniqueness is enforced by a unique index so concurrent creates
// cannot race past the application-level check.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage creates a Postgres-backed template storage.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

const templateColumns = `id, name, category, type, priority, title_template, message_template, variables, active, created_at, updated_at`

func scanTemplate(row pgx.Row) (*Template, error) {
	var tpl Template
	err := row.Scan(
		&tpl.ID, &tpl.Name, &tpl.Category, &tpl.Type, &tpl.Priority,
		&tpl.TitleTemplate, &tpl.MessageTemplate, &tpl.Variables,
		&tpl.Active, &tpl.CreatedAt, &tpl.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	return &tpl, nil
}

func (s *PostgresStorage) Create(ctx context.Context, tpl Template) error {
	const query = `
		INSERT INTO notification_templates (` + templateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := s.pool.Exec(ctx, query,
		tpl.ID, tpl.Name, tpl.Category, tpl.Type, tpl.Priority,
		tpl.TitleTemplate, tpl.MessageTemplate, tpl.Variables,
		tpl.Active, tpl.CreatedAt, tpl.UpdatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("failed to store template %q: %w", tpl.Name, err)
	}
	return nil
}

func (s *PostgresStorage) Update(ctx context.Context, tpl Template) error {
	const query = `
		UPDATE notification_templates
		SET name = $2, category = $3, type = $4, priority = $5,
		    title_template = $6, message_template = $7, variables = $8,
		    active = $9, updated_at = $10
		WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query,
		tpl.ID, tpl.Name, tpl.Category, tpl.Type, tpl.Priority,
		tpl.TitleTemplate, tpl.MessageTemplate, tpl.Variables,
		tpl.Active, tpl.UpdatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("failed to update template %q: %w", tpl.Name, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (s *PostgresStorage) Get(ctx context.Context, id string) (*Template, error) {
	const query = `SELECT ` + templateColumns + ` FROM notification_templates WHERE id = $1`
	return scanTemplate(s.pool.QueryRow(ctx, query, id))
}

func (s *PostgresStorage) GetByName(ctx context.Context, name string) (*Template, error) {
	const query = `SELECT ` + templateColumns + ` FROM notification_templates WHERE name = $1`
	return scanTemplate(s.pool.QueryRow(ctx, query, name))
}

func (s *PostgresStorage) List(ctx context.Context, includeInactive bool) ([]Template, error) {
	query := `SELECT ` + templateColumns + ` FROM notification_templates`
	if !includeInactive {
		query += ` WHERE active`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var listed []Template
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		listed = append(listed, *tpl)
	}
	return listed, rows.Err()
}
