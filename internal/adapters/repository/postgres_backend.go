package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/folio/portfolio/internal/infrastructure/database"
)

// PostgresBackend stores each collection as one jsonb row of content_collections.
type PostgresBackend struct {
	db *database.DB
}

// NewPostgresBackend creates a backend on an open connection. The schema is
// expected to be migrated already.
func NewPostgresBackend(db *database.DB) *PostgresBackend {
	return &PostgresBackend{db: db}
}

// Read returns the stored body for name.
func (b *PostgresBackend) Read(ctx context.Context, name string) ([]byte, error) {
	var body []byte
	err := b.db.DB.GetContext(ctx, &body, `SELECT body FROM content_collections WHERE name = $1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if body == nil {
		return nil, ErrBlobNotFound
	}
	return body, nil
}

// Mutate locks the row for name for the length of a transaction.
func (b *PostgresBackend) Mutate(ctx context.Context, name string, fn MutateFunc) error {
	err := b.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO content_collections (name, body) VALUES ($1, NULL) ON CONFLICT (name) DO NOTHING`,
			name,
		); err != nil {
			return fmt.Errorf("failed to prepare %s: %w", name, err)
		}

		var current []byte
		if err := tx.GetContext(ctx, &current,
			`SELECT body FROM content_collections WHERE name = $1 FOR UPDATE`,
			name,
		); err != nil {
			return fmt.Errorf("failed to lock %s: %w", name, err)
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE content_collections SET body = $2, updated_at = NOW() WHERE name = $1`,
			name, next,
		); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		return nil
	})
	if errors.Is(err, ErrSkipWrite) {
		return nil
	}
	return err
}

// HealthCheck pings the database.
func (b *PostgresBackend) HealthCheck(ctx context.Context) error {
	return b.db.HealthCheck(ctx)
}

// Close closes the database connection.
func (b *PostgresBackend) Close() error {
	return b.db.Close()
}
