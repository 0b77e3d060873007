// Package repository implements persistence for named application options.
// Options back the root key, runtime settings and the shared note content.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/briefnote/briefnote/internal/database"
	apperrors "github.com/briefnote/briefnote/internal/errors"
)

// PostgreSQLOptionRepository implements option persistence for PostgreSQL.
type PostgreSQLOptionRepository struct {
	db *sql.DB
}

// NewPostgreSQLOptionRepository creates a new PostgreSQL option repository.
func NewPostgreSQLOptionRepository(db *sql.DB) *PostgreSQLOptionRepository {
	return &PostgreSQLOptionRepository{db: db}
}

// Get retrieves the value of an option by name. Returns ErrNotFound when the
// option has never been set.
func (p *PostgreSQLOptionRepository) Get(ctx context.Context, name string) (string, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT value FROM app_options WHERE name = $1`

	var value string
	err := querier.QueryRowContext(ctx, query, name).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.Wrap(err, "failed to get option")
	}

	return value, nil
}

// Set stores the value of an option, creating it if it does not exist.
func (p *PostgreSQLOptionRepository) Set(ctx context.Context, name, value string) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO app_options (name, value, updated_at)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	_, err := querier.ExecContext(ctx, query, name, value, time.Now().UTC())
	if err != nil {
		return apperrors.Wrap(err, "failed to set option")
	}

	return nil
}

// Delete removes an option by name. Deleting a missing option is not an error.
func (p *PostgreSQLOptionRepository) Delete(ctx context.Context, name string) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM app_options WHERE name = $1`

	_, err := querier.ExecContext(ctx, query, name)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete option")
	}

	return nil
}
