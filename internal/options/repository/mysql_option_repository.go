package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/briefnote/briefnote/internal/database"
	apperrors "github.com/briefnote/briefnote/internal/errors"
)

// MySQLOptionRepository implements option persistence for MySQL.
type MySQLOptionRepository struct {
	db *sql.DB
}

// NewMySQLOptionRepository creates a new MySQL option repository.
func NewMySQLOptionRepository(db *sql.DB) *MySQLOptionRepository {
	return &MySQLOptionRepository{db: db}
}

// Get retrieves the value of an option by name. Returns ErrNotFound when the
// option has never been set.
func (m *MySQLOptionRepository) Get(ctx context.Context, name string) (string, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT value FROM app_options WHERE name = ?`

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
func (m *MySQLOptionRepository) Set(ctx context.Context, name, value string) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO app_options (name, value, updated_at)
			  VALUES (?, ?, ?)
			  ON DUPLICATE KEY UPDATE value = VALUES(value), updated_at = VALUES(updated_at)`

	_, err := querier.ExecContext(ctx, query, name, value, time.Now().UTC())
	if err != nil {
		return apperrors.Wrap(err, "failed to set option")
	}

	return nil
}

// Delete removes an option by name. Deleting a missing option is not an error.
func (m *MySQLOptionRepository) Delete(ctx context.Context, name string) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM app_options WHERE name = ?`

	_, err := querier.ExecContext(ctx, query, name)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete option")
	}

	return nil
}
