// Package repository provides data persistence implementations for credentials.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/briefnote/briefnote/internal/database"
	apperrors "github.com/briefnote/briefnote/internal/errors"
	"github.com/briefnote/briefnote/internal/vault/domain"
)

const postgresCredentialColumns = `id, label, type, username_encrypted, password_encrypted,
		  api_key_encrypted, ssh_key_encrypted, secure_note_encrypted,
		  url, notes, sort_order, created_by, created_at, updated_at`

// PostgreSQLCredentialRepository handles credential persistence for PostgreSQL
type PostgreSQLCredentialRepository struct {
	db *sql.DB
}

// NewPostgreSQLCredentialRepository creates a new PostgreSQLCredentialRepository
func NewPostgreSQLCredentialRepository(db *sql.DB) *PostgreSQLCredentialRepository {
	return &PostgreSQLCredentialRepository{
		db: db,
	}
}

// Create inserts a new credential and assigns the generated ID.
func (r *PostgreSQLCredentialRepository) Create(ctx context.Context, credential *domain.Credential) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO credentials (label, type, username_encrypted, password_encrypted,
			  api_key_encrypted, ssh_key_encrypted, secure_note_encrypted,
			  url, notes, sort_order, created_by, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
			  RETURNING id`

	err := querier.QueryRowContext(ctx, query,
		credential.Label, credential.Type,
		credential.UsernameEncrypted, credential.PasswordEncrypted,
		credential.APIKeyEncrypted, credential.SSHKeyEncrypted, credential.SecureNoteEncrypted,
		credential.URL, credential.Notes, credential.SortOrder, credential.CreatedBy,
	).Scan(&credential.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to create credential")
	}
	return nil
}

// GetByID retrieves a credential by ID, including its sealed envelopes.
func (r *PostgreSQLCredentialRepository) GetByID(ctx context.Context, id int64) (*domain.Credential, error) {
	var credential domain.Credential
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + postgresCredentialColumns + ` FROM credentials WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&credential.ID, &credential.Label, &credential.Type,
		&credential.UsernameEncrypted, &credential.PasswordEncrypted,
		&credential.APIKeyEncrypted, &credential.SSHKeyEncrypted, &credential.SecureNoteEncrypted,
		&credential.URL, &credential.Notes, &credential.SortOrder, &credential.CreatedBy,
		&credential.CreatedAt, &credential.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCredentialNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get credential by id")
	}

	return &credential, nil
}

// List retrieves all credentials ordered by sort order then id.
func (r *PostgreSQLCredentialRepository) List(ctx context.Context) ([]*domain.Credential, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + postgresCredentialColumns + ` FROM credentials ORDER BY sort_order ASC, id ASC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list credentials")
	}
	defer func() {
		_ = rows.Close()
	}()

	var credentials []*domain.Credential
	for rows.Next() {
		var credential domain.Credential
		err := rows.Scan(
			&credential.ID, &credential.Label, &credential.Type,
			&credential.UsernameEncrypted, &credential.PasswordEncrypted,
			&credential.APIKeyEncrypted, &credential.SSHKeyEncrypted, &credential.SecureNoteEncrypted,
			&credential.URL, &credential.Notes, &credential.SortOrder, &credential.CreatedBy,
			&credential.CreatedAt, &credential.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan credential")
		}
		credentials = append(credentials, &credential)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate credentials")
	}

	return credentials, nil
}

// Update persists all mutable fields of a credential.
func (r *PostgreSQLCredentialRepository) Update(ctx context.Context, credential *domain.Credential) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE credentials SET label = $1, type = $2,
			  username_encrypted = $3, password_encrypted = $4,
			  api_key_encrypted = $5, ssh_key_encrypted = $6, secure_note_encrypted = $7,
			  url = $8, notes = $9, sort_order = $10, updated_at = NOW()
			  WHERE id = $11`

	result, err := querier.ExecContext(ctx, query,
		credential.Label, credential.Type,
		credential.UsernameEncrypted, credential.PasswordEncrypted,
		credential.APIKeyEncrypted, credential.SSHKeyEncrypted, credential.SecureNoteEncrypted,
		credential.URL, credential.Notes, credential.SortOrder,
		credential.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update credential")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return domain.ErrCredentialNotFound
	}

	return nil
}

// Delete permanently removes a credential.
func (r *PostgreSQLCredentialRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM credentials WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete credential")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return domain.ErrCredentialNotFound
	}

	return nil
}

// UpdateSortOrder sets the sort position of a single credential.
func (r *PostgreSQLCredentialRepository) UpdateSortOrder(ctx context.Context, id int64, sortOrder int) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE credentials SET sort_order = $1, updated_at = NOW() WHERE id = $2`

	_, err := querier.ExecContext(ctx, query, sortOrder, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update credential sort order")
	}

	return nil
}
