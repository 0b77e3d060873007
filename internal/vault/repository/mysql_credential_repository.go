package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/briefnote/briefnote/internal/database"
	apperrors "github.com/briefnote/briefnote/internal/errors"
	"github.com/briefnote/briefnote/internal/vault/domain"
)

const mysqlCredentialColumns = `id, label, type, username_encrypted, password_encrypted,
		  api_key_encrypted, ssh_key_encrypted, secure_note_encrypted,
		  url, notes, sort_order, created_by, created_at, updated_at`

// MySQLCredentialRepository handles credential persistence for MySQL
type MySQLCredentialRepository struct {
	db *sql.DB
}

// NewMySQLCredentialRepository creates a new MySQLCredentialRepository
func NewMySQLCredentialRepository(db *sql.DB) *MySQLCredentialRepository {
	return &MySQLCredentialRepository{
		db: db,
	}
}

// Create inserts a new credential and assigns the generated ID.
func (r *MySQLCredentialRepository) Create(ctx context.Context, credential *domain.Credential) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO credentials (label, type, username_encrypted, password_encrypted,
			  api_key_encrypted, ssh_key_encrypted, secure_note_encrypted,
			  url, notes, sort_order, created_by, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	result, err := querier.ExecContext(ctx, query,
		credential.Label, credential.Type,
		credential.UsernameEncrypted, credential.PasswordEncrypted,
		credential.APIKeyEncrypted, credential.SSHKeyEncrypted, credential.SecureNoteEncrypted,
		credential.URL, credential.Notes, credential.SortOrder, credential.CreatedBy,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create credential")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to get credential insert id")
	}
	credential.ID = id
	return nil
}

// GetByID retrieves a credential by ID, including its sealed envelopes.
func (r *MySQLCredentialRepository) GetByID(ctx context.Context, id int64) (*domain.Credential, error) {
	var credential domain.Credential
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlCredentialColumns + ` FROM credentials WHERE id = ?`

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
func (r *MySQLCredentialRepository) List(ctx context.Context) ([]*domain.Credential, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlCredentialColumns + ` FROM credentials ORDER BY sort_order ASC, id ASC`

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
func (r *MySQLCredentialRepository) Update(ctx context.Context, credential *domain.Credential) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE credentials SET label = ?, type = ?,
			  username_encrypted = ?, password_encrypted = ?,
			  api_key_encrypted = ?, ssh_key_encrypted = ?, secure_note_encrypted = ?,
			  url = ?, notes = ?, sort_order = ?, updated_at = NOW()
			  WHERE id = ?`

	_, err := querier.ExecContext(ctx, query,
		credential.Label, credential.Type,
		credential.UsernameEncrypted, credential.PasswordEncrypted,
		credential.APIKeyEncrypted, credential.SSHKeyEncrypted, credential.SecureNoteEncrypted,
		credential.URL, credential.Notes, credential.SortOrder,
		credential.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update credential")
	}

	// RowsAffected is unreliable for no-op updates on MySQL, so existence is
	// checked by the usecase's preceding GetByID instead.
	return nil
}

// Delete permanently removes a credential.
func (r *MySQLCredentialRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM credentials WHERE id = ?`

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
func (r *MySQLCredentialRepository) UpdateSortOrder(ctx context.Context, id int64, sortOrder int) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE credentials SET sort_order = ?, updated_at = NOW() WHERE id = ?`

	_, err := querier.ExecContext(ctx, query, sortOrder, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update credential sort order")
	}

	return nil
}
