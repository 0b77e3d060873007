// Package repository provides data persistence implementations for user entities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/briefnote/briefnote/internal/database"
	"github.com/briefnote/briefnote/internal/user/domain"

	apperrors "github.com/briefnote/briefnote/internal/errors"
)

const postgresUserColumns = `id, name, email, password_hash, token_hash, is_active, is_admin,
		  can_view_credentials, can_edit_credentials, can_view_notes, can_edit_notes,
		  created_at, updated_at`

// PostgreSQLUserRepository handles user persistence for PostgreSQL
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{
		db: db,
	}
}

// Create inserts a new user and assigns the generated ID.
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (name, email, password_hash, token_hash, is_active, is_admin,
			  can_view_credentials, can_edit_credentials, can_view_notes, can_edit_notes,
			  created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
			  RETURNING id`

	err := querier.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.TokenHash, user.IsActive, user.IsAdmin,
		user.CanViewCredentials, user.CanEditCredentials, user.CanViewNotes, user.CanEditNotes,
	).Scan(&user.ID)
	if err != nil {
		// Check for unique constraint violation (duplicate email)
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + postgresUserColumns + ` FROM users WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.TokenHash,
		&user.IsActive, &user.IsAdmin,
		&user.CanViewCredentials, &user.CanEditCredentials, &user.CanViewNotes, &user.CanEditNotes,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by id")
	}

	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *PostgreSQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + postgresUserColumns + ` FROM users WHERE email = $1`

	err := querier.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.TokenHash,
		&user.IsActive, &user.IsAdmin,
		&user.CanViewCredentials, &user.CanEditCredentials, &user.CanViewNotes, &user.CanEditNotes,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by email")
	}

	return &user, nil
}

// GetByTokenHash retrieves a user by the SHA-256 hash of their API token.
func (r *PostgreSQLUserRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.User, error) {
	var user domain.User
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + postgresUserColumns + ` FROM users WHERE token_hash = $1`

	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.TokenHash,
		&user.IsActive, &user.IsAdmin,
		&user.CanViewCredentials, &user.CanEditCredentials, &user.CanViewNotes, &user.CanEditNotes,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by token hash")
	}

	return &user, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
