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

const mysqlUserColumns = `id, name, email, password_hash, token_hash, is_active, is_admin,
		  can_view_credentials, can_edit_credentials, can_view_notes, can_edit_notes,
		  created_at, updated_at`

// MySQLUserRepository handles user persistence for MySQL
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{
		db: db,
	}
}

// Create inserts a new user and assigns the generated ID.
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (name, email, password_hash, token_hash, is_active, is_admin,
			  can_view_credentials, can_edit_credentials, can_view_notes, can_edit_notes,
			  created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	result, err := querier.ExecContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.TokenHash, user.IsActive, user.IsAdmin,
		user.CanViewCredentials, user.CanEditCredentials, user.CanViewNotes, user.CanEditNotes,
	)
	if err != nil {
		// Check for unique constraint violation (duplicate email)
		if isMySQLDuplicateEntry(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to get user insert id")
	}
	user.ID = id
	return nil
}

// GetByID retrieves a user by ID
func (r *MySQLUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlUserColumns + ` FROM users WHERE id = ?`

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
func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlUserColumns + ` FROM users WHERE email = ?`

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
func (r *MySQLUserRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.User, error) {
	var user domain.User
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlUserColumns + ` FROM users WHERE token_hash = ?`

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

// isMySQLDuplicateEntry checks if the error is a MySQL duplicate entry violation
func isMySQLDuplicateEntry(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry ... for key ..."
	return strings.Contains(errMsg, "duplicate entry")
}
