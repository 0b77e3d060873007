package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/briefnote/briefnote/internal/errors"
	"github.com/briefnote/briefnote/internal/user/domain"
	"github.com/briefnote/briefnote/internal/user/repository"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	return db, mock
}

func userRows(user *domain.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "email", "password_hash", "token_hash", "is_active", "is_admin",
		"can_view_credentials", "can_edit_credentials", "can_view_notes", "can_edit_notes",
		"created_at", "updated_at",
	}).AddRow(
		user.ID, user.Name, user.Email, user.PasswordHash, user.TokenHash, user.IsActive, user.IsAdmin,
		user.CanViewCredentials, user.CanEditCredentials, user.CanViewNotes, user.CanEditNotes,
		user.CreatedAt, user.UpdatedAt,
	)
}

func TestPostgreSQLUserRepository_Create(t *testing.T) {
	t.Run("assigns the generated id", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := repository.NewPostgreSQLUserRepository(db)

		user := &domain.User{
			Name:         "Ada",
			Email:        "ada@example.com",
			PasswordHash: "$argon2id$hash",
			TokenHash:    "token-hash",
			IsActive:     true,
		}

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
			WithArgs(user.Name, user.Email, user.PasswordHash, user.TokenHash, true, false,
				false, false, false, false).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

		err := repo.Create(context.Background(), user)
		require.NoError(t, err)
		assert.Equal(t, int64(9), user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps duplicate email to ErrUserAlreadyExists", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := repository.NewPostgreSQLUserRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

		err := repo.Create(context.Background(), &domain.User{Name: "Ada", Email: "ada@example.com"})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestPostgreSQLUserRepository_GetByID(t *testing.T) {
	t.Run("returns the user", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := repository.NewPostgreSQLUserRepository(db)

		now := time.Now().UTC()
		expected := &domain.User{
			ID: 9, Name: "Ada", Email: "ada@example.com",
			PasswordHash: "$argon2id$hash", TokenHash: "token-hash",
			IsActive: true, CanEditCredentials: true,
			CreatedAt: now, UpdatedAt: now,
		}

		mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
			WithArgs(int64(9)).
			WillReturnRows(userRows(expected))

		user, err := repo.GetByID(context.Background(), 9)
		require.NoError(t, err)
		assert.Equal(t, expected, user)
	})

	t.Run("returns ErrUserNotFound for a missing user", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := repository.NewPostgreSQLUserRepository(db)

		mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
			WithArgs(int64(404)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), 404)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPostgreSQLUserRepository_GetByTokenHash(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewPostgreSQLUserRepository(db)

	expected := &domain.User{ID: 9, Name: "Ada", TokenHash: "token-hash", IsActive: true}

	mock.ExpectQuery(`SELECT .+ FROM users WHERE token_hash = \$1`).
		WithArgs("token-hash").
		WillReturnRows(userRows(expected))

	user, err := repo.GetByTokenHash(context.Background(), "token-hash")
	require.NoError(t, err)
	assert.Equal(t, expected, user)
}
