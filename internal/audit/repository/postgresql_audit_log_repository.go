// Package repository provides data persistence implementations for the audit trail.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/briefnote/briefnote/internal/audit/domain"
	"github.com/briefnote/briefnote/internal/database"
	apperrors "github.com/briefnote/briefnote/internal/errors"
)

// PostgreSQLAuditLogRepository handles audit trail persistence for PostgreSQL
type PostgreSQLAuditLogRepository struct {
	db *sql.DB
}

// NewPostgreSQLAuditLogRepository creates a new PostgreSQLAuditLogRepository
func NewPostgreSQLAuditLogRepository(db *sql.DB) *PostgreSQLAuditLogRepository {
	return &PostgreSQLAuditLogRepository{
		db: db,
	}
}

// Create appends a new audit entry and assigns the generated ID.
func (r *PostgreSQLAuditLogRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO audit_logs (user_id, action_type, credential_label, credential_id,
			  details, ip_address, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW())
			  RETURNING id, created_at`

	err := querier.QueryRowContext(ctx, query,
		entry.UserID, entry.Action, entry.CredentialLabel, entry.CredentialID,
		entry.Details, entry.IPAddress,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit entry")
	}
	return nil
}

// buildPostgresFilter renders the filter as a WHERE clause with placeholders
// starting at $1.
func buildPostgresFilter(filter domain.Filter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	next := func() string {
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Action != "" {
		args = append(args, filter.Action)
		conditions = append(conditions, "a.action_type = "+next())
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conditions = append(conditions, "a.user_id = "+next())
	}
	if filter.CredentialID != nil {
		args = append(args, *filter.CredentialID)
		conditions = append(conditions, "a.credential_id = "+next())
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conditions = append(conditions, "a.created_at >= "+next())
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		conditions = append(conditions, "a.created_at <= "+next())
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// List retrieves audit entries newest first, with the actor display name
// joined in from the users table.
func (r *PostgreSQLAuditLogRepository) List(
	ctx context.Context,
	filter domain.Filter,
	limit, offset int,
) ([]*domain.AuditLog, error) {
	querier := database.GetTx(ctx, r.db)

	where, args := buildPostgresFilter(filter)
	query := `SELECT a.id, a.user_id, COALESCE(u.name, '') AS actor_name, a.action_type,
			  a.credential_label, a.credential_id, a.details, a.ip_address, a.created_at
			  FROM audit_logs a
			  LEFT JOIN users u ON u.id = a.user_id` + where +
		fmt.Sprintf(" ORDER BY a.created_at DESC, a.id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit entries")
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []*domain.AuditLog
	for rows.Next() {
		var entry domain.AuditLog
		err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.ActorName, &entry.Action,
			&entry.CredentialLabel, &entry.CredentialID, &entry.Details,
			&entry.IPAddress, &entry.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit entry")
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit entries")
	}

	return entries, nil
}

// Count returns the number of entries matching the filter.
func (r *PostgreSQLAuditLogRepository) Count(ctx context.Context, filter domain.Filter) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	where, args := buildPostgresFilter(filter)
	query := `SELECT COUNT(*) FROM audit_logs a` + where

	var count int64
	if err := querier.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count audit entries")
	}
	return count, nil
}

// DeleteBefore removes entries older than the cutoff. With dryRun set it
// only reports how many entries would be removed.
func (r *PostgreSQLAuditLogRepository) DeleteBefore(ctx context.Context, cutoff time.Time, dryRun bool) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	if dryRun {
		var count int64
		query := `SELECT COUNT(*) FROM audit_logs WHERE created_at < $1`
		if err := querier.QueryRowContext(ctx, query, cutoff).Scan(&count); err != nil {
			return 0, apperrors.Wrap(err, "failed to count prunable audit entries")
		}
		return count, nil
	}

	query := `DELETE FROM audit_logs WHERE created_at < $1`
	result, err := querier.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to prune audit entries")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}
	return affected, nil
}
