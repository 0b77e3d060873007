package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/briefnote/briefnote/internal/audit/domain"
	"github.com/briefnote/briefnote/internal/database"
	apperrors "github.com/briefnote/briefnote/internal/errors"
)

// MySQLAuditLogRepository handles audit trail persistence for MySQL
type MySQLAuditLogRepository struct {
	db *sql.DB
}

// NewMySQLAuditLogRepository creates a new MySQLAuditLogRepository
func NewMySQLAuditLogRepository(db *sql.DB) *MySQLAuditLogRepository {
	return &MySQLAuditLogRepository{
		db: db,
	}
}

// Create appends a new audit entry and assigns the generated ID.
func (r *MySQLAuditLogRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO audit_logs (user_id, action_type, credential_label, credential_id,
			  details, ip_address, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, NOW())`

	result, err := querier.ExecContext(ctx, query,
		entry.UserID, entry.Action, entry.CredentialLabel, entry.CredentialID,
		entry.Details, entry.IPAddress,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit entry")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to get audit entry insert id")
	}
	entry.ID = id

	// MySQL has no RETURNING, so the DB-assigned timestamp is read back.
	query = `SELECT created_at FROM audit_logs WHERE id = ?`
	if err := querier.QueryRowContext(ctx, query, id).Scan(&entry.CreatedAt); err != nil {
		return apperrors.Wrap(err, "failed to read audit entry timestamp")
	}
	return nil
}

// buildMySQLFilter renders the filter as a WHERE clause with ? placeholders.
func buildMySQLFilter(filter domain.Filter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.Action != "" {
		conditions = append(conditions, "a.action_type = ?")
		args = append(args, filter.Action)
	}
	if filter.UserID != nil {
		conditions = append(conditions, "a.user_id = ?")
		args = append(args, *filter.UserID)
	}
	if filter.CredentialID != nil {
		conditions = append(conditions, "a.credential_id = ?")
		args = append(args, *filter.CredentialID)
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, "a.created_at >= ?")
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, "a.created_at <= ?")
		args = append(args, *filter.DateTo)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// List retrieves audit entries newest first, with the actor display name
// joined in from the users table.
func (r *MySQLAuditLogRepository) List(
	ctx context.Context,
	filter domain.Filter,
	limit, offset int,
) ([]*domain.AuditLog, error) {
	querier := database.GetTx(ctx, r.db)

	where, args := buildMySQLFilter(filter)
	query := `SELECT a.id, a.user_id, COALESCE(u.name, '') AS actor_name, a.action_type,
			  a.credential_label, a.credential_id, a.details, a.ip_address, a.created_at
			  FROM audit_logs a
			  LEFT JOIN users u ON u.id = a.user_id` + where +
		` ORDER BY a.created_at DESC, a.id DESC LIMIT ? OFFSET ?`
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
func (r *MySQLAuditLogRepository) Count(ctx context.Context, filter domain.Filter) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	where, args := buildMySQLFilter(filter)
	query := `SELECT COUNT(*) FROM audit_logs a` + where

	var count int64
	if err := querier.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count audit entries")
	}
	return count, nil
}

// DeleteBefore removes entries older than the cutoff. With dryRun set it
// only reports how many entries would be removed.
func (r *MySQLAuditLogRepository) DeleteBefore(ctx context.Context, cutoff time.Time, dryRun bool) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	if dryRun {
		var count int64
		query := `SELECT COUNT(*) FROM audit_logs WHERE created_at < ?`
		if err := querier.QueryRowContext(ctx, query, cutoff).Scan(&count); err != nil {
			return 0, apperrors.Wrap(err, "failed to count prunable audit entries")
		}
		return count, nil
	}

	query := `DELETE FROM audit_logs WHERE created_at < ?`
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
