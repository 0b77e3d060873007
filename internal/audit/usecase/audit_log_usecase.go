// Package usecase implements the audit trail business logic.
package usecase

import (
	"context"
	"time"

	"github.com/briefnote/briefnote/internal/audit/domain"
)

// AuditLogRepository defines the persistence operations the usecase needs.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
	List(ctx context.Context, filter domain.Filter, limit, offset int) ([]*domain.AuditLog, error)
	Count(ctx context.Context, filter domain.Filter) (int64, error)
	DeleteBefore(ctx context.Context, cutoff time.Time, dryRun bool) (int64, error)
}

// UseCase defines the interface for audit trail business logic.
type UseCase interface {
	// Log appends a trail entry. The client IP is taken from the context
	// when the entry does not carry one.
	Log(ctx context.Context, entry *domain.AuditLog) error

	// List returns a page of entries newest first plus the total count of
	// entries matching the filter.
	List(ctx context.Context, filter domain.Filter, page, perPage int) ([]*domain.AuditLog, int64, error)

	// DeleteOlderThan prunes entries older than the given number of days.
	// Zero or negative days is a no-op. With dryRun set it only reports
	// how many entries would be removed.
	DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error)
}

// AuditLogUseCase handles the append-only audit trail.
type AuditLogUseCase struct {
	auditLogRepo AuditLogRepository

	// now is replaceable for tests.
	now func() time.Time
}

// NewAuditLogUseCase creates a new AuditLogUseCase.
func NewAuditLogUseCase(auditLogRepo AuditLogRepository) *AuditLogUseCase {
	return &AuditLogUseCase{
		auditLogRepo: auditLogRepo,
		now:          time.Now,
	}
}

// Log appends a trail entry.
func (uc *AuditLogUseCase) Log(ctx context.Context, entry *domain.AuditLog) error {
	if !entry.Action.Valid() {
		return domain.ErrInvalidAction
	}

	if entry.IPAddress == "" {
		entry.IPAddress = domain.ClientIP(ctx)
	}

	return uc.auditLogRepo.Create(ctx, entry)
}

// List returns a page of entries newest first.
func (uc *AuditLogUseCase) List(
	ctx context.Context,
	filter domain.Filter,
	page, perPage int,
) ([]*domain.AuditLog, int64, error) {
	if filter.Action != "" && !filter.Action.Valid() {
		return nil, 0, domain.ErrInvalidAction
	}

	total, err := uc.auditLogRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage
	entries, err := uc.auditLogRepo.List(ctx, filter, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// DeleteOlderThan prunes entries older than the given number of days.
func (uc *AuditLogUseCase) DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days <= 0 {
		return 0, nil
	}

	cutoff := uc.now().UTC().AddDate(0, 0, -days)
	return uc.auditLogRepo.DeleteBefore(ctx, cutoff, dryRun)
}
