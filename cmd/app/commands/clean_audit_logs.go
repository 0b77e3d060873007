package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	auditUseCase "github.com/briefnote/briefnote/internal/audit/usecase"
	settingsUseCase "github.com/briefnote/briefnote/internal/settings/usecase"
)

// RunCleanAuditLogs deletes audit logs older than the specified number of days.
// When daysSet is false the stored audit_log_retention_days setting is used
// instead, with zero meaning retention is disabled and nothing is deleted.
// Supports dry-run mode to preview deletion count and both text/JSON output formats.
//
// Requirements: Database must be migrated and accessible.
func RunCleanAuditLogs(
	ctx context.Context,
	auditLogUseCase auditUseCase.UseCase,
	settings settingsUseCase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	days int,
	daysSet bool,
	dryRun bool,
	format string,
) error {
	if !daysSet {
		stored, err := settings.Get(ctx)
		if err != nil {
			return fmt.Errorf("failed to read retention setting: %w", err)
		}
		days = stored.AuditLogRetentionDays
		if days <= 0 {
			logger.Info("audit log retention is disabled, nothing to delete")
			_, _ = fmt.Fprintln(writer, "Audit log retention is disabled; nothing to delete")
			return nil
		}
	}

	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}

	logger.Info("cleaning audit logs",
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	count, err := auditLogUseCase.DeleteOlderThan(ctx, days, dryRun)
	if err != nil {
		return fmt.Errorf("failed to delete audit logs: %w", err)
	}

	if format == "json" {
		outputCleanJSON(writer, count, days, dryRun)
	} else {
		outputCleanText(writer, count, days, dryRun)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	return nil
}

// outputCleanText outputs the result in human-readable text format.
func outputCleanText(writer io.Writer, count int64, days int, dryRun bool) {
	if dryRun {
		_, _ = fmt.Fprintf(writer, "Dry-run mode: Would delete %d audit log(s) older than %d day(s)\n", count, days)
	} else {
		_, _ = fmt.Fprintf(writer, "Successfully deleted %d audit log(s) older than %d day(s)\n", count, days)
	}
}

// outputCleanJSON outputs the result in JSON format for machine consumption.
func outputCleanJSON(writer io.Writer, count int64, days int, dryRun bool) {
	result := map[string]interface{}{
		"count":   count,
		"days":    days,
		"dry_run": dryRun,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
