package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	vaultService "github.com/briefnote/briefnote/internal/vault/service"
)

// RunRegenerateRootKey destructively replaces the vault root key. Every
// envelope sealed under the previous key becomes unreadable, so the command
// refuses to run without explicit confirmation.
//
// Requirements: Database must be migrated and accessible.
func RunRegenerateRootKey(
	ctx context.Context,
	keyManager vaultService.KeyManager,
	logger *slog.Logger,
	writer io.Writer,
	confirm bool,
) error {
	if !confirm {
		return fmt.Errorf("refusing to regenerate the root key without --confirm: all existing credential secrets become unreadable")
	}

	logger.Warn("regenerating vault root key")

	if err := keyManager.Regenerate(ctx); err != nil {
		return fmt.Errorf("failed to regenerate root key: %w", err)
	}

	_, _ = fmt.Fprintln(writer, "Root key regenerated. Existing credential secrets are no longer readable.")

	logger.Info("root key regenerated")

	return nil
}
