package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	recoveryUseCase "github.com/allisson/delegations/internal/recovery/usecase"
)

// RunPurgeExpiredRecoveryData deletes the recovery data expired at now.
// With dryRun it only reports how many records would be deleted.
func RunPurgeExpiredRecoveryData(
	ctx context.Context,
	useCase recoveryUseCase.RecoveryDataUseCase,
	logger *slog.Logger,
	writer io.Writer,
	now time.Time,
	dryRun bool,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("purging expired recovery data",
		slog.Time("now", now),
		slog.Bool("dry_run", dryRun),
	)

	count, err := useCase.PurgeExpired(ctx, now, dryRun)
	if err != nil {
		return fmt.Errorf("failed to purge expired recovery data: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, map[string]any{
			"count":   count,
			"dry_run": dryRun,
			"now":     now.Format(time.RFC3339),
		}); err != nil {
			return err
		}
	} else if dryRun {
		_, _ = fmt.Fprintf(writer, "Dry-run mode: Would delete %d expired recovery data record(s)\n", count)
	} else {
		_, _ = fmt.Fprintf(writer, "Successfully deleted %d expired recovery data record(s)\n", count)
	}

	logger.Info("purge completed", slog.Int64("count", count), slog.Bool("dry_run", dryRun))
	return nil
}
