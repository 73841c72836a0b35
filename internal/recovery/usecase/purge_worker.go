package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/allisson/delegations/internal/errors"
)

// PurgeWorker periodically removes expired recovery data.
type PurgeWorker struct {
	interval time.Duration
	useCase  RecoveryDataUseCase
	logger   *slog.Logger
	now      func() time.Time
}

// NewPurgeWorker creates a PurgeWorker running every interval. The interval must be positive.
func NewPurgeWorker(
	interval time.Duration,
	useCase RecoveryDataUseCase,
	logger *slog.Logger,
) (*PurgeWorker, error) {
	if interval <= 0 {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "purge interval must be positive, got %s", interval)
	}
	return &PurgeWorker{
		interval: interval,
		useCase:  useCase,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// Start runs the purge loop until ctx is cancelled and returns ctx.Err().
func (w *PurgeWorker) Start(ctx context.Context) error {
	w.logger.Info("starting recovery data purge worker", slog.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stopping recovery data purge worker")
			return ctx.Err()
		case <-ticker.C:
			if _, err := w.useCase.PurgeExpired(ctx, w.now(), false); err != nil {
				w.logger.Error("failed to purge expired recovery data", slog.Any("error", err))
			}
		}
	}
}
