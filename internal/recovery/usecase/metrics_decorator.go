package usecase

import (
	"context"
	"time"

	"github.com/allisson/delegations/internal/metrics"
	"github.com/allisson/delegations/internal/recovery/domain"
)

type recoveryDataUseCaseWithMetrics struct {
	next    RecoveryDataUseCase
	metrics metrics.BusinessMetrics
}

// NewRecoveryDataUseCaseWithMetrics wraps a RecoveryDataUseCase with metrics recording.
func NewRecoveryDataUseCaseWithMetrics(useCase RecoveryDataUseCase, m metrics.BusinessMetrics) RecoveryDataUseCase {
	return &recoveryDataUseCaseWithMetrics{next: useCase, metrics: m}
}

func (r *recoveryDataUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.metrics.RecordOperation(ctx, "recovery", operation, status)
	r.metrics.RecordDuration(ctx, "recovery", operation, time.Since(start), status)
}

func (r *recoveryDataUseCaseWithMetrics) Create(
	ctx context.Context,
	rd *domain.RecoveryData,
) (*domain.RecoveryData, error) {
	start := time.Now()
	created, err := r.next.Create(ctx, rd)
	r.record(ctx, "recovery_data_create", start, err)
	return created, err
}

func (r *recoveryDataUseCaseWithMetrics) Get(ctx context.Context, id string) (*domain.RecoveryData, error) {
	start := time.Now()
	rd, err := r.next.Get(ctx, id)
	r.record(ctx, "recovery_data_get", start, err)
	return rd, err
}

func (r *recoveryDataUseCaseWithMetrics) ListByRecipient(
	ctx context.Context,
	recipient string,
	recoveryType *domain.Type,
) ([]*domain.RecoveryData, error) {
	start := time.Now()
	list, err := r.next.ListByRecipient(ctx, recipient, recoveryType)
	r.record(ctx, "recovery_data_list", start, err)
	return list, err
}

func (r *recoveryDataUseCaseWithMetrics) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := r.next.Delete(ctx, id)
	r.record(ctx, "recovery_data_delete", start, err)
	return err
}

func (r *recoveryDataUseCaseWithMetrics) Purge(ctx context.Context, id string) error {
	start := time.Now()
	err := r.next.Purge(ctx, id)
	r.record(ctx, "recovery_data_purge", start, err)
	return err
}

func (r *recoveryDataUseCaseWithMetrics) PurgeAllFor(
	ctx context.Context,
	recipient string,
	recoveryType *domain.Type,
) (int64, error) {
	start := time.Now()
	count, err := r.next.PurgeAllFor(ctx, recipient, recoveryType)
	r.record(ctx, "recovery_data_purge_all", start, err)
	return count, err
}

func (r *recoveryDataUseCaseWithMetrics) PurgeExpired(ctx context.Context, now time.Time, dryRun bool) (int64, error) {
	start := time.Now()
	count, err := r.next.PurgeExpired(ctx, now, dryRun)
	r.record(ctx, "recovery_data_purge_expired", start, err)
	return count, err
}
