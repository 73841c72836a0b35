package usecase

import (
	"context"
	"time"

	"github.com/allisson/delegations/internal/dataowner/domain"
	"github.com/allisson/delegations/internal/metrics"
)

type cryptoActorUseCaseWithMetrics struct {
	next    CryptoActorUseCase
	metrics metrics.BusinessMetrics
}

// NewCryptoActorUseCaseWithMetrics wraps a CryptoActorUseCase with metrics recording.
func NewCryptoActorUseCaseWithMetrics(useCase CryptoActorUseCase, m metrics.BusinessMetrics) CryptoActorUseCase {
	return &cryptoActorUseCaseWithMetrics{next: useCase, metrics: m}
}

func (c *cryptoActorUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.metrics.RecordOperation(ctx, "dataowner", operation, status)
	c.metrics.RecordDuration(ctx, "dataowner", operation, time.Since(start), status)
}

func (c *cryptoActorUseCaseWithMetrics) GetCryptoActor(
	ctx context.Context,
	ownerType domain.DataOwnerType,
	id string,
) (*domain.CryptoActorStubWithType, error) {
	start := time.Now()
	actor, err := c.next.GetCryptoActor(ctx, ownerType, id)
	c.record(ctx, "crypto_actor_get", start, err)
	return actor, err
}

func (c *cryptoActorUseCaseWithMetrics) PutCryptoActor(
	ctx context.Context,
	actor *domain.CryptoActorStubWithType,
) (*domain.CryptoActorStubWithType, error) {
	start := time.Now()
	saved, err := c.next.PutCryptoActor(ctx, actor)
	c.record(ctx, "crypto_actor_put", start, err)
	return saved, err
}
