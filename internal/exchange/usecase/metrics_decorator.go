package usecase

import (
	"context"
	"time"

	"github.com/allisson/delegations/internal/exchange/domain"
	"github.com/allisson/delegations/internal/metrics"
)

const metricsDomain = "exchange"

func recordMetrics(ctx context.Context, m metrics.BusinessMetrics, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.RecordOperation(ctx, metricsDomain, operation, status)
	m.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

type exchangeDataUseCaseWithMetrics struct {
	next    ExchangeDataUseCase
	metrics metrics.BusinessMetrics
}

// NewExchangeDataUseCaseWithMetrics wraps an ExchangeDataUseCase with metrics recording.
func NewExchangeDataUseCaseWithMetrics(useCase ExchangeDataUseCase, m metrics.BusinessMetrics) ExchangeDataUseCase {
	return &exchangeDataUseCaseWithMetrics{next: useCase, metrics: m}
}

func (e *exchangeDataUseCaseWithMetrics) Create(
	ctx context.Context,
	ed *domain.ExchangeData,
) (*domain.ExchangeData, error) {
	start := time.Now()
	created, err := e.next.Create(ctx, ed)
	recordMetrics(ctx, e.metrics, "exchange_data_create", start, err)
	return created, err
}

func (e *exchangeDataUseCaseWithMetrics) Get(ctx context.Context, id string) (*domain.ExchangeData, error) {
	start := time.Now()
	ed, err := e.next.Get(ctx, id)
	recordMetrics(ctx, e.metrics, "exchange_data_get", start, err)
	return ed, err
}

func (e *exchangeDataUseCaseWithMetrics) ListByParticipants(
	ctx context.Context,
	delegator, delegate string,
) ([]*domain.ExchangeData, error) {
	start := time.Now()
	list, err := e.next.ListByParticipants(ctx, delegator, delegate)
	recordMetrics(ctx, e.metrics, "exchange_data_list_by_participants", start, err)
	return list, err
}

func (e *exchangeDataUseCaseWithMetrics) ListByParticipant(
	ctx context.Context,
	ownerID string,
	offset, limit int,
) ([]*domain.ExchangeData, error) {
	start := time.Now()
	list, err := e.next.ListByParticipant(ctx, ownerID, offset, limit)
	recordMetrics(ctx, e.metrics, "exchange_data_list_by_participant", start, err)
	return list, err
}

func (e *exchangeDataUseCaseWithMetrics) Update(
	ctx context.Context,
	ed *domain.ExchangeData,
) (*domain.ExchangeData, error) {
	start := time.Now()
	updated, err := e.next.Update(ctx, ed)
	recordMetrics(ctx, e.metrics, "exchange_data_update", start, err)
	return updated, err
}

type exchangeDataMapUseCaseWithMetrics struct {
	next    ExchangeDataMapUseCase
	metrics metrics.BusinessMetrics
}

// NewExchangeDataMapUseCaseWithMetrics wraps an ExchangeDataMapUseCase with metrics recording.
func NewExchangeDataMapUseCaseWithMetrics(
	useCase ExchangeDataMapUseCase,
	m metrics.BusinessMetrics,
) ExchangeDataMapUseCase {
	return &exchangeDataMapUseCaseWithMetrics{next: useCase, metrics: m}
}

func (e *exchangeDataMapUseCaseWithMetrics) CreateOrAppendMaps(
	ctx context.Context,
	maps []*domain.ExchangeDataMap,
) ([]*domain.ExchangeDataMap, error) {
	start := time.Now()
	saved, err := e.next.CreateOrAppendMaps(ctx, maps)
	recordMetrics(ctx, e.metrics, "exchange_data_map_create_or_append", start, err)
	return saved, err
}

func (e *exchangeDataMapUseCaseWithMetrics) GetMap(ctx context.Context, id string) (*domain.ExchangeDataMap, error) {
	start := time.Now()
	m, err := e.next.GetMap(ctx, id)
	recordMetrics(ctx, e.metrics, "exchange_data_map_get", start, err)
	return m, err
}

func (e *exchangeDataMapUseCaseWithMetrics) GetMaps(
	ctx context.Context,
	ids []string,
) ([]*domain.ExchangeDataMap, error) {
	start := time.Now()
	maps, err := e.next.GetMaps(ctx, ids)
	recordMetrics(ctx, e.metrics, "exchange_data_map_get_many", start, err)
	return maps, err
}
