package usecase

import (
	"context"
	"time"

	"github.com/allisson/delegations/internal/delegation/domain"
	"github.com/allisson/delegations/internal/metrics"
)

const metricsDomain = "delegation"

// securityMetadataUseCaseWithMetrics decorates SecurityMetadataUseCase with metrics instrumentation.
type securityMetadataUseCaseWithMetrics struct {
	next    SecurityMetadataUseCase
	metrics metrics.BusinessMetrics
}

// NewSecurityMetadataUseCaseWithMetrics wraps a SecurityMetadataUseCase with metrics recording.
func NewSecurityMetadataUseCaseWithMetrics(
	useCase SecurityMetadataUseCase,
	m metrics.BusinessMetrics,
) SecurityMetadataUseCase {
	return &securityMetadataUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *securityMetadataUseCaseWithMetrics) record(
	ctx context.Context,
	operation string,
	start time.Time,
	err error,
) {
	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	s.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// Get records metrics for metadata retrieval.
func (s *securityMetadataUseCaseWithMetrics) Get(
	ctx context.Context,
	entityType, entityID string,
) (*domain.EntityMetadata, error) {
	start := time.Now()
	doc, err := s.next.Get(ctx, entityType, entityID)
	s.record(ctx, "metadata_get", start, err)
	return doc, err
}

// Save records metrics for metadata writes.
func (s *securityMetadataUseCaseWithMetrics) Save(
	ctx context.Context,
	doc *domain.EntityMetadata,
) (*domain.EntityMetadata, error) {
	start := time.Now()
	saved, err := s.next.Save(ctx, doc)
	s.record(ctx, "metadata_save", start, err)
	return saved, err
}

// ResolveConflicts records metrics for revision conflict resolution.
func (s *securityMetadataUseCaseWithMetrics) ResolveConflicts(
	ctx context.Context,
	entityType, entityID string,
	revisions []domain.SecurityMetadata,
) (*domain.EntityMetadata, error) {
	start := time.Now()
	saved, err := s.next.ResolveConflicts(ctx, entityType, entityID, revisions)
	s.record(ctx, "metadata_resolve_conflicts", start, err)
	return saved, err
}

// MergeDuplicates records metrics for duplicate entity merges.
func (s *securityMetadataUseCaseWithMetrics) MergeDuplicates(
	ctx context.Context,
	entityType, intoID, fromID string,
) (*domain.EntityMetadata, error) {
	start := time.Now()
	saved, err := s.next.MergeDuplicates(ctx, entityType, intoID, fromID)
	s.record(ctx, "metadata_merge_duplicates", start, err)
	return saved, err
}

// ShareWith records metrics for new delegations.
func (s *securityMetadataUseCaseWithMetrics) ShareWith(
	ctx context.Context,
	entityType, entityID, key string,
	delegation domain.SecureDelegation,
	aliases []string,
) (*domain.EntityMetadata, error) {
	start := time.Now()
	saved, err := s.next.ShareWith(ctx, entityType, entityID, key, delegation, aliases)
	s.record(ctx, "delegation_share", start, err)
	return saved, err
}

// GetDelegation records metrics for delegation lookups.
func (s *securityMetadataUseCaseWithMetrics) GetDelegation(
	ctx context.Context,
	entityType, entityID, hashOrAlias string,
) (string, domain.SecureDelegation, error) {
	start := time.Now()
	key, delegation, err := s.next.GetDelegation(ctx, entityType, entityID, hashOrAlias)
	s.record(ctx, "delegation_get", start, err)
	return key, delegation, err
}

// AllAliasesOf records metrics for alias lookups.
func (s *securityMetadataUseCaseWithMetrics) AllAliasesOf(
	ctx context.Context,
	entityType, entityID, hash string,
) ([]string, error) {
	start := time.Now()
	aliases, err := s.next.AllAliasesOf(ctx, entityType, entityID, hash)
	s.record(ctx, "delegation_aliases", start, err)
	return aliases, err
}
