// Package usecase implements recovery data storage and purging.
package usecase

import (
	"context"
	"time"

	"github.com/allisson/delegations/internal/recovery/domain"
)

// RecoveryDataRepository defines the persistence operations for recovery data.
type RecoveryDataRepository interface {
	Create(ctx context.Context, r *domain.RecoveryData) error
	Get(ctx context.Context, id string) (*domain.RecoveryData, error)
	// ListByRecipient returns the records of recipient, optionally limited to one type.
	ListByRecipient(ctx context.Context, recipient string, recoveryType *domain.Type) ([]*domain.RecoveryData, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
	DeleteByRecipient(ctx context.Context, recipient string, recoveryType *domain.Type) (int64, error)
	// DeleteExpired removes up to limit records expired at or before now.
	DeleteExpired(ctx context.Context, now time.Time, limit int) (int64, error)
	CountExpired(ctx context.Context, now time.Time) (int64, error)
}

// RecoveryDataUseCase defines the recovery data business operations.
type RecoveryDataUseCase interface {
	Create(ctx context.Context, r *domain.RecoveryData) (*domain.RecoveryData, error)
	// Get returns the record, reporting expired records as not found.
	Get(ctx context.Context, id string) (*domain.RecoveryData, error)
	ListByRecipient(ctx context.Context, recipient string, recoveryType *domain.Type) ([]*domain.RecoveryData, error)
	// Delete always fails with ErrSoftDeleteNotSupported.
	Delete(ctx context.Context, id string) error
	Purge(ctx context.Context, id string) error
	PurgeAllFor(ctx context.Context, recipient string, recoveryType *domain.Type) (int64, error)
	// PurgeExpired removes every record expired at or before now. With dryRun it only counts them.
	PurgeExpired(ctx context.Context, now time.Time, dryRun bool) (int64, error)
}
