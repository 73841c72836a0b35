package app

import (
	"fmt"

	recoveryHTTP "github.com/allisson/delegations/internal/recovery/http"
	recoveryRepository "github.com/allisson/delegations/internal/recovery/repository"
	recoveryUseCase "github.com/allisson/delegations/internal/recovery/usecase"
)

// RecoveryDataRepository returns the recovery data repository based on database driver.
func (c *Container) RecoveryDataRepository() (recoveryUseCase.RecoveryDataRepository, error) {
	return c.recoveryDataRepo.get(func() (recoveryUseCase.RecoveryDataRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for recovery data repository: %w", err)
		}

		switch c.config.DBDriver {
		case "postgres":
			return recoveryRepository.NewPostgreSQLRecoveryDataRepository(db), nil
		case "mysql":
			return recoveryRepository.NewMySQLRecoveryDataRepository(db), nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
}

// RecoveryDataUseCase returns the recovery data use case.
func (c *Container) RecoveryDataUseCase() (recoveryUseCase.RecoveryDataUseCase, error) {
	return c.recoveryDataUseCase.get(func() (recoveryUseCase.RecoveryDataUseCase, error) {
		txManager, err := c.TxManager()
		if err != nil {
			return nil, fmt.Errorf("failed to get tx manager for recovery data use case: %w", err)
		}

		repo, err := c.RecoveryDataRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get repository for recovery data use case: %w", err)
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for recovery data use case: %w", err)
		}

		useCase := recoveryUseCase.NewRecoveryDataUseCase(txManager, repo, c.config.RecoveryPurgeBatchSize, c.Logger())
		return recoveryUseCase.NewRecoveryDataUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// RecoveryDataHandler returns the HTTP handler for recovery data operations.
func (c *Container) RecoveryDataHandler() (*recoveryHTTP.RecoveryDataHandler, error) {
	return c.recoveryDataHandler.get(func() (*recoveryHTTP.RecoveryDataHandler, error) {
		useCase, err := c.RecoveryDataUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get use case for recovery data handler: %w", err)
		}
		return recoveryHTTP.NewRecoveryDataHandler(useCase, c.Logger()), nil
	})
}

// PurgeWorker returns the background worker removing expired recovery data,
// or nil when the worker is disabled.
func (c *Container) PurgeWorker() (*recoveryUseCase.PurgeWorker, error) {
	return c.purgeWorker.get(func() (*recoveryUseCase.PurgeWorker, error) {
		if !c.config.RecoveryPurgeEnabled {
			return nil, nil
		}

		useCase, err := c.RecoveryDataUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get use case for purge worker: %w", err)
		}
		worker, err := recoveryUseCase.NewPurgeWorker(c.config.RecoveryPurgeInterval, useCase, c.Logger())
		if err != nil {
			return nil, fmt.Errorf("failed to create purge worker: %w", err)
		}
		return worker, nil
	})
}
