package app

import (
	"fmt"

	delegationHTTP "github.com/allisson/delegations/internal/delegation/http"
	delegationRepository "github.com/allisson/delegations/internal/delegation/repository"
	delegationUseCase "github.com/allisson/delegations/internal/delegation/usecase"
)

// EntityMetadataRepository returns the security metadata store based on database driver.
func (c *Container) EntityMetadataRepository() (delegationUseCase.EntityMetadataRepository, error) {
	return c.entityMetadataRepo.get(func() (delegationUseCase.EntityMetadataRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for entity metadata repository: %w", err)
		}

		switch c.config.DBDriver {
		case "postgres":
			return delegationRepository.NewPostgreSQLEntityMetadataRepository(db), nil
		case "mysql":
			return delegationRepository.NewMySQLEntityMetadataRepository(db), nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
}

// SecurityMetadataUseCase returns the security metadata use case.
func (c *Container) SecurityMetadataUseCase() (delegationUseCase.SecurityMetadataUseCase, error) {
	return c.securityMetadataUseCase.get(func() (delegationUseCase.SecurityMetadataUseCase, error) {
		txManager, err := c.TxManager()
		if err != nil {
			return nil, fmt.Errorf("failed to get tx manager for security metadata use case: %w", err)
		}

		repo, err := c.EntityMetadataRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get repository for security metadata use case: %w", err)
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for security metadata use case: %w", err)
		}

		useCase := delegationUseCase.NewSecurityMetadataUseCase(txManager, repo, c.Logger())
		return delegationUseCase.NewSecurityMetadataUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// SecurityMetadataHandler returns the HTTP handler for security metadata operations.
func (c *Container) SecurityMetadataHandler() (*delegationHTTP.SecurityMetadataHandler, error) {
	return c.securityMetadataHandler.get(func() (*delegationHTTP.SecurityMetadataHandler, error) {
		useCase, err := c.SecurityMetadataUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get use case for security metadata handler: %w", err)
		}
		return delegationHTTP.NewSecurityMetadataHandler(useCase, c.Logger()), nil
	})
}
