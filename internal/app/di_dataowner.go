package app

import (
	"fmt"

	dataownerHTTP "github.com/allisson/delegations/internal/dataowner/http"
	dataownerRepository "github.com/allisson/delegations/internal/dataowner/repository"
	dataownerUseCase "github.com/allisson/delegations/internal/dataowner/usecase"
)

// CryptoActorRepository returns the crypto actor repository based on database driver.
func (c *Container) CryptoActorRepository() (dataownerUseCase.CryptoActorRepository, error) {
	return c.cryptoActorRepo.get(func() (dataownerUseCase.CryptoActorRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for crypto actor repository: %w", err)
		}

		switch c.config.DBDriver {
		case "postgres":
			return dataownerRepository.NewPostgreSQLCryptoActorRepository(db), nil
		case "mysql":
			return dataownerRepository.NewMySQLCryptoActorRepository(db), nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
}

// CryptoActorUseCase returns the crypto actor use case.
func (c *Container) CryptoActorUseCase() (dataownerUseCase.CryptoActorUseCase, error) {
	return c.cryptoActorUseCase.get(func() (dataownerUseCase.CryptoActorUseCase, error) {
		txManager, err := c.TxManager()
		if err != nil {
			return nil, fmt.Errorf("failed to get tx manager for crypto actor use case: %w", err)
		}

		repo, err := c.CryptoActorRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get repository for crypto actor use case: %w", err)
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for crypto actor use case: %w", err)
		}

		useCase := dataownerUseCase.NewCryptoActorUseCase(txManager, repo, c.Logger())
		return dataownerUseCase.NewCryptoActorUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// CryptoActorHandler returns the HTTP handler for crypto actor operations.
func (c *Container) CryptoActorHandler() (*dataownerHTTP.CryptoActorHandler, error) {
	return c.cryptoActorHandler.get(func() (*dataownerHTTP.CryptoActorHandler, error) {
		useCase, err := c.CryptoActorUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get use case for crypto actor handler: %w", err)
		}
		return dataownerHTTP.NewCryptoActorHandler(useCase, c.Logger()), nil
	})
}
