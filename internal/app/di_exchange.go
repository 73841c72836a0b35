package app

import (
	"fmt"

	exchangeHTTP "github.com/allisson/delegations/internal/exchange/http"
	exchangeRepository "github.com/allisson/delegations/internal/exchange/repository"
	exchangeUseCase "github.com/allisson/delegations/internal/exchange/usecase"
)

// ExchangeDataRepository returns the exchange data repository based on database driver.
func (c *Container) ExchangeDataRepository() (exchangeUseCase.ExchangeDataRepository, error) {
	return c.exchangeDataRepo.get(func() (exchangeUseCase.ExchangeDataRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for exchange data repository: %w", err)
		}

		switch c.config.DBDriver {
		case "postgres":
			return exchangeRepository.NewPostgreSQLExchangeDataRepository(db), nil
		case "mysql":
			return exchangeRepository.NewMySQLExchangeDataRepository(db), nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
}

// ExchangeDataMapRepository returns the exchange data map repository based on database driver.
func (c *Container) ExchangeDataMapRepository() (exchangeUseCase.ExchangeDataMapRepository, error) {
	return c.exchangeDataMapRepo.get(func() (exchangeUseCase.ExchangeDataMapRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for exchange data map repository: %w", err)
		}

		switch c.config.DBDriver {
		case "postgres":
			return exchangeRepository.NewPostgreSQLExchangeDataMapRepository(db), nil
		case "mysql":
			return exchangeRepository.NewMySQLExchangeDataMapRepository(db), nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
}

// ExchangeDataUseCase returns the exchange data use case.
// Participants are resolved through the crypto actor repository.
func (c *Container) ExchangeDataUseCase() (exchangeUseCase.ExchangeDataUseCase, error) {
	return c.exchangeDataUseCase.get(func() (exchangeUseCase.ExchangeDataUseCase, error) {
		txManager, err := c.TxManager()
		if err != nil {
			return nil, fmt.Errorf("failed to get tx manager for exchange data use case: %w", err)
		}

		repo, err := c.ExchangeDataRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get repository for exchange data use case: %w", err)
		}

		dataOwners, err := c.CryptoActorRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get crypto actor repository for exchange data use case: %w", err)
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for exchange data use case: %w", err)
		}

		useCase := exchangeUseCase.NewExchangeDataUseCase(txManager, repo, dataOwners, c.Logger())
		return exchangeUseCase.NewExchangeDataUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// ExchangeDataMapUseCase returns the exchange data map use case.
func (c *Container) ExchangeDataMapUseCase() (exchangeUseCase.ExchangeDataMapUseCase, error) {
	return c.exchangeDataMapUseCase.get(func() (exchangeUseCase.ExchangeDataMapUseCase, error) {
		txManager, err := c.TxManager()
		if err != nil {
			return nil, fmt.Errorf("failed to get tx manager for exchange data map use case: %w", err)
		}

		repo, err := c.ExchangeDataMapRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get repository for exchange data map use case: %w", err)
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for exchange data map use case: %w", err)
		}

		useCase := exchangeUseCase.NewExchangeDataMapUseCase(txManager, repo)
		return exchangeUseCase.NewExchangeDataMapUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// ExchangeDataHandler returns the HTTP handler for exchange data operations.
func (c *Container) ExchangeDataHandler() (*exchangeHTTP.ExchangeDataHandler, error) {
	return c.exchangeDataHandler.get(func() (*exchangeHTTP.ExchangeDataHandler, error) {
		useCase, err := c.ExchangeDataUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get use case for exchange data handler: %w", err)
		}
		return exchangeHTTP.NewExchangeDataHandler(useCase, c.Logger()), nil
	})
}

// ExchangeDataMapHandler returns the HTTP handler for exchange data map operations.
func (c *Container) ExchangeDataMapHandler() (*exchangeHTTP.ExchangeDataMapHandler, error) {
	return c.exchangeDataMapHandler.get(func() (*exchangeHTTP.ExchangeDataMapHandler, error) {
		useCase, err := c.ExchangeDataMapUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get use case for exchange data map handler: %w", err)
		}
		return exchangeHTTP.NewExchangeDataMapHandler(useCase, c.Logger()), nil
	})
}
