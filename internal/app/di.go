// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/allisson/delegations/internal/config"
	"github.com/allisson/delegations/internal/database"
	dataownerHTTP "github.com/allisson/delegations/internal/dataowner/http"
	dataownerUseCase "github.com/allisson/delegations/internal/dataowner/usecase"
	delegationHTTP "github.com/allisson/delegations/internal/delegation/http"
	delegationUseCase "github.com/allisson/delegations/internal/delegation/usecase"
	exchangeHTTP "github.com/allisson/delegations/internal/exchange/http"
	exchangeUseCase "github.com/allisson/delegations/internal/exchange/usecase"
	"github.com/allisson/delegations/internal/http"
	"github.com/allisson/delegations/internal/metrics"
	recoveryHTTP "github.com/allisson/delegations/internal/recovery/http"
	recoveryUseCase "github.com/allisson/delegations/internal/recovery/usecase"
)

// lazy holds a component built on first access. The first result, value or error, is kept.
type lazy[T any] struct {
	once  sync.Once
	value T
	err   error
}

func (l *lazy[T]) get(init func() (T, error)) (T, error) {
	l.once.Do(func() {
		l.value, l.err = init()
	})
	return l.value, l.err
}

// Container holds all application dependencies and provides methods to access them.
// Components are created on first access and shared afterwards.
type Container struct {
	config *config.Config

	// ctx bounds background work owned by components (rate limiter sweeps) and is
	// cancelled by Shutdown.
	ctx    context.Context
	cancel context.CancelFunc

	loggerInit sync.Once
	logger     *slog.Logger

	db              lazy[*sql.DB]
	txManager       lazy[database.TxManager]
	metricsProvider lazy[*metrics.Provider]
	businessMetrics lazy[metrics.BusinessMetrics]

	entityMetadataRepo      lazy[delegationUseCase.EntityMetadataRepository]
	securityMetadataUseCase lazy[delegationUseCase.SecurityMetadataUseCase]
	securityMetadataHandler lazy[*delegationHTTP.SecurityMetadataHandler]

	exchangeDataRepo       lazy[exchangeUseCase.ExchangeDataRepository]
	exchangeDataMapRepo    lazy[exchangeUseCase.ExchangeDataMapRepository]
	exchangeDataUseCase    lazy[exchangeUseCase.ExchangeDataUseCase]
	exchangeDataMapUseCase lazy[exchangeUseCase.ExchangeDataMapUseCase]
	exchangeDataHandler    lazy[*exchangeHTTP.ExchangeDataHandler]
	exchangeDataMapHandler lazy[*exchangeHTTP.ExchangeDataMapHandler]

	recoveryDataRepo    lazy[recoveryUseCase.RecoveryDataRepository]
	recoveryDataUseCase lazy[recoveryUseCase.RecoveryDataUseCase]
	recoveryDataHandler lazy[*recoveryHTTP.RecoveryDataHandler]
	purgeWorker         lazy[*recoveryUseCase.PurgeWorker]

	cryptoActorRepo    lazy[dataownerUseCase.CryptoActorRepository]
	cryptoActorUseCase lazy[dataownerUseCase.CryptoActorUseCase]
	cryptoActorHandler lazy[*dataownerHTTP.CryptoActorHandler]

	httpServer    lazy[*http.Server]
	metricsServer lazy[*http.MetricsServer]

	mu sync.Mutex
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	ctx, cancel := context.WithCancel(context.Background())
	return &Container{
		config: cfg,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
func (c *Container) DB() (*sql.DB, error) {
	return c.db.get(c.initDB)
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	return c.txManager.get(func() (database.TxManager, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
		}
		return database.NewTxManager(db), nil
	})
}

// MetricsProvider returns the OpenTelemetry metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	return c.metricsProvider.get(func() (*metrics.Provider, error) {
		if !c.config.MetricsEnabled {
			return nil, nil
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			return nil, fmt.Errorf("failed to create metrics provider: %w", err)
		}
		return provider, nil
	})
}

// BusinessMetrics returns the recorder used by the use case metrics decorators.
// It is a no-op recorder when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	return c.businessMetrics.get(func() (metrics.BusinessMetrics, error) {
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, err
		}
		if provider == nil {
			return metrics.NewNoOpBusinessMetrics(), nil
		}
		return metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	})
}

// HTTPServer returns the API server with its router configured.
func (c *Container) HTTPServer() (*http.Server, error) {
	return c.httpServer.get(c.initHTTPServer)
}

// MetricsServer returns the Prometheus metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	return c.metricsServer.get(func() (*http.MetricsServer, error) {
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
		}
		if provider == nil {
			return nil, nil
		}
		return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
	})
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancel()

	var shutdownErrors []error

	if provider, err := c.metricsProvider.value, c.metricsProvider.err; err == nil && provider != nil {
		if err := provider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if db := c.db.value; db != nil {
		if err := db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(c.ctx, database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initHTTPServer builds every handler and mounts them on a new API server.
func (c *Container) initHTTPServer() (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	var handlers http.Handlers
	if handlers.SecurityMetadata, err = c.SecurityMetadataHandler(); err != nil {
		return nil, err
	}
	if handlers.ExchangeData, err = c.ExchangeDataHandler(); err != nil {
		return nil, err
	}
	if handlers.ExchangeDataMap, err = c.ExchangeDataMapHandler(); err != nil {
		return nil, err
	}
	if handlers.RecoveryData, err = c.RecoveryDataHandler(); err != nil {
		return nil, err
	}
	if handlers.CryptoActor, err = c.CryptoActorHandler(); err != nil {
		return nil, err
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(c.ctx, http.RouterConfig{
		CORSEnabled:             c.config.CORSEnabled,
		CORSAllowOrigins:        c.config.CORSAllowOrigins,
		RateLimitEnabled:        c.config.RateLimitEnabled,
		RateLimitRequestsPerSec: c.config.RateLimitRequestsPerSec,
		RateLimitBurst:          c.config.RateLimitBurst,
		MetricsProvider:         provider,
		MetricsNamespace:        c.config.MetricsNamespace,
	}, handlers)

	return server, nil
}
