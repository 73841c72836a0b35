package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/allisson/delegations/internal/app"
)

const shutdownTimeout = 30 * time.Second

// service is a long-running server with graceful shutdown.
type service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// worker runs until its context is cancelled.
type worker interface {
	Start(ctx context.Context) error
}

// RunServer starts the API server, the metrics server and the recovery data purge worker,
// then blocks until SIGINT/SIGTERM, ctx cancellation or the first component failure.
func RunServer(ctx context.Context, container *app.Container, version string) error {
	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))

	server, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	services := []service{server}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}
	if metricsServer != nil {
		services = append(services, metricsServer)
	}

	var workers []worker
	purgeWorker, err := container.PurgeWorker()
	if err != nil {
		return fmt.Errorf("failed to initialize purge worker: %w", err)
	}
	if purgeWorker != nil {
		workers = append(workers, purgeWorker)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return supervise(ctx, logger, services, workers, shutdownTimeout)
}

// supervise runs services and workers in one errgroup. When ctx is done or any of them
// fails, every service is shut down within timeout and the first failure is returned.
func supervise(
	ctx context.Context,
	logger *slog.Logger,
	services []service,
	workers []worker,
	timeout time.Duration,
) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, s := range services {
		g.Go(func() error {
			return s.Start(gctx)
		})
	}

	for _, w := range workers {
		g.Go(func() error {
			if err := w.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		var shutdownErrors []error
		for _, s := range services {
			if err := s.Shutdown(shutdownCtx); err != nil {
				shutdownErrors = append(shutdownErrors, err)
			}
		}
		return errors.Join(shutdownErrors...)
	})

	return g.Wait()
}
