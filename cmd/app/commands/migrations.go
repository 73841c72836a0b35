package commands

import (
	"log/slog"

	"github.com/allisson/delegations/internal/database"
)

// RunMigrations applies every pending embedded migration for driver.
func RunMigrations(logger *slog.Logger, driver, connectionString string) error {
	logger.Info("running database migrations", slog.String("driver", driver))

	if err := database.Migrate(driver, connectionString, logger); err != nil {
		return err
	}

	logger.Info("migrations completed successfully")
	return nil
}
