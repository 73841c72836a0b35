package database

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/allisson/delegations/migrations"
)

// Migrate applies every pending embedded migration of driver. It is a no-op when the
// schema is already up to date.
func Migrate(driver, connectionString string, logger *slog.Logger) error {
	dir, err := migrationsDir(driver)
	if err != nil {
		return err
	}

	source, err := iofs.New(migrations.FS, dir)
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, migrationURL(driver, connectionString))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	logger.Info("database schema up to date",
		slog.String("driver", driver),
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)
	return nil
}

func migrationsDir(driver string) (string, error) {
	switch driver {
	case "postgres":
		return "postgresql", nil
	case "mysql":
		return "mysql", nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// migrationURL turns a database/sql DSN into the URL form golang-migrate expects.
// go-sql-driver DSNs carry no scheme, and multi statements must be enabled for MySQL.
func migrationURL(driver, connectionString string) string {
	if driver != "mysql" || strings.HasPrefix(connectionString, "mysql://") {
		return connectionString
	}

	url := "mysql://" + connectionString
	if !strings.Contains(connectionString, "multiStatements=") {
		if strings.Contains(connectionString, "?") {
			url += "&multiStatements=true"
		} else {
			url += "?multiStatements=true"
		}
	}
	return url
}

func closeMigrate(m *migrate.Migrate, logger *slog.Logger) {
	sourceError, databaseError := m.Close()
	if sourceError != nil || databaseError != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceError),
			slog.Any("database_error", databaseError),
		)
	}
}
