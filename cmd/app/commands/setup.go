package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/allisson/credstash/migrations"
)

// TableCreator creates the credential table of a key-value store.
type TableCreator interface {
	CreateTable(ctx context.Context) error
}

// RunSetupTable creates the DynamoDB credential table if it does not exist yet.
func RunSetupTable(ctx context.Context, creator TableCreator, logger *slog.Logger, table string) error {
	logger.Info("creating credential table", slog.String("table", table))

	if err := creator.CreateTable(ctx); err != nil {
		return fmt.Errorf("failed to create table %q: %w", table, err)
	}

	logger.Info("credential table ready", slog.String("table", table))
	return nil
}

// RunMigrations applies the embedded SQL migrations for driver ("postgres" or "mysql").
// Returns nil if there is nothing to apply.
func RunMigrations(logger *slog.Logger, driver, connectionString string) error {
	logger.Info("running database migrations", slog.String("driver", driver))

	dir, databaseURL, err := migrationTarget(driver, connectionString)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	source, err := iofs.New(migrations.FS, dir)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}

// migrationTarget maps a store driver to its migration directory and a golang-migrate
// database URL. MySQL DSNs carry no scheme, so one is added.
func migrationTarget(driver, connectionString string) (string, string, error) {
	switch driver {
	case "postgres":
		return "postgresql", connectionString, nil
	case "mysql":
		if !strings.HasPrefix(connectionString, "mysql://") {
			connectionString = "mysql://" + connectionString
		}
		return "mysql", connectionString, nil
	default:
		return "", "", fmt.Errorf("unsupported driver for migrations: %s", driver)
	}
}
