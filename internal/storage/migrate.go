package storage

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/stockfolio/stockfolio/internal/config"
)

// migrationURL builds the postgres:// URL golang-migrate expects from the
// same configuration the pool connects with.
func migrationURL(cfg *config.PostgresConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
	)
}

// newMigrator opens a migrate instance over the SQL files at migrationsPath.
// Callers own closing it.
func newMigrator(cfg *config.PostgresConfig, migrationsPath string) (*migrate.Migrate, error) {
	m, err := migrate.New("file://"+migrationsPath, migrationURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open migrator: %w", err)
	}
	return m, nil
}

// RunMigrations applies all pending migrations.
func RunMigrations(cfg *config.PostgresConfig, migrationsPath string) error {
	m, err := newMigrator(cfg, migrationsPath)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// RollbackMigrations undoes the most recently applied migration.
func RollbackMigrations(cfg *config.PostgresConfig, migrationsPath string) error {
	m, err := newMigrator(cfg, migrationsPath)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	return nil
}

// MigrationVersion reports the current schema version. A database with no
// applied migrations reports version 0.
func MigrationVersion(cfg *config.PostgresConfig, migrationsPath string) (uint, bool, error) {
	m, err := newMigrator(cfg, migrationsPath)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read migration version: %w", err)
	}
	return version, dirty, nil
}
