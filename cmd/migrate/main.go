// Package main provides a CLI tool for running database migrations.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/stockfolio/stockfolio/internal/config"
	"github.com/stockfolio/stockfolio/internal/storage"
)

func main() {
	action := flag.String("action", "up", "Migration action: up, down, version")
	path := flag.String("path", "migrations/postgres", "Path to migration files")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := runMigrations(&cfg.Database.Postgres, *action, *path); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}

func runMigrations(cfg *config.PostgresConfig, action, path string) error {
	switch action {
	case "up":
		log.Println("Running migrations...")
		if err := storage.RunMigrations(cfg, path); err != nil {
			return err
		}
		log.Println("Migrations completed successfully")

	case "down":
		log.Println("Rolling back migration...")
		if err := storage.RollbackMigrations(cfg, path); err != nil {
			return err
		}
		log.Println("Migration rolled back successfully")

	case "version":
		version, dirty, err := storage.MigrationVersion(cfg, path)
		if err != nil {
			return err
		}
		log.Printf("Current migration version: %d (dirty: %v)", version, dirty)

	default:
		return fmt.Errorf("unknown action: %s", action)
	}

	return nil
}
