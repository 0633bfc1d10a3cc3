package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// RunMigrations applies every pending up migration for the given SQL backend.
func RunMigrations(conn *sql.DB, dbType DBType, logger *slog.Logger) error {
	var (
		driver database.Driver
		dir    string
		err    error
	)
	switch dbType {
	case Postgres:
		driver, err = pgmigrate.WithInstance(conn, &pgmigrate.Config{})
		dir = "migrations/postgres"
	case SQLite:
		driver, err = sqlitemigrate.WithInstance(conn, &sqlitemigrate.Config{})
		dir = "migrations/sqlite"
	default:
		return fmt.Errorf("migrations not supported for %q", dbType)
	}
	if err != nil {
		return fmt.Errorf("could not start %s driver: %w", dbType, err)
	}

	src, err := iofs.New(migrations, dir)
	if err != nil {
		return fmt.Errorf("could not open migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(dbType), driver)
	if err != nil {
		return fmt.Errorf("migration failed to start: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run up migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Info("migrations applied", "db", dbType, "version", version, "dirty", dirty)
	return nil
}
