package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/budget_tracker/internal/repositories/database/migrations"
	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// RunPostgresMigrations applies all pending "up" migrations to the PostgreSQL
// database at databaseURL. It reports whether anything was applied.
func RunPostgresMigrations(databaseURL string) (bool, error) {
	// Open a temporary standard sql.DB connection for migrations
	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return false, fmt.Errorf("open migration database: %w", err)
	}
	defer migrationDB.Close()

	if err := migrationDB.Ping(); err != nil {
		return false, fmt.Errorf("ping migration database: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return false, fmt.Errorf("create postgres driver: %w", err)
	}
	return runMigrations(migrations.PostgresDir, "postgres", driver)
}

// RunSQLiteMigrations applies all pending "up" migrations to the SQLite file at path.
func RunSQLiteMigrations(path string) (bool, error) {
	// Create a separate connection for migrations to avoid interfering with the main connection
	migrationDB, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return false, fmt.Errorf("open migration database: %w", err)
	}
	defer migrationDB.Close()

	driver, err := sqlite.WithInstance(migrationDB, &sqlite.Config{})
	if err != nil {
		return false, fmt.Errorf("create sqlite driver: %w", err)
	}
	return runMigrations(migrations.SQLiteDir, "sqlite", driver)
}

func runMigrations(dir, databaseName string, driver migratedb.Driver) (bool, error) {
	src, err := iofs.New(migrations.FS, dir)
	if err != nil {
		return false, fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, databaseName, driver)
	if err != nil {
		return false, fmt.Errorf("create migrate instance: %w", err)
	}

	upErr := m.Up()

	// Check for dirty migrations after running Up.
	sourceErr, dbErr := m.Close()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return false, fmt.Errorf("apply migrations: %w", upErr)
	}
	if sourceErr != nil {
		return false, fmt.Errorf("migration source: %w", sourceErr)
	}
	if dbErr != nil {
		return false, fmt.Errorf("migration database: %w", dbErr)
	}
	return !errors.Is(upErr, migrate.ErrNoChange), nil
}
