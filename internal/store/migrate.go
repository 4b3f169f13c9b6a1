package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// migrateOwned runs migrations on a dedicated connection that is closed
// afterwards, leaving the caller's pool untouched.
func migrateOwned(driver, dsn string) error {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}

	m, err := newMigrator(db, driver)
	if err != nil {
		_ = db.Close()
		return err
	}
	// Closes db too.
	defer func() { _, _ = m.Close() }()

	return up(m)
}

// migrateShared runs migrations on db without closing it. Used for the
// in-memory store, where a second connection would see an empty database.
func migrateShared(db *sql.DB) error {
	m, err := newMigrator(db, SQLite)
	if err != nil {
		return err
	}
	return up(m)
}

func newMigrator(db *sql.DB, driver string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations/"+driver)
	if err != nil {
		return nil, fmt.Errorf("create iofs source: %w", err)
	}

	var target database.Driver
	switch driver {
	case Postgres:
		target, err = postgres.WithInstance(db, &postgres.Config{})
	default:
		target, err = sqlite.WithInstance(db, &sqlite.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("create %s migration driver: %w", driver, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, target)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, nil
}

func up(m *migrate.Migrate) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
