package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"caseledger/internal/log"
)

//go:embed migrations/payments/*.sql migrations/refunds/*.sql
var migrationsFS embed.FS

// RunMigrations brings both schemas up to date. Each store migrates on a
// separate connection so the main handles stay untouched.
func RunMigrations(opts Options) error {
	d, err := dialectFor(opts.Backend)
	if err != nil {
		return err
	}
	if err := runMigrations(d, opts.PaymentsDSN, "migrations/payments"); err != nil {
		return fmt.Errorf("migrate payments store: %w", err)
	}
	if err := runMigrations(d, opts.RefundsDSN, "migrations/refunds"); err != nil {
		return fmt.Errorf("migrate refunds store: %w", err)
	}
	slog.Info("Applied migrations",
		log.FieldComponent, log.ComponentStorage,
		log.FieldOperation, log.OpMigrate,
		log.FieldBackend, d.String())
	return nil
}

func runMigrations(d dialect, dsn, sourcePath string) error {
	migrateDB, err := sql.Open(d.driverName(), dsn)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	var driver database.Driver
	switch d {
	case dialectSQLite:
		driver, err = sqlite.WithInstance(migrateDB, &sqlite.Config{})
	default:
		driver, err = postgres.WithInstance(migrateDB, &postgres.Config{})
	}
	if err != nil {
		return fmt.Errorf("create %s driver: %w", d, err)
	}

	src, err := iofs.New(migrationsFS, sourcePath)
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, d.String(), driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}
