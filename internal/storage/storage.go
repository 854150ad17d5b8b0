// Package storage fetches case data from the two independent stores: the
// payments database and the refunds database. Both PostgreSQL (the live
// deployment) and SQLite (offline snapshots) are supported; every query is
// written once and rendered per dialect.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Backend names accepted by Open.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Options selects the backend and the two data source names. For SQLite the
// DSNs are file paths.
type Options struct {
	Backend     string
	PaymentsDSN string
	RefundsDSN  string
}

// Stores bundles one handle per source database.
type Stores struct {
	Payments *PaymentsStore
	Refunds  *RefundsStore
}

// Open connects to both stores.
func Open(opts Options) (*Stores, error) {
	d, err := dialectFor(opts.Backend)
	if err != nil {
		return nil, err
	}

	paymentsDB, err := openDB(d, opts.PaymentsDSN)
	if err != nil {
		return nil, fmt.Errorf("open payments database: %w", err)
	}

	refundsDB, err := openDB(d, opts.RefundsDSN)
	if err != nil {
		paymentsDB.Close()
		return nil, fmt.Errorf("open refunds database: %w", err)
	}

	return &Stores{
		Payments: &PaymentsStore{db: paymentsDB, dialect: d},
		Refunds:  &RefundsStore{db: refundsDB, dialect: d},
	}, nil
}

// Close closes both database handles.
func (s *Stores) Close() error {
	var errs []error
	if err := s.Payments.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("payments: %w", err))
	}
	if err := s.Refunds.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("refunds: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("close stores: %v", errs)
	}
	return nil
}

func openDB(d dialect, dsn string) (*sql.DB, error) {
	if d == dialectSQLite {
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open(d.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", d, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
