package storage

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// dialect abstracts the SQL differences between the two backends: placeholder
// style and how a query binds a list of ids.
type dialect int

const (
	dialectPostgres dialect = iota
	dialectSQLite
)

func dialectFor(backend string) (dialect, error) {
	switch backend {
	case BackendPostgres, "":
		return dialectPostgres, nil
	case BackendSQLite:
		return dialectSQLite, nil
	default:
		return 0, fmt.Errorf("unknown storage backend %q (want %q or %q)", backend, BackendPostgres, BackendSQLite)
	}
}

func (d dialect) String() string {
	if d == dialectSQLite {
		return BackendSQLite
	}
	return BackendPostgres
}

func (d dialect) driverName() string {
	if d == dialectSQLite {
		return "sqlite"
	}
	return "postgres"
}

// placeholder renders the n-th bind parameter, 1-based.
func (d dialect) placeholder(n int) string {
	if d == dialectSQLite {
		return "?"
	}
	return fmt.Sprintf("$%d", n)
}

// inInt64 renders an id-list condition for the given column and returns the
// arguments to bind. Postgres binds the whole list as one array parameter;
// SQLite expands to one placeholder per id.
func (d dialect) inInt64(column string, ids []int64) (string, []any) {
	if d == dialectPostgres {
		return fmt.Sprintf("%s = ANY($1)", column), []any{pq.Array(ids)}
	}

	marks := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		marks[i] = "?"
		args[i] = id
	}
	return fmt.Sprintf("%s IN (%s)", column, strings.Join(marks, ",")), args
}
