package iodb

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gntnrs/pkg/errcode"
)

func callerName() string {
	pc, _, _, _ := runtime.Caller(2)
	return runtime.FuncForPC(pc).Name()
}

// ConnectionError is returned when PostgreSQL connection fails.
func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := `Cannot connect to PostgreSQL database

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database configuration is incorrect
  - Database <em>%s</em> does not exist

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>
  2. Verify database exists:
     <em>psql -h %s -U %s -l</em>
  3. Check your configuration file:
     <em>~/.config/gntnrs/config.yaml</em>`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{database, host, port, host, user},
		Err: fmt.Errorf("from %s: connect to %s:%d/%s: %w",
			callerName(), host, port, database, err),
	}
}

// SQLiteOpenError is returned when the SQLite file cannot be opened.
func SQLiteOpenError(path string, err error) error {
	return &gn.Error{
		Code: errcode.DBSQLiteOpenError,
		Msg:  "Cannot open SQLite database <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: open %s: %w", callerName(), path, err),
	}
}

// NotConnectedError is returned when an operation runs before Connect.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database operation attempted without connection",
		Err: fmt.Errorf("from %s: %w",
			callerName(), errors.New("not connected to database")),
	}
}

// UnknownBackendError is returned for unsupported storage backends.
func UnknownBackendError(backend string) error {
	return &gn.Error{
		Code: errcode.DBUnknownBackendError,
		Msg:  "Storage backend <em>'%s'</em> has no database, use postgres or sqlite",
		Vars: []any{backend},
		Err: fmt.Errorf("from %s: unknown backend %q",
			callerName(), backend),
	}
}

func TableCheckError(err error) error {
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  "Could not verify database state",
		Err:  fmt.Errorf("from %s: check tables: %w", callerName(), err),
	}
}

func TableExistsCheckError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  "Cannot check if table <em>%s</em> exists",
		Vars: []any{table},
		Err: fmt.Errorf("from %s: check table %s: %w",
			callerName(), table, err),
	}
}

func QueryTablesError(err error) error {
	return &gn.Error{
		Code: errcode.DBQueryTablesError,
		Msg:  "Cannot get the list of tables",
		Err:  fmt.Errorf("from %s: query tables: %w", callerName(), err),
	}
}

func ScanTableError(err error) error {
	return &gn.Error{
		Code: errcode.DBScanTableError,
		Msg:  "Cannot read the list of tables",
		Err:  fmt.Errorf("from %s: scan tables: %w", callerName(), err),
	}
}

func DropTableError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  "Cannot drop table <em>%s</em>",
		Vars: []any{table},
		Err: fmt.Errorf("from %s: drop %s: %w",
			callerName(), table, err),
	}
}
