package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/gnames/gntnrs/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	// Postgres is the name of the PostgreSQL backend.
	Postgres = "postgres"

	// SQLite is the name of the embedded SQLite backend.
	SQLite = "sqlite"
)

// Operator defines the interface for basic database management operations.
// It manages the connection lifecycle and exposes connection handles for
// lifecycle components (SchemaManager, Populator, Optimizer) and the SQL taxonomy
// store.
type Operator interface {
	// Connect opens the database described by the config.
	Connect(context.Context, *config.Config) error

	// Close closes the database connections.
	Close() error

	// Backend returns Postgres or SQLite.
	Backend() string

	// DB returns a database/sql handle that works for both backends.
	DB() *sql.DB

	// Pool returns the underlying pgxpool.Pool of the PostgreSQL backend
	// for bulk inserts (CopyFrom). It is nil for SQLite.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables.
	// Used to determine if schema creation should prompt for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables.
	// Used during schema creation when overwriting existing data.
	DropAllTables(ctx context.Context) error
}

// Rebind converts '?' placeholders of a query to the numbered '$N'
// placeholders of PostgreSQL. Queries for SQLite are returned as is.
func Rebind(backend, query string) string {
	if backend != Postgres {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString("$" + strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
