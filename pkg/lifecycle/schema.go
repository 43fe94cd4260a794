// Package lifecycle defines contracts for preparing a SQL taxonomy store:
// schema creation, population and optimization.
package lifecycle

import (
	"context"
)

// SchemaManager defines the interface for database schema management.
// PostgreSQL schema comes from GORM AutoMigrate, SQLite schema from DDL
// of the models. Schema management is idempotent - safe to run multiple
// times.
type SchemaManager interface {
	// Create creates the database schema. Existing tables are kept, use
	// db.Operator.DropAllTables to start from scratch.
	Create(ctx context.Context) error

	// Migrate updates the database schema to the latest version.
	Migrate(ctx context.Context) error
}
