// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate for PostgreSQL and runs model DDL
// for SQLite.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/gnames/gntnrs/pkg/db"
	"github.com/gnames/gntnrs/pkg/lifecycle"
	"github.com/gnames/gntnrs/pkg/schema"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// manager implements the lifecycle.SchemaManager interface.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates the database schema. For PostgreSQL it also applies
// "C" collation to name columns, so prefix queries can use indexes.
func (m *manager) Create(ctx context.Context) error {
	if m.operator.DB() == nil {
		return NotConnectedError()
	}

	switch m.operator.Backend() {
	case db.SQLite:
		if err := m.sqliteDDL(ctx); err != nil {
			return CreateSchemaError(err)
		}
	default:
		if err := m.autoMigrate(); err != nil {
			return CreateSchemaError(err)
		}
		if err := m.setCollation(ctx); err != nil {
			return err
		}
	}

	slog.Info("Schema created", "backend", m.operator.Backend())
	return nil
}

// Migrate updates the database schema to the latest version.
func (m *manager) Migrate(ctx context.Context) error {
	if m.operator.DB() == nil {
		return NotConnectedError()
	}

	var err error
	switch m.operator.Backend() {
	case db.SQLite:
		err = m.sqliteDDL(ctx)
	default:
		err = m.autoMigrate()
	}
	if err != nil {
		return MigrateSchemaError(err)
	}
	return nil
}

func (m *manager) autoMigrate() error {
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: m.operator.DB()}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return GORMConnectionError(err)
	}
	return schema.Migrate(gormDB)
}

func (m *manager) sqliteDDL(ctx context.Context) error {
	for _, t := range schema.AllTables() {
		stmts := append([]string{t.TableDDL()}, t.IndexDDL()...)
		for _, q := range stmts {
			if _, err := m.operator.DB().ExecContext(ctx, q); err != nil {
				return err
			}
		}
	}
	return nil
}

// setCollation sets "C" collation on name columns. With it
// PostgreSQL uses btree indexes for LIKE 'prefix%' queries.
func (m *manager) setCollation(ctx context.Context) error {
	type columnDef struct {
		table, column string
		varchar       int
	}

	columns := []columnDef{
		{"name_entries", "name", 500},
		{"name_entries", "name_lower", 500},
		{"taxa", "name", 500},
	}

	qStr := `ALTER TABLE %s ALTER COLUMN %s ` +
		`TYPE VARCHAR(%d) COLLATE "C"`

	for _, col := range columns {
		q := formatCollationSQL(qStr, col.table,
			col.column, col.varchar)
		if _, err := m.operator.DB().ExecContext(ctx, q); err != nil {
			return CollationError(col.table, col.column, err)
		}
	}

	return nil
}
