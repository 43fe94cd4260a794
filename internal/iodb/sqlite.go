package iodb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gnames/gntnrs/pkg/config"
	"github.com/gnames/gntnrs/pkg/db"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"
)

// sqliteOperator implements db.Operator for an embedded SQLite file.
type sqliteOperator struct {
	path  string
	sqlDB *sql.DB
}

// NewSQLiteOperator creates a new SQLite operator
// (without opening the file).
func NewSQLiteOperator() db.Operator {
	return &sqliteOperator{}
}

// Connect opens (or creates) the SQLite file given by the config.
func (s *sqliteOperator) Connect(
	ctx context.Context,
	cfg *config.Config,
) error {
	path := cfg.SQLitePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return SQLiteOpenError(path, err)
	}

	dsn := "file:" + path +
		"?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return SQLiteOpenError(path, err)
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return SQLiteOpenError(path, err)
	}

	s.path = path
	s.sqlDB = sqlDB
	return nil
}

func (s *sqliteOperator) Close() error {
	if s.sqlDB == nil {
		return nil
	}
	err := s.sqlDB.Close()
	s.sqlDB = nil
	return err
}

func (s *sqliteOperator) Backend() string {
	return db.SQLite
}

func (s *sqliteOperator) DB() *sql.DB {
	return s.sqlDB
}

func (s *sqliteOperator) Pool() *pgxpool.Pool {
	return nil
}

func (s *sqliteOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if s.sqlDB == nil {
		return false, NotConnectedError()
	}

	q := `SELECT count(*) FROM sqlite_master
		WHERE type = 'table' AND name = ?`
	var count int
	if err := s.sqlDB.QueryRowContext(ctx, q, tableName).Scan(&count); err != nil {
		return false, TableExistsCheckError(tableName, err)
	}
	return count > 0, nil
}

func (s *sqliteOperator) HasTables(ctx context.Context) (bool, error) {
	tables, err := s.tables(ctx)
	if err != nil {
		return false, err
	}
	return len(tables) > 0, nil
}

func (s *sqliteOperator) DropAllTables(ctx context.Context) error {
	tables, err := s.tables(ctx)
	if err != nil {
		return err
	}
	for _, table := range tables {
		dropSQL := fmt.Sprintf("DROP TABLE IF EXISTS %q", table)
		if _, err := s.sqlDB.ExecContext(ctx, dropSQL); err != nil {
			return DropTableError(table, err)
		}
	}
	return nil
}

func (s *sqliteOperator) tables(ctx context.Context) ([]string, error) {
	if s.sqlDB == nil {
		return nil, NotConnectedError()
	}

	q := `SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`
	rows, err := s.sqlDB.QueryContext(ctx, q)
	if err != nil {
		return nil, QueryTablesError(err)
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, ScanTableError(err)
		}
		res = append(res, name)
	}
	if err := rows.Err(); err != nil {
		return nil, ScanTableError(err)
	}
	return res, nil
}
