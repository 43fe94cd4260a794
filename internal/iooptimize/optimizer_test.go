package iooptimize_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gntnrs/internal/iodb"
	"github.com/gnames/gntnrs/internal/iooptimize"
	"github.com/gnames/gntnrs/internal/iopopulate"
	"github.com/gnames/gntnrs/internal/ioschema"
	"github.com/gnames/gntnrs/internal/iotesting"
	"github.com/gnames/gntnrs/pkg/config"
	"github.com/gnames/gntnrs/pkg/db"
	"github.com/gnames/gntnrs/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(t *testing.T, op db.Operator) int {
	var res int
	err := op.DB().QueryRowContext(context.Background(),
		"SELECT count(*) FROM name_entries").Scan(&res)
	require.Nil(t, err)
	return res
}

func populated(t *testing.T, cfg *config.Config) db.Operator {
	t.Helper()
	ctx := context.Background()
	op, err := iodb.New(cfg.Taxonomy.Backend)
	require.Nil(t, err)
	require.Nil(t, op.Connect(ctx, cfg))
	t.Cleanup(func() { op.Close() })

	if cfg.Taxonomy.Backend == db.Postgres {
		require.Nil(t, op.DropAllTables(ctx))
	}
	require.Nil(t, ioschema.NewManager(op).Create(ctx))
	require.Nil(t, iopopulate.New(cfg, op).Populate(ctx, iotesting.Source(t)))
	return op
}

func testOptimize(t *testing.T, op db.Operator) {
	assert := assert.New(t)
	ctx := context.Background()
	before := entries(t, op)

	insert := db.Rebind(op.Backend(), `
INSERT INTO name_entries
	(id, ord, taxon_id, name, name_lower, name_length,
	 is_synonym, deprecated, kinds, contexts)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := op.DB().ExecContext(ctx, insert,
		"6d5f1c1e-2d7c-5b3a-9b0e-0c8c4d1f0a11", before+1, 42,
		"Orphanus orphanus", "orphanus orphanus", 17,
		false, false, 1, 1,
	)
	require.Nil(t, err)
	assert.Equal(before+1, entries(t, op))

	opt := iooptimize.NewOptimizer(op)
	require.Nil(t, opt.Optimize(ctx))
	assert.Equal(before, entries(t, op))

	// nothing to remove the second time
	require.Nil(t, opt.Optimize(ctx))
	assert.Equal(before, entries(t, op))
}

func TestOptimizeSQLite(t *testing.T) {
	op := populated(t, iotesting.SQLiteConfig(t))
	testOptimize(t, op)
}

func TestOptimizePostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping PostgreSQL integration test")
	}
	op := populated(t, iotesting.PGConfig())
	testOptimize(t, op)
}

func TestOptimizeNotConnected(t *testing.T) {
	opt := iooptimize.NewOptimizer(iodb.NewSQLiteOperator())
	err := opt.Optimize(context.Background())
	require.NotNil(t, err)

	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
}
