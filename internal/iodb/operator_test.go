package iodb_test

import (
	"context"
	"testing"

	"github.com/gnames/gntnrs/internal/iodb"
	"github.com/gnames/gntnrs/internal/iotesting"
	"github.com/gnames/gntnrs/pkg/config"
	"github.com/gnames/gntnrs/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PostgreSQL tests need a running server. Connection settings come from
// GNTNRS_DATABASE_* environment variables, the database is always
// gntnrs_test. Run with -short to skip them.

func TestSQLiteOperator(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	op := iodb.NewSQLiteOperator()

	_, err := op.HasTables(ctx)
	assert.NotNil(err)

	err = op.Connect(ctx, iotesting.SQLiteConfig(t))
	require.NoError(t, err)
	defer op.Close()

	assert.Equal(db.SQLite, op.Backend())
	assert.Nil(op.Pool())

	has, err := op.HasTables(ctx)
	assert.Nil(err)
	assert.False(has)

	_, err = op.DB().ExecContext(ctx, "CREATE TABLE drop_test1 (id INTEGER)")
	require.NoError(t, err)
	_, err = op.DB().ExecContext(ctx, "CREATE TABLE drop_test2 (id INTEGER)")
	require.NoError(t, err)

	exists, err := op.TableExists(ctx, "drop_test1")
	assert.Nil(err)
	assert.True(exists)

	err = op.DropAllTables(ctx)
	assert.Nil(err)

	has, err = op.HasTables(ctx)
	assert.Nil(err)
	assert.False(has)
}

func TestPgxOperator(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	ctx := context.Background()

	err := op.Connect(ctx, iotesting.PGConfig())
	require.NoError(t, err, "Connect should succeed with valid config")
	defer op.Close()

	_, _ = op.Pool().Exec(ctx, "DROP TABLE IF EXISTS test_table_exists CASCADE")

	exists, err := op.TableExists(ctx, "test_table_exists")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = op.DB().ExecContext(ctx, "CREATE TABLE test_table_exists (id SERIAL PRIMARY KEY)")
	require.NoError(t, err)

	exists, err = op.TableExists(ctx, "test_table_exists")
	require.NoError(t, err)
	assert.True(t, exists)

	err = op.DropAllTables(ctx)
	require.NoError(t, err)
	exists, _ = op.TableExists(ctx, "test_table_exists")
	assert.False(t, exists)
}

func TestPgxOperatorInvalidHost(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	cfg := iotesting.PGConfig()
	cfg.Update([]config.Option{
		config.OptDatabaseHost("invalid-host-that-does-not-exist"),
	})

	err := op.Connect(context.Background(), cfg)
	assert.Error(t, err, "Connect should fail with invalid host")
}
