package iotesting

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gnames/gntnrs/pkg/config"
)

const (
	// TestDatabaseName is the database name used for all PostgreSQL
	// integration tests. Tests never run against a production database.
	TestDatabaseName = "gntnrs_test"
)

// PGConfig returns a configuration for PostgreSQL integration tests.
// Connection settings come from GNTNRS_DATABASE_* environment variables
// when they are set, the database name is always TestDatabaseName.
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.PGConfig()
//	}
func PGConfig() *config.Config {
	cfg := config.New()
	opts := []config.Option{
		config.OptTaxonomyBackend("postgres"),
		config.OptDatabaseDatabase(TestDatabaseName),
	}
	if s := os.Getenv("GNTNRS_DATABASE_HOST"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if s := os.Getenv("GNTNRS_DATABASE_PORT"); s != "" {
		if port, err := strconv.Atoi(s); err == nil {
			opts = append(opts, config.OptDatabasePort(port))
		}
	}
	if s := os.Getenv("GNTNRS_DATABASE_USER"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := os.Getenv("GNTNRS_DATABASE_PASSWORD"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	cfg.Update(opts)
	return cfg
}

// SQLiteConfig returns a configuration of the sqlite backend with the
// database file in a temporary directory of the test.
func SQLiteConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptTaxonomyBackend("sqlite"),
		config.OptTaxonomySQLitePath(
			filepath.Join(t.TempDir(), "gntnrs_test.sqlite"),
		),
	})
	return cfg
}
