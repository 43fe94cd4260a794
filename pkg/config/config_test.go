package config_test

import (
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gnames/gntnrs/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	home := "/home/user"
	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{"config dir", config.ConfigDir, filepath.Join(home, ".config", "gntnrs")},
		{"cache dir", config.CacheDir, filepath.Join(home, ".cache", "gntnrs")},
		{"log dir", config.LogDir,
			filepath.Join(home, ".local", "share", "gntnrs", "logs")},
		{"config file", config.ConfigFilePath,
			filepath.Join(home, ".config", "gntnrs", "config.yaml")},
		{"sqlite", config.SQLiteFilePath,
			filepath.Join(home, ".cache", "gntnrs", "gntnrs.sqlite")},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, v.fn(home), v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()
	require.NotNil(t, cfg)

	t.Run("database", func(t *testing.T) {
		assert := assert.New(t)
		assert.Equal("localhost", cfg.Database.Host)
		assert.Equal(5432, cfg.Database.Port)
		assert.Equal("postgres", cfg.Database.User)
		assert.Equal("gntnrs", cfg.Database.Database)
		assert.Equal("disable", cfg.Database.SSLMode)
		assert.Equal(50_000, cfg.Database.BatchSize)
	})

	t.Run("taxonomy and index", func(t *testing.T) {
		assert := assert.New(t)
		assert.Equal("memory", cfg.Taxonomy.Backend)
		assert.Equal("", cfg.Taxonomy.Dir)
		assert.Equal("memory", cfg.Index.Engine)
		assert.Equal("", cfg.Index.Path)
	})

	t.Run("match", func(t *testing.T) {
		assert := assert.New(t)
		assert.Equal(0.01, cfg.Match.MinScore)
		assert.Equal(5, cfg.Match.MinPrefixLength)
		assert.True(cfg.Match.DoFuzzy)
		assert.True(cfg.Match.InferContext)
		assert.True(cfg.Match.MatchSpToGenus)
		assert.False(cfg.Match.ParseNames)
		assert.False(cfg.Match.IncludeDubious)
	})

	t.Run("verifier", func(t *testing.T) {
		assert := assert.New(t)
		assert.False(cfg.Verifier.Enabled)
		assert.Equal("https://verifier.globalnames.org/api/v1", cfg.Verifier.URL)
		assert.Equal(10*time.Second, cfg.Verifier.Timeout)
		assert.Equal(time.Second, cfg.Verifier.RetryInterval)
	})

	t.Run("log and jobs", func(t *testing.T) {
		assert := assert.New(t)
		assert.Equal("json", cfg.Log.Format)
		assert.Equal("info", cfg.Log.Level)
		assert.Equal("file", cfg.Log.Destination)
		assert.Equal(runtime.NumCPU(), cfg.JobsNumber)
	})
}

func TestStringOptions(t *testing.T) {
	tests := []struct {
		msg string
		opt config.Option
		get func(*config.Config) string
		res string
	}{
		{"host", config.OptDatabaseHost("  db.example.com "),
			func(c *config.Config) string { return c.Database.Host }, "db.example.com"},
		{"empty host", config.OptDatabaseHost("   "),
			func(c *config.Config) string { return c.Database.Host }, "localhost"},
		{"ssl mode", config.OptDatabaseSSLMode("REQUIRE"),
			func(c *config.Config) string { return c.Database.SSLMode }, "require"},
		{"bad ssl mode", config.OptDatabaseSSLMode("maybe"),
			func(c *config.Config) string { return c.Database.SSLMode }, "disable"},
		{"backend", config.OptTaxonomyBackend("SQLite"),
			func(c *config.Config) string { return c.Taxonomy.Backend }, "sqlite"},
		{"bad backend", config.OptTaxonomyBackend("mysql"),
			func(c *config.Config) string { return c.Taxonomy.Backend }, "memory"},
		{"taxonomy dir", config.OptTaxonomyDir("/data/ott3.7"),
			func(c *config.Config) string { return c.Taxonomy.Dir }, "/data/ott3.7"},
		{"index engine", config.OptIndexEngine("bleve"),
			func(c *config.Config) string { return c.Index.Engine }, "bleve"},
		{"bad index engine", config.OptIndexEngine("lucene"),
			func(c *config.Config) string { return c.Index.Engine }, "memory"},
		{"verifier url", config.OptVerifierURL("http://localhost:8080/api/v1/"),
			func(c *config.Config) string { return c.Verifier.URL },
			"http://localhost:8080/api/v1"},
		{"log level", config.OptLogLevel("DEBUG"),
			func(c *config.Config) string { return c.Log.Level }, "debug"},
		{"bad log level", config.OptLogLevel("trace"),
			func(c *config.Config) string { return c.Log.Level }, "info"},
		{"log format", config.OptLogFormat("tint"),
			func(c *config.Config) string { return c.Log.Format }, "tint"},
		{"log destination", config.OptLogDestination("stderr"),
			func(c *config.Config) string { return c.Log.Destination }, "stderr"},
		{"bad log destination", config.OptLogDestination("stdin"),
			func(c *config.Config) string { return c.Log.Destination }, "file"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{v.opt})
			assert.Equal(t, v.res, v.get(cfg))
		})
	}
}

func TestNumericOptions(t *testing.T) {
	assert := assert.New(t)
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabasePort(-1),
		config.OptDatabaseBatchSize(0),
		config.OptJobsNumber(0),
		config.OptMatchMinScore(0),
		config.OptMatchMinScore(1.5),
		config.OptMatchMinPrefixLength(-3),
		config.OptVerifierTimeout(0),
		config.OptVerifierRetryInterval(-time.Second),
	})
	def := config.New()
	assert.Equal(def, cfg)

	cfg.Update([]config.Option{
		config.OptDatabasePort(6543),
		config.OptDatabaseBatchSize(1000),
		config.OptJobsNumber(3),
		config.OptMatchMinScore(0.5),
		config.OptMatchMinPrefixLength(3),
		config.OptVerifierTimeout(2 * time.Second),
		config.OptVerifierRetryInterval(100 * time.Millisecond),
	})
	assert.Equal(6543, cfg.Database.Port)
	assert.Equal(1000, cfg.Database.BatchSize)
	assert.Equal(3, cfg.JobsNumber)
	assert.Equal(0.5, cfg.Match.MinScore)
	assert.Equal(3, cfg.Match.MinPrefixLength)
	assert.Equal(2*time.Second, cfg.Verifier.Timeout)
	assert.Equal(100*time.Millisecond, cfg.Verifier.RetryInterval)
}

func TestBoolOptions(t *testing.T) {
	assert := assert.New(t)
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptMatchDoFuzzy(false),
		config.OptMatchInferContext(false),
		config.OptMatchSpToGenus(false),
		config.OptMatchParseNames(true),
		config.OptMatchIncludeDubious(true),
		config.OptMatchIncludeDeprecated(true),
		config.OptVerifierEnabled(true),
	})
	assert.False(cfg.Match.DoFuzzy)
	assert.False(cfg.Match.InferContext)
	assert.False(cfg.Match.MatchSpToGenus)
	assert.True(cfg.Match.ParseNames)
	assert.True(cfg.Match.IncludeDubious)
	assert.True(cfg.Match.IncludeDeprecated)
	assert.True(cfg.Verifier.Enabled)
}

func TestMultipleOptions(t *testing.T) {
	t.Run("later options override earlier ones", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptDatabaseHost("first.host.com"),
			config.OptDatabaseHost("second.host.com"),
		})
		assert.Equal(t, "second.host.com", cfg.Database.Host)
	})
}

func TestSQLitePath(t *testing.T) {
	assert := assert.New(t)
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir("/home/user")})
	assert.Equal(config.SQLiteFilePath("/home/user"), cfg.SQLitePath())

	cfg.Update([]config.Option{config.OptTaxonomySQLitePath("/tmp/ott.sqlite")})
	assert.Equal("/tmp/ott.sqlite", cfg.SQLitePath())
}

func TestToOptions(t *testing.T) {
	t.Run("round trip of persistent fields", func(t *testing.T) {
		original := config.New()
		original.Update([]config.Option{
			config.OptDatabaseHost("test.host.com"),
			config.OptDatabasePassword("testpass"),
			config.OptDatabaseDatabase("testdb"),
			config.OptTaxonomyBackend("postgres"),
			config.OptTaxonomyDir("/data/ott"),
			config.OptIndexEngine("bleve"),
			config.OptIndexPath("/data/index"),
			config.OptMatchMinScore(0.2),
			config.OptMatchDoFuzzy(false),
			config.OptMatchParseNames(true),
			config.OptVerifierEnabled(true),
			config.OptVerifierTimeout(3 * time.Second),
			config.OptLogFormat("text"),
			config.OptJobsNumber(8),
		})

		res := config.New()
		res.Update(original.ToOptions())
		assert.Equal(t, original, res)
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptHomeDir("/custom/home"),
			config.OptMatchIncludeDubious(true),
			config.OptMatchIncludeDeprecated(true),
		})

		res := config.New()
		res.Update(cfg.ToOptions())
		assert.Equal(t, "", res.HomeDir)
		assert.False(t, res.Match.IncludeDubious)
		assert.False(t, res.Match.IncludeDeprecated)
	})
}
