// Package config provides configuration management for GNtnrs.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Taxonomy: backend, dir, sqlite_path
//   - Index: engine, path
//   - Match: min_score, min_prefix_length, do_fuzzy, infer_context,
//     match_sp_to_genus, parse_names
//   - Verifier: enabled, url, timeout, retry_interval
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Match.IncludeDubious, Match.IncludeDeprecated (per-request)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNTNRS_ prefix with underscores for nesting:
//
//	GNTNRS_DATABASE_HOST=localhost
//	GNTNRS_TAXONOMY_BACKEND=sqlite
//	GNTNRS_MATCH_MIN_SCORE=0.1
//	GNTNRS_LOG_LEVEL=info
//	GNTNRS_JOBS_NUMBER=8
package config

import (
	"runtime"
	"time"
)

// Config represents the complete GNtnrs configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Taxonomy tells where taxonomy data comes from.
	Taxonomy TaxonomyConfig `mapstructure:"taxonomy" yaml:"taxonomy"`

	// Index selects the name index engine of the in-memory backend.
	Index IndexConfig `mapstructure:"index" yaml:"index"`

	// Match contains defaults of name matching.
	Match MatchConfig `mapstructure:"match" yaml:"match"`

	// Verifier configures the remote name verification service that is
	// asked about names the taxonomy cannot match.
	Verifier VerifierConfig `mapstructure:"verifier" yaml:"verifier"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set accoring to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize defines the number of rows written per batch when a
	// taxonomy is loaded into a database.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// TaxonomyConfig describes the taxonomy backend.
type TaxonomyConfig struct {
	// Backend is one of "memory", "postgres", "sqlite". The memory backend
	// loads OTT files from Dir at start.
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Dir is a directory with OTT taxonomy.tsv, synonyms.tsv and
	// deprecated.tsv files.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// SQLitePath is the database file of the sqlite backend. When empty,
	// gntnrs.sqlite in the cache directory is used.
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
}

// IndexConfig selects a name index for the memory backend.
type IndexConfig struct {
	// Engine is "memory" or "bleve".
	Engine string `mapstructure:"engine" yaml:"engine"`

	// Path is the directory of a persistent bleve index. Empty path
	// keeps the bleve index in memory.
	Path string `mapstructure:"path" yaml:"path"`
}

// MatchConfig contains matching defaults.
type MatchConfig struct {
	// MinScore drops fuzzy matches with lower scores.
	MinScore float64 `mapstructure:"min_score" yaml:"min_score"`

	// MinPrefixLength is the shortest autocomplete query that triggers
	// prefix lookups.
	MinPrefixLength int `mapstructure:"min_prefix_length" yaml:"min_prefix_length"`

	DoFuzzy        bool `mapstructure:"do_fuzzy" yaml:"do_fuzzy"`
	InferContext   bool `mapstructure:"infer_context" yaml:"infer_context"`
	MatchSpToGenus bool `mapstructure:"match_sp_to_genus" yaml:"match_sp_to_genus"`

	// ParseNames normalizes queries to canonical forms with GNparser
	// before matching.
	ParseNames bool `mapstructure:"parse_names" yaml:"parse_names"`

	IncludeDubious    bool `mapstructure:"-" yaml:"-"`
	IncludeDeprecated bool `mapstructure:"-" yaml:"-"`
}

// VerifierConfig contains settings of the GNverifier adapter.
type VerifierConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	URL     string `mapstructure:"url" yaml:"url"`

	// Timeout bounds the whole verification request including retries.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// RetryInterval is a pause between failed attempts.
	RetryInterval time.Duration `mapstructure:"retry_interval" yaml:"retry_interval"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "gntnrs",
			SSLMode:   "disable",
			BatchSize: 50_000,
		},
		Taxonomy: TaxonomyConfig{
			Backend: "memory",
		},
		Index: IndexConfig{
			Engine: "memory",
		},
		Match: MatchConfig{
			MinScore:        0.01,
			MinPrefixLength: 5,
			DoFuzzy:         true,
			InferContext:    true,
			MatchSpToGenus:  true,
		},
		Verifier: VerifierConfig{
			URL:           "https://verifier.globalnames.org/api/v1",
			Timeout:       10 * time.Second,
			RetryInterval: time.Second,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}

// SQLitePath returns the path of the SQLite database file.
func (c *Config) SQLitePath() string {
	if c.Taxonomy.SQLitePath != "" {
		return c.Taxonomy.SQLitePath
	}
	return SQLiteFilePath(c.HomeDir)
}
