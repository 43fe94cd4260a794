package config

import (
	"strings"
	"time"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseBatchSize sets the number of records to process per batch.
// Used for bulk operations in populate and optimize phases.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptTaxonomyBackend sets where taxonomy data is kept.
// Valid values: "memory", "postgres", "sqlite".
func OptTaxonomyBackend(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Taxonomy.Backend", s) {
			c.Taxonomy.Backend = s
		}
	}
}

// OptTaxonomyDir sets the directory with OTT files.
func OptTaxonomyDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Taxonomy Dir", s) {
			c.Taxonomy.Dir = s
		}
	}
}

// OptTaxonomySQLitePath sets the file of the sqlite backend.
func OptTaxonomySQLitePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Taxonomy SQLite Path", s) {
			c.Taxonomy.SQLitePath = s
		}
	}
}

// OptIndexEngine sets the name index engine.
// Valid values: "memory", "bleve".
func OptIndexEngine(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Index.Engine", s) {
			c.Index.Engine = s
		}
	}
}

// OptIndexPath sets the directory of a persistent bleve index.
func OptIndexPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Index Path", s) {
			c.Index.Path = s
		}
	}
}

// OptMatchMinScore sets the lowest score of kept fuzzy matches.
// The value must be in (0, 1].
func OptMatchMinScore(f float64) Option {
	return func(c *Config) {
		if isValidFloat("Match MinScore", f) {
			c.Match.MinScore = f
		}
	}
}

// OptMatchMinPrefixLength sets the shortest query for prefix lookups.
func OptMatchMinPrefixLength(i int) Option {
	return func(c *Config) {
		if isValidInt("Match MinPrefixLength", i) {
			c.Match.MinPrefixLength = i
		}
	}
}

func OptMatchDoFuzzy(b bool) Option {
	return func(c *Config) {
		c.Match.DoFuzzy = b
	}
}

func OptMatchInferContext(b bool) Option {
	return func(c *Config) {
		c.Match.InferContext = b
	}
}

func OptMatchSpToGenus(b bool) Option {
	return func(c *Config) {
		c.Match.MatchSpToGenus = b
	}
}

// OptMatchParseNames turns on normalization of queries by GNparser.
func OptMatchParseNames(b bool) Option {
	return func(c *Config) {
		c.Match.ParseNames = b
	}
}

// OptMatchIncludeDubious adds dubious taxa to matches.
// Runtime-only field - not in ToOptions().
func OptMatchIncludeDubious(b bool) Option {
	return func(c *Config) {
		c.Match.IncludeDubious = b
	}
}

// OptMatchIncludeDeprecated adds deprecated taxa to matches.
// Runtime-only field - not in ToOptions().
func OptMatchIncludeDeprecated(b bool) Option {
	return func(c *Config) {
		c.Match.IncludeDeprecated = b
	}
}

// OptVerifierEnabled turns on GNverifier for names the taxonomy does not
// match.
func OptVerifierEnabled(b bool) Option {
	return func(c *Config) {
		c.Verifier.Enabled = b
	}
}

// OptVerifierURL sets the GNverifier API URL.
func OptVerifierURL(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "/")
	return func(c *Config) {
		if isValidString("Verifier URL", s) {
			c.Verifier.URL = s
		}
	}
}

// OptVerifierTimeout sets the overall time limit of a verification.
func OptVerifierTimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Verifier Timeout", d) {
			c.Verifier.Timeout = d
		}
	}
}

// OptVerifierRetryInterval sets the pause between verification attempts.
func OptVerifierRetryInterval(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Verifier RetryInterval", d) {
			c.Verifier.RetryInterval = d
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
