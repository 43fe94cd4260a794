package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, IncludeDubious, IncludeDeprecated).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int
	s = c.Database.Host
	if s != "" {
		res = append(res, OptDatabaseHost(s))
	}
	i = c.Database.Port
	if i > 0 {
		res = append(res, OptDatabasePort(i))
	}
	s = c.Database.User
	if s != "" {
		res = append(res, OptDatabaseUser(s))
	}
	s = c.Database.Password
	if s != "" {
		res = append(res, OptDatabasePassword(s))
	}
	s = c.Database.Database
	if s != "" {
		res = append(res, OptDatabaseDatabase(s))
	}
	s = c.Database.SSLMode
	if s != "" {
		res = append(res, OptDatabaseSSLMode(s))
	}
	i = c.Database.BatchSize
	if i > 0 {
		res = append(res, OptDatabaseBatchSize(i))
	}

	s = c.Taxonomy.Backend
	if s != "" {
		res = append(res, OptTaxonomyBackend(s))
	}
	s = c.Taxonomy.Dir
	if s != "" {
		res = append(res, OptTaxonomyDir(s))
	}
	s = c.Taxonomy.SQLitePath
	if s != "" {
		res = append(res, OptTaxonomySQLitePath(s))
	}

	s = c.Index.Engine
	if s != "" {
		res = append(res, OptIndexEngine(s))
	}
	s = c.Index.Path
	if s != "" {
		res = append(res, OptIndexPath(s))
	}

	if c.Match.MinScore > 0 {
		res = append(res, OptMatchMinScore(c.Match.MinScore))
	}
	i = c.Match.MinPrefixLength
	if i > 0 {
		res = append(res, OptMatchMinPrefixLength(i))
	}
	res = append(res,
		OptMatchDoFuzzy(c.Match.DoFuzzy),
		OptMatchInferContext(c.Match.InferContext),
		OptMatchSpToGenus(c.Match.MatchSpToGenus),
		OptMatchParseNames(c.Match.ParseNames),
	)

	res = append(res, OptVerifierEnabled(c.Verifier.Enabled))
	s = c.Verifier.URL
	if s != "" {
		res = append(res, OptVerifierURL(s))
	}
	if c.Verifier.Timeout > 0 {
		res = append(res, OptVerifierTimeout(c.Verifier.Timeout))
	}
	if c.Verifier.RetryInterval > 0 {
		res = append(res, OptVerifierRetryInterval(c.Verifier.RetryInterval))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidFloat(name string, f float64) bool {
	res := f > 0 && f <= 1
	if !res {
		gn.Warn("<em>%s</em> has to be in (0, 1] range, ignoring %g", name, f)
	}
	return res
}

func isValidDuration(name string, d time.Duration) bool {
	res := d > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive duration, ignoring %s", name, d)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Database.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Log.Level":        {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":       {"json": s, "text": s, "tint": s},
		"Log.Destination":  {"file": s, "stderr": s, "stdout": s},
		"Taxonomy.Backend": {"memory": s, "postgres": s, "sqlite": s},
		"Index.Engine":     {"memory": s, "bleve": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	} else {
		gn.Warn(
			"<em>%s</em> does not support '%s' as a value. "+
				"Valid values are: \n%s\nIgnoring...",
			name, val, strings.Join(lines, "\n"),
		)
		return false
	}
}
