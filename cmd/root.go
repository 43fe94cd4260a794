/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gntnrs/internal/iofs"
	"github.com/gnames/gntnrs/internal/iologger"
	gntnrs "github.com/gnames/gntnrs/pkg"
	"github.com/gnames/gntnrs/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", gntnrs.Version, gntnrs.Build),
		Use:     "gntnrs",
		Short:   "GNtnrs resolves taxonomic names against a taxonomy",
		Long: `GNtnrs is a taxonomic name resolution service. It matches scientific
name strings to taxa of the Open Tree Taxonomy (OTT) in a cascade of exact,
synonym and fuzzy lookups, infers a taxonomic context of a list of names
and answers autocomplete queries.

The taxonomy is read from OTT files into memory, or from a PostgreSQL or
SQLite database created by 'gntnrs create' and 'gntnrs populate'.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GNTNRS_*)
  3. Config file (~/.config/gntnrs/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (taxonomy.backend → GNTNRS_TAXONOMY_BACKEND).

  Examples:
    GNTNRS_TAXONOMY_BACKEND         memory, postgres or sqlite
    GNTNRS_TAXONOMY_DIR             directory with OTT files
    GNTNRS_DATABASE_HOST            PostgreSQL host
    GNTNRS_MATCH_MIN_SCORE          lowest score of fuzzy matches
    GNTNRS_VERIFIER_ENABLED         ask GNverifier about unmatched names
    GNTNRS_LOG_LEVEL                Log level (debug/info/warn/error)`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "gntnrs version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gntnrs")

	rootCmd.AddCommand(
		getMatchCmd(),
		getAutocompleteCmd(),
		getInferContextCmd(),
		getContextsCmd(),
		getLICACmd(),
		getSubtreeCmd(),
		getCreateCmd(),
		getMigrateCmd(),
		getPopulateCmd(),
		getOptimizeCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings and proper log file location
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"backend", cfg.Taxonomy.Backend,
	)

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
// Creates log file in the proper location now that we know HomeDir.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log)
}

func runRoot(cmd *cobra.Command, _ []string) error {
	versionFlag(cmd)
	gn.Info(
		"Configuration files are available at <em>%s</em>",
		config.ConfigDir(homeDir),
	)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("GNTNRS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.host", "GNTNRS_DATABASE_HOST")
	v.BindEnv("database.port", "GNTNRS_DATABASE_PORT")
	v.BindEnv("database.user", "GNTNRS_DATABASE_USER")
	v.BindEnv("database.password", "GNTNRS_DATABASE_PASSWORD")
	v.BindEnv("database.database", "GNTNRS_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "GNTNRS_DATABASE_SSL_MODE")
	v.BindEnv("database.batch_size", "GNTNRS_DATABASE_BATCH_SIZE")

	// Taxonomy configuration
	v.BindEnv("taxonomy.backend", "GNTNRS_TAXONOMY_BACKEND")
	v.BindEnv("taxonomy.dir", "GNTNRS_TAXONOMY_DIR")
	v.BindEnv("taxonomy.sqlite_path", "GNTNRS_TAXONOMY_SQLITE_PATH")

	// Index configuration
	v.BindEnv("index.engine", "GNTNRS_INDEX_ENGINE")
	v.BindEnv("index.path", "GNTNRS_INDEX_PATH")

	// Match configuration
	v.BindEnv("match.min_score", "GNTNRS_MATCH_MIN_SCORE")
	v.BindEnv("match.min_prefix_length", "GNTNRS_MATCH_MIN_PREFIX_LENGTH")
	v.BindEnv("match.do_fuzzy", "GNTNRS_MATCH_DO_FUZZY")
	v.BindEnv("match.infer_context", "GNTNRS_MATCH_INFER_CONTEXT")
	v.BindEnv("match.match_sp_to_genus", "GNTNRS_MATCH_MATCH_SP_TO_GENUS")
	v.BindEnv("match.parse_names", "GNTNRS_MATCH_PARSE_NAMES")

	// Verifier configuration
	v.BindEnv("verifier.enabled", "GNTNRS_VERIFIER_ENABLED")
	v.BindEnv("verifier.url", "GNTNRS_VERIFIER_URL")
	v.BindEnv("verifier.timeout", "GNTNRS_VERIFIER_TIMEOUT")
	v.BindEnv("verifier.retry_interval", "GNTNRS_VERIFIER_RETRY_INTERVAL")

	// Log configuration
	v.BindEnv("log.level", "GNTNRS_LOG_LEVEL")
	v.BindEnv("log.format", "GNTNRS_LOG_FORMAT")
	v.BindEnv("log.destination", "GNTNRS_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "GNTNRS_JOBS_NUMBER")

	v.AutomaticEnv()
}
