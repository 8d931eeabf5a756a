// Package config loads the settings of cmd/demo: log level, the default
// removal strategy for newly created Iterable collections, and how often
// the list command prints a running count. A single Config struct
// is loaded once from flags, environment variables, and .env files,
// instead of one free function per setting.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/r-near/near-sdk-go/internal/log"
)

// Config holds every knob the demo CLI reads from flags, environment
// variables, or .env files.
type Config struct {
	// LogLevel is parsed by ParsedLogLevel; at "debug" the demo CLI opens
	// its host with store/memhost.WithDebug(), which traces every host call
	// through internal/log. The core collections package never logs, so
	// this has no effect on it.
	LogLevel string

	// ReverseIndexByDefault selects collections.WithReverseIndex() for the
	// IterableMap the demo CLI creates.
	ReverseIndexByDefault bool

	// IterationChunkSize sets how often the demo CLI's "list" command
	// prints a running-count line: one after every IterationChunkSize
	// entries. Entries are read one at a time through Iterator.Next()
	// regardless of this value.
	IterationChunkSize int
}

// Default returns the configuration used when no flag, environment
// variable, or .env file overrides a setting.
func Default() Config {
	return Config{
		LogLevel:              "info",
		ReverseIndexByDefault: false,
		IterationChunkSize:    100,
	}
}

// Load reads .env/.env.local (if present), then environment variables
// prefixed NEARKV_, then whatever flags the caller has already bound to
// viper via BindFlags, layered over Default().
func Load() Config {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	viper.SetEnvPrefix("nearkv")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	cfg := Default()
	if viper.IsSet("log-level") {
		cfg.LogLevel = viper.GetString("log-level")
	}
	if viper.IsSet("reverse-index") {
		cfg.ReverseIndexByDefault = viper.GetBool("reverse-index")
	}
	if viper.IsSet("iteration-chunk-size") {
		cfg.IterationChunkSize = viper.GetInt("iteration-chunk-size")
	}
	return cfg
}

// BindFlags registers the flags Load() reads, and binds them to viper so
// command-line values take precedence over environment variables.
func BindFlags(cmd *cobra.Command) error {
	cmd.PersistentFlags().String("log-level", "info", "Log level for the demo shell and memhost debug tracing (debug, info, warn, error)")
	cmd.PersistentFlags().Bool("reverse-index", false, "Create new Iterable collections with a reverse index by default")
	cmd.PersistentFlags().Int("iteration-chunk-size", 100, "Entries listed between running-count lines when listing a collection")
	return viper.BindPFlags(cmd.PersistentFlags())
}

// ParsedLogLevel parses cfg.LogLevel, falling back to log.LevelInfo on an
// unrecognized value.
func (cfg Config) ParsedLogLevel() log.Level {
	return log.ParseLevel(cfg.LogLevel)
}
