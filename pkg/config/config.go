package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
)

// Config holds the ambient settings of the app: where the data and log files
// live and how verbose the log is. Values come from the environment and can
// be overridden with flags.
type Config struct {
	DBFile   string `env:"PT_DB_FILE"`
	LogFile  string `env:"PT_LOG_FILE"`
	LogLevel string `env:"PT_LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment and the given command-line arguments
// (os.Args[1:]). Unset file locations default to ~/.project-tracker/.
func Load(args []string) (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	flags := pflag.NewFlagSet("project-tracker", pflag.ContinueOnError)
	dbFile := flags.String("db", "", "location of the sqlite data file")
	logFile := flags.String("log", "", "location of the log file")
	logLevel := flags.String("log-level", "", "log level (debug, info, warn, error)")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if *dbFile != "" {
		cfg.DBFile = *dbFile
	}

	if *logFile != "" {
		cfg.LogFile = *logFile
	}

	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	if cfg.DBFile == "" || cfg.LogFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate home directory: %w", err)
		}

		dir := filepath.Join(home, ".project-tracker")

		if cfg.DBFile == "" {
			cfg.DBFile = filepath.Join(dir, "data.sqlite")
		}

		if cfg.LogFile == "" {
			cfg.LogFile = filepath.Join(dir, "debug.log")
		}
	}

	return &cfg, nil
}
