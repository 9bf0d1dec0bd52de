package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	envEntriesDir  = "QUIETQUILL_ENTRIES_DIR"
	envAccountsDSN = "QUIETQUILL_ACCOUNTS_DSN"
	envLogLevel    = "QUIETQUILL_LOG_LEVEL"
)

// parseEnv overlays cfg with values from the process environment, after
// loading a .env file from the working directory when one exists. Variables
// already set in the environment win over .env contents (godotenv never
// overrides).
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(envEntriesDir); v != "" {
		cfg.EntriesDir = v
	}
	if v := os.Getenv(envAccountsDSN); v != "" {
		cfg.AccountsDSN = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = v
	}
}
