// Package config assembles runtime settings for QuietQuill from defaults,
// an optional JSON file, an optional .env file and command-line flags, in
// that order; later sources take precedence.
package config

// Config holds runtime settings.
//
// Fields:
//   - EntriesDir: root directory of the per-user entry trees.
//   - AccountsDSN: sqlite DSN of the account store.
//   - LogLevel: slog level name (debug, info, warn, error).
type Config struct {
	EntriesDir  string
	AccountsDSN string
	LogLevel    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.EntriesDir = "entries"
	c.AccountsDSN = "db/users.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment (if present) and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
