package config

import (
	"encoding/json"
	"os"

	"github.com/SidddhantJain/QuietQuill/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling; absent fields
// leave the current Config value untouched.
type JsonConfig struct {
	EntriesDir  string `json:"entries_dir"`
	AccountsDSN string `json:"accounts_dsn"`
	LogLevel    string `json:"log_level"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flags. When no file is given the function is a no-op; read or
// unmarshal errors panic (callers should treat a named-but-broken config
// file as fatal misconfiguration).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.EntriesDir != "" {
		cfg.EntriesDir = jc.EntriesDir
	}
	if jc.AccountsDSN != "" {
		cfg.AccountsDSN = jc.AccountsDSN
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
