package config

import (
	"os"
	"strings"
)

// Environment variables that override budgetbuddy.yaml.
const (
	EnvBackend    = "BUDGETBUDDY_BACKEND"
	EnvDataDir    = "BUDGETBUDDY_DATA_DIR"
	EnvSQLitePath = "BUDGETBUDDY_SQLITE_PATH"
	EnvLogLevel   = "BUDGETBUDDY_LOG_LEVEL"
	EnvCurrency   = "BUDGETBUDDY_CURRENCY"
)

// ApplyEnv overlays any set BUDGETBUDDY_* variables onto c.
func (c *Config) ApplyEnv() {
	if v := getEnv(EnvBackend); v != "" {
		c.Storage.Backend = strings.ToLower(v)
	}
	if v := getEnv(EnvDataDir); v != "" {
		c.Storage.DataDir = v
	}
	if v := getEnv(EnvSQLitePath); v != "" {
		c.Storage.SQLitePath = v
	}
	if v := getEnv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := getEnv(EnvCurrency); v != "" {
		c.Currency = v
	}
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
