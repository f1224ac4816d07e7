package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/advisor"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/allocation"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// FileName is the config file at the project root.
const FileName = "budgetbuddy.yaml"

// Storage backends.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Config represents the top-level budgetbuddy.yaml configuration.
type Config struct {
	Currency string        `yaml:"currency"`
	Storage  StorageConfig `yaml:"storage"`
	Split    SplitConfig   `yaml:"split"`
	Advisor  AdvisorConfig `yaml:"advisor"`
	Log      LogConfig     `yaml:"log"`
}

// StorageConfig selects where records are kept. Relative paths resolve
// against the project directory.
type StorageConfig struct {
	Backend    string `yaml:"backend"`
	DataDir    string `yaml:"data_dir"`
	SQLitePath string `yaml:"sqlite_path"`
}

// SplitConfig is the default allocation split in percent.
type SplitConfig struct {
	Needs   float64 `yaml:"needs"`
	Wants   float64 `yaml:"wants"`
	Savings float64 `yaml:"savings"`
}

// AdvisorConfig tunes spending-pattern insights.
type AdvisorConfig struct {
	HighAverage  float64 `yaml:"high_average"`
	RecentWindow int     `yaml:"recent_window"`
	MinHistory   int     `yaml:"min_history"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a budgetbuddy.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	th := advisor.DefaultThresholds()
	return &Config{
		Currency: "$",
		Storage: StorageConfig{
			Backend:    BackendCSV,
			DataDir:    "data",
			SQLitePath: filepath.Join("data", "budgetbuddy.db"),
		},
		Split: SplitConfig{Needs: 50, Wants: 30, Savings: 20},
		Advisor: AdvisorConfig{
			HighAverage:  th.HighAverage.InexactFloat64(),
			RecentWindow: th.RecentWindow,
			MinHistory:   th.MinHistory,
		},
		Log: LogConfig{Level: "warn"},
	}
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var problems []string

	switch c.Storage.Backend {
	case BackendCSV:
		if c.Storage.DataDir == "" {
			problems = append(problems, "storage.data_dir cannot be empty")
		}
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			problems = append(problems, "storage.sqlite_path cannot be empty when using sqlite backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid storage backend %q: must be one of [%s %s]", c.Storage.Backend, BackendCSV, BackendSQLite))
	}

	if err := allocation.ValidateSplit(c.DefaultSplit()); err != nil {
		problems = append(problems, fmt.Sprintf("split: %v", err))
	}

	if c.Advisor.HighAverage < 0 {
		problems = append(problems, "advisor.high_average cannot be negative")
	}
	if c.Advisor.RecentWindow < 1 {
		problems = append(problems, "advisor.recent_window must be at least 1")
	}
	if c.Advisor.MinHistory < 0 {
		problems = append(problems, "advisor.min_history cannot be negative")
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level %q", c.Log.Level))
	}

	if len(problems) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

// DefaultSplit returns the configured split as decimals.
func (c *Config) DefaultSplit() model.TypeValues {
	return model.TypeValues{
		Needs:   decimal.NewFromFloat(c.Split.Needs),
		Wants:   decimal.NewFromFloat(c.Split.Wants),
		Savings: decimal.NewFromFloat(c.Split.Savings),
	}
}

// Thresholds returns the advisor thresholds.
func (c *Config) Thresholds() advisor.Thresholds {
	return advisor.Thresholds{
		HighAverage:  decimal.NewFromFloat(c.Advisor.HighAverage),
		RecentWindow: c.Advisor.RecentWindow,
		MinHistory:   c.Advisor.MinHistory,
	}
}

// DataPath resolves the data directory against root.
func (c *Config) DataPath(root string) string {
	return resolve(root, c.Storage.DataDir)
}

// SQLitePath resolves the database file against root.
func (c *Config) SQLitePath(root string) string {
	return resolve(root, c.Storage.SQLitePath)
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
