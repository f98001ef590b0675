package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LogConfig controls the zap logger.
type LogConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"` // console or json
	UseCases bool   `yaml:"use_cases"`
}

// ReportConfig holds defaults for report commands.
type ReportConfig struct {
	DefaultArea     string `yaml:"default_area"`
	WatchDebounceMs int    `yaml:"watch_debounce_ms"`
}

// Config holds all runtime configuration.
type Config struct {
	DBPath  string       `yaml:"db_path"`
	Log     LogConfig    `yaml:"log"`
	Reports ReportConfig `yaml:"reports"`
}

// DefaultConfig returns a Config with sensible defaults. Data lives under
// ~/.prodline unless overridden.
func DefaultConfig() Config {
	return Config{
		DBPath: filepath.Join(homeDir(), ".prodline", "prodline.db"),
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		Reports: ReportConfig{
			DefaultArea:     "Cabinet foaming",
			WatchDebounceMs: 250,
		},
	}
}

// DefaultConfigPath is where LoadConfig looks when PRODLINE_CONFIG is unset.
func DefaultConfigPath() string {
	return filepath.Join(homeDir(), ".prodline", "config.yaml")
}

// LoadConfig layers defaults, the YAML config file and environment
// variables, in that order. A missing config file is not an error.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	path := os.Getenv("PRODLINE_CONFIG")
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if err := loadFile(path, &cfg); err != nil {
		if !os.IsNotExist(err) || explicit {
			return cfg, err
		}
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PRODLINE_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PRODLINE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PRODLINE_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("PRODLINE_LOG_USE_CASES"); v != "" {
		cfg.Log.UseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PRODLINE_WATCH_DEBOUNCE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Reports.WatchDebounceMs = n
		}
	}
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
