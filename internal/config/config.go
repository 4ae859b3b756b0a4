// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Storage  StorageConfig  `toml:"storage"`
	Schedule ScheduleConfig `toml:"schedule"`
	UI       UIConfig       `toml:"ui"`
	User     UserConfig     `toml:"user"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// ScheduleConfig holds scheduling behavior settings.
type ScheduleConfig struct {
	MovePolicy         string `toml:"move_policy"`          // "reject" or "cascade"
	HolidayWarningDays int    `toml:"holiday_warning_days"` // lookahead for upcoming-holiday warnings
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "dark", "light" or "auto"
}

// UserConfig holds the operator identity.
type UserConfig struct {
	Role string `toml:"role"` // "administrator", "technician", "viewer"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Schedule: ScheduleConfig{
			MovePolicy:         "reject",
			HolidayWarningDays: 14,
		},
		UI: UIConfig{
			Theme: "dark",
		},
		User: UserConfig{
			Role: "technician",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cronograma.db"
	}
	return filepath.Join(home, ".local", "share", "cronograma", "cronograma.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "cronograma", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CRONOGRAMA_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("CRONOGRAMA_MOVE_POLICY"); v != "" {
		cfg.Schedule.MovePolicy = v
	}
	if v := os.Getenv("CRONOGRAMA_HOLIDAY_WARNING_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Schedule.HolidayWarningDays = n
		}
	}
	if v := os.Getenv("CRONOGRAMA_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("CRONOGRAMA_ROLE"); v != "" {
		cfg.User.Role = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}

	switch c.Schedule.MovePolicy {
	case "reject", "cascade":
	default:
		return fmt.Errorf("move_policy must be \"reject\" or \"cascade\", got %q", c.Schedule.MovePolicy)
	}

	if c.Schedule.HolidayWarningDays < 0 {
		return errors.New("holiday_warning_days must not be negative")
	}

	switch c.UI.Theme {
	case "dark", "light", "auto":
	default:
		return fmt.Errorf("theme must be \"dark\", \"light\" or \"auto\", got %q", c.UI.Theme)
	}

	switch c.User.Role {
	case "administrator", "technician", "viewer":
	default:
		return fmt.Errorf("unknown role %q", c.User.Role)
	}

	return nil
}

// Write serializes the config to the given path, creating parent
// directories as needed.
func (c *Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
