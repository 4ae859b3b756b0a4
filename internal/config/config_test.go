package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Schedule.MovePolicy != "reject" {
		t.Errorf("expected move_policy reject, got %s", cfg.Schedule.MovePolicy)
	}
	if cfg.Schedule.HolidayWarningDays != 14 {
		t.Errorf("expected holiday_warning_days 14, got %d", cfg.Schedule.HolidayWarningDays)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("expected theme dark, got %s", cfg.UI.Theme)
	}
	if cfg.User.Role != "technician" {
		t.Errorf("expected role technician, got %s", cfg.User.Role)
	}
	if cfg.Storage.DBPath == "" {
		t.Error("expected default db_path to be set")
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.Schedule.MovePolicy != "reject" {
		t.Errorf("expected default move_policy, got %s", cfg.Schedule.MovePolicy)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[storage]
db_path = "/tmp/test.db"

[schedule]
move_policy = "cascade"
holiday_warning_days = 7

[ui]
theme = "light"

[user]
role = "administrator"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
	if cfg.Schedule.MovePolicy != "cascade" {
		t.Errorf("expected move_policy cascade, got %s", cfg.Schedule.MovePolicy)
	}
	if cfg.Schedule.HolidayWarningDays != 7 {
		t.Errorf("expected holiday_warning_days 7, got %d", cfg.Schedule.HolidayWarningDays)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("expected theme light, got %s", cfg.UI.Theme)
	}
	if cfg.User.Role != "administrator" {
		t.Errorf("expected role administrator, got %s", cfg.User.Role)
	}
}

func TestLoadFrom_PartialFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[schedule]
move_policy = "cascade"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Schedule.MovePolicy != "cascade" {
		t.Errorf("expected move_policy cascade, got %s", cfg.Schedule.MovePolicy)
	}
	// Untouched sections keep defaults
	if cfg.UI.Theme != "dark" {
		t.Errorf("expected default theme, got %s", cfg.UI.Theme)
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	if err := os.WriteFile(configPath, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CRONOGRAMA_MOVE_POLICY", "cascade")
	t.Setenv("CRONOGRAMA_HOLIDAY_WARNING_DAYS", "30")
	t.Setenv("CRONOGRAMA_ROLE", "viewer")

	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Schedule.MovePolicy != "cascade" {
		t.Errorf("expected move_policy cascade, got %s", cfg.Schedule.MovePolicy)
	}
	if cfg.Schedule.HolidayWarningDays != 30 {
		t.Errorf("expected holiday_warning_days 30, got %d", cfg.Schedule.HolidayWarningDays)
	}
	if cfg.User.Role != "viewer" {
		t.Errorf("expected role viewer, got %s", cfg.User.Role)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"empty db_path", func(c *Config) { c.Storage.DBPath = "" }, true},
		{"bad move_policy", func(c *Config) { c.Schedule.MovePolicy = "prompt" }, true},
		{"negative warning days", func(c *Config) { c.Schedule.HolidayWarningDays = -1 }, true},
		{"auto theme", func(c *Config) { c.UI.Theme = "auto" }, false},
		{"bad theme", func(c *Config) { c.UI.Theme = "solarized" }, true},
		{"bad role", func(c *Config) { c.User.Role = "root" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.toml")

	cfg := Default()
	cfg.Schedule.MovePolicy = "cascade"
	cfg.UI.Theme = "light"

	if err := cfg.Write(configPath); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if got.Schedule.MovePolicy != "cascade" {
		t.Errorf("expected move_policy cascade, got %s", got.Schedule.MovePolicy)
	}
	if got.UI.Theme != "light" {
		t.Errorf("expected theme light, got %s", got.UI.Theme)
	}
}
