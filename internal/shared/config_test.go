package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "" {
			t.Errorf("expected empty database path, got %s", config.Database.Path)
		}

		if config.Defaults.Font != "Calibri" {
			t.Errorf("expected default font Calibri, got %s", config.Defaults.Font)
		}

		if config.Defaults.Category != "autoadd" {
			t.Errorf("expected default category autoadd, got %s", config.Defaults.Category)
		}

		if config.Extract.SofficePath != "soffice" {
			t.Errorf("expected soffice path soffice, got %s", config.Extract.SofficePath)
		}

		if config.Extract.Timeout() != 2*time.Minute {
			t.Errorf("expected 2m converter timeout, got %v", config.Extract.Timeout())
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Defaults != defaultConfig.Defaults {
			t.Errorf("created config defaults don't match: %+v", config.Defaults)
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/songs.db"

[defaults]
font = "Arial"
category = "worship"

[extract]
timeout_seconds = 30
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/songs.db" {
			t.Errorf("expected database path /custom/songs.db, got %s", config.Database.Path)
		}

		if config.Defaults.Font != "Arial" || config.Defaults.Category != "worship" {
			t.Errorf("unexpected defaults: %+v", config.Defaults)
		}

		if config.Extract.Timeout() != 30*time.Second {
			t.Errorf("expected 30s timeout, got %v", config.Extract.Timeout())
		}

		if config.Extract.SofficePath != "soffice" {
			t.Errorf("missing keys should keep defaults, got soffice path %q", config.Extract.SofficePath)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv(EnvDatabasePath, "/env/songs.db")
		t.Setenv(EnvFont, "Verdana")
		t.Setenv(EnvTimeout, "45")

		config := DefaultConfig()
		if err := config.ApplyEnv(); err != nil {
			t.Fatalf("ApplyEnv failed: %v", err)
		}

		if config.Database.Path != "/env/songs.db" {
			t.Errorf("expected env database path, got %s", config.Database.Path)
		}
		if config.Defaults.Font != "Verdana" {
			t.Errorf("expected env font, got %s", config.Defaults.Font)
		}
		if config.Defaults.Category != "autoadd" {
			t.Errorf("unset env var should keep category, got %s", config.Defaults.Category)
		}
		if config.Extract.TimeoutSeconds != 45 {
			t.Errorf("expected timeout 45, got %d", config.Extract.TimeoutSeconds)
		}
	})

	t.Run("ApplyEnv invalid timeout", func(t *testing.T) {
		t.Setenv(EnvTimeout, "soon")

		err := DefaultConfig().ApplyEnv()
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("LoadEnv", func(t *testing.T) {
		envPath := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(envPath, []byte("VVSONG_CATEGORY=from-dotenv\n"), 0644); err != nil {
			t.Fatalf("failed to write .env: %v", err)
		}
		t.Setenv(EnvCategory, "")
		os.Unsetenv(EnvCategory)

		LoadEnv(envPath)

		if got := os.Getenv(EnvCategory); got != "from-dotenv" {
			t.Errorf("expected category from .env, got %q", got)
		}
	})
}
