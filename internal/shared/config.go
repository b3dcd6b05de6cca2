package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Environment variables that override values from the config file.
const (
	EnvDatabasePath = "VVSONG_DB_PATH"
	EnvFont         = "VVSONG_FONT"
	EnvCategory     = "VVSONG_CATEGORY"
	EnvSoffice      = "VVSONG_SOFFICE"
	EnvTimeout      = "VVSONG_TIMEOUT_SECONDS"
	EnvLogLevel     = "VVSONG_LOG_LEVEL"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Defaults DefaultsConfig `toml:"defaults"`
	Extract  ExtractConfig  `toml:"extract"`
	Log      LogConfig      `toml:"log"`
}

// DatabaseConfig contains song store connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// DefaultsConfig holds the values given to newly injected songs.
type DefaultsConfig struct {
	Font     string `toml:"font"`
	Category string `toml:"category"`
}

// ExtractConfig contains settings for the legacy presentation converter.
type ExtractConfig struct {
	SofficePath    string `toml:"soffice_path"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// Timeout returns the converter timeout as a [time.Duration].
func (c ExtractConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 2 * time.Minute
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnv loads the given .env files (default ".env") into the process
// environment. Missing files are ignored; variables already set win.
func LoadEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
		}
	}
}

// ApplyEnv overrides config values with VVSONG_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvDatabasePath); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvFont); v != "" {
		c.Defaults.Font = v
	}
	if v := os.Getenv(EnvCategory); v != "" {
		c.Defaults.Category = v
	}
	if v := os.Getenv(EnvSoffice); v != "" {
		c.Extract.SofficePath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvTimeout, v)
		}
		c.Extract.TimeoutSeconds = secs
	}
	return nil
}
