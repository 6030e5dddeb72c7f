package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const defaultServerURL = "http://localhost:8000"

// CLIConfig holds CLI configuration persisted to disk.
type CLIConfig struct {
	ServerURL   string `yaml:"server_url,omitempty"`
	AccessToken string `yaml:"access_token,omitempty"`
	Timezone    string `yaml:"timezone,omitempty"`
}

// envConfig holds the SD_* overrides. Any non-empty value beats the file.
type envConfig struct {
	ServerURL string `env:"SD_SERVER_URL"`
	Token     string `env:"SD_TOKEN"`
	Timezone  string `env:"SD_TIMEZONE"`
	LogLevel  string `env:"SD_LOG_LEVEL"`
}

// configPath returns the path to the CLI config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "sd", "config.yaml"), nil
}

// loadConfig reads the CLI config from disk.
// Returns a zero-value config if the file doesn't exist.
func loadConfig() (CLIConfig, error) {
	path, err := configPath()
	if err != nil {
		return CLIConfig{}, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return CLIConfig{}, nil
	}
	if err != nil {
		return CLIConfig{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CLIConfig{}, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// saveConfig writes the CLI config to disk.
func saveConfig(cfg CLIConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// loadEnv reads the SD_* environment overrides.
func loadEnv() envConfig {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("parsing environment", "error", err)
	}
	return cfg
}

// getServerURL returns the server URL from flag, env var, config, or default.
func getServerURL() string {
	if flagServer != "" {
		return flagServer
	}
	if v := loadEnv().ServerURL; v != "" {
		return v
	}
	cfg, err := loadConfig()
	if err == nil && cfg.ServerURL != "" {
		return cfg.ServerURL
	}
	return defaultServerURL
}

// getToken returns the access token from env var or config.
func getToken() string {
	if v := loadEnv().Token; v != "" {
		return v
	}
	cfg, err := loadConfig()
	if err == nil {
		return cfg.AccessToken
	}
	return ""
}

// getLocation returns the zone comment times are shown in: SD_TIMEZONE,
// then the config file, then the local zone.
func getLocation() (*time.Location, error) {
	name := loadEnv().Timezone
	if name == "" {
		if cfg, err := loadConfig(); err == nil {
			name = cfg.Timezone
		}
	}
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}
