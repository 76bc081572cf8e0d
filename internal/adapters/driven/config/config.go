// Package config loads the agent's settings. Values come from the
// environment, optionally seeded from a .env file in the working
// directory and defaulted from a TOML settings file; the environment
// always wins over the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/datamoor/csvrelay/internal/core/domain"
	"github.com/datamoor/csvrelay/internal/logger"
)

// Config holds all agent settings.
type Config struct {
	// SourceDir is the directory tree to watch for CSV files.
	SourceDir string

	// DestUser and DestHost identify the remote account for transfers.
	DestUser string
	DestHost string

	// DestDir is the remote base directory; files land in
	// DestDir/<table>.
	DestDir string

	// TemplateDir holds the header template files.
	TemplateDir string

	// DataDir is where the history database lives. Empty means the
	// default under the user's home directory.
	DataDir string

	// PollInterval is the monitor's rescan interval.
	PollInterval time.Duration

	// TransferTimeout bounds a single transfer. Zero means unbounded.
	TransferTimeout time.Duration
}

// fileConfig mirrors the optional TOML settings file.
type fileConfig struct {
	SourceDir       string `toml:"source_dir"`
	DestUser        string `toml:"dest_user"`
	DestHost        string `toml:"dest_host"`
	DestDir         string `toml:"dest_dir"`
	TemplateDir     string `toml:"template_dir"`
	DataDir         string `toml:"data_dir"`
	PollInterval    string `toml:"poll_interval"`
	TransferTimeout string `toml:"transfer_timeout"`
}

// Load reads the agent configuration. configPath names the TOML
// settings file; empty means ~/.csvrelay/config.toml. A missing .env or
// settings file is fine; a missing required value is not.
func Load(configPath string) (*Config, error) {
	// Seed the environment from .env if present, without overriding
	// values already set.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("Could not read .env file: %v", err)
	}

	defaults, err := loadFile(configPath)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		SourceDir:   fromEnv("SOURCE_DIR", defaults.SourceDir),
		DestUser:    fromEnv("DEST_USER", defaults.DestUser),
		DestHost:    fromEnv("DEST_HOST", defaults.DestHost),
		DestDir:     fromEnv("DEST_DIR", defaults.DestDir),
		TemplateDir: fromEnv("TEMPLATE_DIR", defaults.TemplateDir),
		DataDir:     fromEnv("DATA_DIR", defaults.DataDir),
	}

	cfg.PollInterval, err = durationSetting("POLL_INTERVAL", defaults.PollInterval, 2*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.TransferTimeout, err = durationSetting("TRANSFER_TIMEOUT", defaults.TransferTimeout, 0)
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks that every required setting is present.
func (c *Config) validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"SOURCE_DIR", c.SourceDir},
		{"DEST_USER", c.DestUser},
		{"DEST_HOST", c.DestHost},
		{"DEST_DIR", c.DestDir},
		{"TEMPLATE_DIR", c.TemplateDir},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s", domain.ErrMissingConfig, r.name)
		}
	}
	return nil
}

// loadFile reads the optional TOML settings file.
func loadFile(configPath string) (fileConfig, error) {
	var fc fileConfig

	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fc, nil // No home, no default settings file.
		}
		configPath = filepath.Join(home, ".csvrelay", "config.toml")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fc, nil
		}
		return fc, fmt.Errorf("reading settings file %s: %w", configPath, err)
	}

	if err := toml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parsing settings file %s: %w", configPath, err)
	}
	return fc, nil
}

// fromEnv returns the environment value for key, or the file default.
func fromEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// durationSetting resolves a duration from env, file default, then a
// built-in default.
func durationSetting(key, fileValue string, builtin time.Duration) (time.Duration, error) {
	raw := fromEnv(key, fileValue)
	if raw == "" {
		return builtin, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a duration", domain.ErrInvalidInput, key, raw)
	}
	return d, nil
}
