package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/lfaller/inspect-spacy-model/internal/registry"
)

// Config represents the application configuration
type Config struct {
	Model    ModelConfig    `mapstructure:"model"`
	Download DownloadConfig `mapstructure:"download"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ModelConfig struct {
	Default string `mapstructure:"default"`
	Dir     string `mapstructure:"dir"`
}

type DownloadConfig struct {
	TimeoutMinutes int  `mapstructure:"timeout_minutes"`
	CleanupStale   bool `mapstructure:"cleanup_stale"`
}

type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	File    string `mapstructure:"file"`
	Console bool   `mapstructure:"console"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	appDir := filepath.Join(home, ".spacy-inspect")

	return &Config{
		Model: ModelConfig{
			Default: registry.DefaultModel,
			Dir:     filepath.Join(appDir, "models"),
		},
		Download: DownloadConfig{
			TimeoutMinutes: 30,
			CleanupStale:   true,
		},
		Logging: LoggingConfig{
			Level:   "warn",
			File:    filepath.Join(appDir, "spacy-inspect.log"),
			Console: true,
		},
	}
}

// Load loads configuration from file, environment, and defaults
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	// Config file setup
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}

		v.AddConfigPath(filepath.Join(home, ".spacy-inspect"))
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	// Environment variables
	v.SetEnvPrefix("SPACY_INSPECT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is okay, use defaults
	}

	// Unmarshal into struct
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand paths
	cfg.ExpandPaths()

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Model.Default == "" {
		return errors.New("model.default must not be empty")
	}

	if c.Download.TimeoutMinutes < 1 || c.Download.TimeoutMinutes > 1440 {
		return errors.New("download.timeout_minutes must be between 1 and 1440")
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level must be one of: %v", validLevels)
	}

	return nil
}

// ExpandPaths expands ~ and environment variables in paths
func (c *Config) ExpandPaths() {
	c.Model.Dir = expandPath(c.Model.Dir)
	c.Logging.File = expandPath(c.Logging.File)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("model.default", cfg.Model.Default)
	v.SetDefault("model.dir", cfg.Model.Dir)

	v.SetDefault("download.timeout_minutes", cfg.Download.TimeoutMinutes)
	v.SetDefault("download.cleanup_stale", cfg.Download.CleanupStale)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.console", cfg.Logging.Console)
}
