package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// =============================================================================
// Config Types
// =============================================================================

// Config holds all application configuration.
type Config struct {
	Output   OutputConfig   `mapstructure:"output"`
	Database DatabaseConfig `mapstructure:"database"`
	Docker   DockerConfig   `mapstructure:"docker"`
	Compose  ComposeConfig  `mapstructure:"compose"`
	Estimate EstimateConfig `mapstructure:"estimate"`
	Log      LogConfig      `mapstructure:"log"`
}

// OutputConfig holds artifact output configuration.
type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// DatabaseConfig holds run history configuration. An empty DSN disables
// run history entirely.
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// DockerConfig holds Docker client configuration.
type DockerConfig struct {
	Host string `mapstructure:"host"`
}

// ComposeConfig holds compose file discovery configuration.
type ComposeConfig struct {
	// Files are explicit compose files to analyze.
	Files []string `mapstructure:"files"`

	// SearchPaths are directories probed for conventionally named
	// compose files.
	SearchPaths []string `mapstructure:"search_paths"`
}

// EstimateConfig tunes the migration duration model.
type EstimateConfig struct {
	MinutesPerContainer float64 `mapstructure:"minutes_per_container"`
	ParallelEfficiency  float64 `mapstructure:"parallel_efficiency"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// =============================================================================
// Config Loading
// =============================================================================

// LoadConfig loads configuration from file and environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("output.dir", ".")
	v.SetDefault("database.dsn", "./data/podshift.db")
	v.SetDefault("docker.host", "")
	v.SetDefault("compose.files", []string{})
	v.SetDefault("compose.search_paths", []string{"."})
	v.SetDefault("estimate.minutes_per_container", 5.0)
	v.SetDefault("estimate.parallel_efficiency", 0.7)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Load from file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			// Only return error if file was explicitly specified and is invalid
			if _, ok := err.(viper.ConfigParseError); ok {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
			// File not found is OK, we'll use defaults
		}
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("PODSHIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks configuration values against the duration model's bounds.
func (c *Config) Validate() error {
	if c.Estimate.MinutesPerContainer < 0 {
		return fmt.Errorf("estimate.minutes_per_container must not be negative")
	}
	if c.Estimate.ParallelEfficiency < 0 || c.Estimate.ParallelEfficiency > 1 {
		return fmt.Errorf("estimate.parallel_efficiency must be between 0 and 1")
	}
	return nil
}

// =============================================================================
// Logger Setup
// =============================================================================

// SetupLogger creates a logger with the configured level and format.
func SetupLogger(cfg *Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Log.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
