// Package config provides configuration management for OctoFit Tracker.
// Configuration can be loaded from YAML files and environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StorageConfig holds profile storage settings.
type StorageConfig struct {
	// Driver selects the storage backend: "jsonfile", "sqlite" or "memory".
	Driver string `mapstructure:"driver"`

	// DataFile is the path to the JSON backing file (jsonfile driver).
	DataFile string `mapstructure:"data_file"`

	// SQLite settings (used when Driver is "sqlite").
	SQLite SQLiteConfig `mapstructure:"sqlite"`
}

// SQLiteConfig holds embedded database settings.
type SQLiteConfig struct {
	// Path is the path to the SQLite database file.
	Path string `mapstructure:"path"`

	// JournalMode sets the SQLite journal mode (WAL recommended).
	JournalMode string `mapstructure:"journal_mode"`

	// BusyTimeout sets the busy timeout in milliseconds.
	BusyTimeout int `mapstructure:"busy_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the specified file and environment variables.
// Environment variables take precedence over file values and are prefixed
// with OCTOFIT_ using _ as separator.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("OCTOFIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	// Config file is optional - environment variables can be used instead.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", "jsonfile")
	v.SetDefault("storage.data_file", "./data/profiles.json")
	v.SetDefault("storage.sqlite.path", "./data/octofit.db")
	v.SetDefault("storage.sqlite.journal_mode", "WAL")
	v.SetDefault("storage.sqlite.busy_timeout", 5000)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Validate checks the configuration for required values.
func (c *Config) Validate() error {
	validDrivers := map[string]bool{"jsonfile": true, "sqlite": true, "memory": true}
	if !validDrivers[c.Storage.Driver] {
		return fmt.Errorf("storage.driver must be 'jsonfile', 'sqlite' or 'memory'")
	}

	if c.Storage.Driver == "jsonfile" && c.Storage.DataFile == "" {
		return fmt.Errorf("storage.data_file is required for jsonfile driver")
	}
	if c.Storage.Driver == "sqlite" && c.Storage.SQLite.Path == "" {
		return fmt.Errorf("storage.sqlite.path is required for sqlite driver")
	}

	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level must be one of: trace, debug, info, warn, error, fatal, panic")
	}

	return nil
}

// MustLoad loads configuration or panics on error.
// Useful for main function initialization.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}
