package models

import (
	"time"
)

// Storage drivers for run history.
const (
	StorageYAML   = "yaml"
	StorageSQLite = "sqlite"
)

// Config represents the main tictoc configuration
type Config struct {
	// DefaultUnit is the unit used when a command does not name one.
	DefaultUnit string `yaml:"default_unit" toml:"default_unit" json:"default_unit"`

	// Storage configuration
	StorageDriver string `yaml:"storage_driver" toml:"storage_driver" json:"storage_driver"` // "yaml" or "sqlite"
	DataDir       string `yaml:"data_dir,omitempty" toml:"data_dir,omitempty" json:"data_dir,omitempty"`
	HistoryLimit  int    `yaml:"history_limit" toml:"history_limit" json:"history_limit"`

	Log    LogConfig    `yaml:"log" toml:"log" json:"log"`
	Server ServerConfig `yaml:"server" toml:"server" json:"server"`

	// Debug mode
	Debug bool `yaml:"debug,omitempty" toml:"debug,omitempty" json:"debug,omitempty"`

	// Metadata
	Version   string    `yaml:"version" toml:"version" json:"version"`
	UpdatedAt time.Time `yaml:"updated_at" toml:"updated_at" json:"updated_at"`
}

// LogConfig selects the log handler and level.
type LogConfig struct {
	Format string `yaml:"format" toml:"format" json:"format"` // "text" or "json"
	Level  string `yaml:"level" toml:"level" json:"level"`
}

// ServerConfig configures `tictoc serve`.
type ServerConfig struct {
	Addr      string `yaml:"addr" toml:"addr" json:"addr"`
	JWTSecret string `yaml:"jwt_secret,omitempty" toml:"jwt_secret,omitempty" json:"-"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DefaultUnit:   "ms",
		StorageDriver: StorageYAML,
		HistoryLimit:  1000,
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:7878",
		},
		Version:   "1.0.0",
		UpdatedAt: time.Now(),
	}
}
