// Package config loads application configuration with viper.
//
// Sources, in precedence order: explicit flags (applied by cmd/server),
// environment variables with the TIMELEDGER_ prefix, an optional config
// file, and the defaults below.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the server.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Reports  ReportsConfig  `mapstructure:"reports"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	Host         string        `mapstructure:"host"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DatabaseConfig holds the SQLite database location.
type DatabaseConfig struct {
	// Path is the SQLite file path; ":memory:" for an in-memory database.
	Path string `mapstructure:"path"`
}

// ReportsConfig holds tenant-independent reporting defaults.
type ReportsConfig struct {
	// DefaultRounding is the rounding step used when a tenant has none.
	DefaultRounding int `mapstructure:"default_rounding"`
	// WeekStartsOn is the default payroll week start: 0 Sunday, 1 Monday.
	WeekStartsOn int `mapstructure:"week_starts_on"`
	// OvertimeThresholdHours is the default weekly overtime threshold.
	OvertimeThresholdHours float64 `mapstructure:"overtime_threshold_hours"`
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from the optional file path, the environment
// and the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.environment", "development")
	v.SetDefault("database.path", "timeledger.db")
	v.SetDefault("reports.default_rounding", 0)
	v.SetDefault("reports.week_starts_on", 0)
	v.SetDefault("reports.overtime_threshold_hours", 40.0)

	v.SetEnvPrefix("TIMELEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
