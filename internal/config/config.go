// Package config loads trackscope settings from TOML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Dataset locates the track table.
type Dataset struct {
	Path         string `toml:"path"`
	URL          string `toml:"url"`
	SampleTarget int    `toml:"sample_target"`
}

// Plot is the pixel size of the plotting area.
type Plot struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Server contains HTTP server settings.
type Server struct {
	Addr                     string `toml:"addr"`
	ReadHeaderTimeoutSeconds int    `toml:"read_header_timeout_seconds"`
	ShutdownTimeoutSeconds   int    `toml:"shutdown_timeout_seconds"`
	MaxSessions              int    `toml:"max_sessions"`
	SessionIdleMinutes       int    `toml:"session_idle_minutes"`
}

// Storage selects the catalog cache backend.
type Storage struct {
	Driver string `toml:"driver"` // sqlite | none
	Path   string `toml:"path"`
}

// Export configures the background chart export pool.
type Export struct {
	Dir       string `toml:"dir"`
	Workers   int    `toml:"workers"`
	QueueSize int    `toml:"queue_size"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for trackscope.
type Config struct {
	Dataset Dataset `toml:"dataset"`
	Plot    Plot    `toml:"plot"`
	Server  Server  `toml:"server"`
	Storage Storage `toml:"storage"`
	Export  Export  `toml:"export"`
	Logging Logging `toml:"logging"`
}

// Load parses path over the defaults, applies environment overrides and
// validates the result. A missing file leaves the defaults in place; an
// empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.Open(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("open config: %w", err)
		default:
			defer file.Close()
			if err := toml.NewDecoder(file).DisallowUnknownFields().Decode(&cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ReadHeaderTimeout returns the server read header timeout.
func (c *Config) ReadHeaderTimeout() time.Duration {
	return time.Duration(c.Server.ReadHeaderTimeoutSeconds) * time.Second
}

// ShutdownTimeout returns the grace period for in-flight requests on shutdown.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}

// SessionIdleTTL returns how long an untouched session is kept.
func (c *Config) SessionIdleTTL() time.Duration {
	return time.Duration(c.Server.SessionIdleMinutes) * time.Minute
}

// CatalogEnabled reports whether a catalog cache is configured.
func (c *Config) CatalogEnabled() bool {
	return c.Storage.Driver == DriverSQLite
}
