package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDataset(); err != nil {
		return err
	}
	if c.Plot.Width <= 0 || c.Plot.Height <= 0 {
		return errors.New("plot.width and plot.height must be positive")
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if c.Export.Workers < 1 || c.Export.QueueSize < 1 {
		return errors.New("export.workers and export.queue_size must be at least 1")
	}
	return c.validateLogging()
}

func (c *Config) validateDataset() error {
	if strings.TrimSpace(c.Dataset.Path) == "" && strings.TrimSpace(c.Dataset.URL) == "" {
		return errors.New("dataset.path or dataset.url must be set")
	}
	if c.Dataset.SampleTarget < 1 {
		return errors.New("dataset.sample_target must be at least 1")
	}
	return nil
}

func (c *Config) validateServer() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr must be set")
	}
	if c.Server.ReadHeaderTimeoutSeconds < 0 || c.Server.ShutdownTimeoutSeconds < 0 {
		return errors.New("server timeouts cannot be negative")
	}
	if c.Server.MaxSessions < 0 || c.Server.SessionIdleMinutes < 0 {
		return errors.New("server session limits cannot be negative")
	}
	return nil
}

func (c *Config) validateStorage() error {
	switch c.Storage.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Storage.Path) == "" {
			return errors.New("storage.path must be set for the sqlite driver")
		}
	case DriverNone:
	default:
		return fmt.Errorf("storage.driver: unsupported value %q", c.Storage.Driver)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
