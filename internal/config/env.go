package config

import "strings"

// Environment variables that override file settings.
const (
	EnvDataset  = "TRACKSCOPE_DATASET"
	EnvAddr     = "TRACKSCOPE_ADDR"
	EnvCatalog  = "TRACKSCOPE_CATALOG"
	EnvLogLevel = "TRACKSCOPE_LOG_LEVEL"
	EnvStorage  = "STORAGE_DRIVER"
)

// applyEnv overrides fields from getenv. TRACKSCOPE_DATASET accepts a path or
// an http(s) URL.
func (c *Config) applyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvDataset)); v != "" {
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			c.Dataset.URL = v
		} else {
			c.Dataset.Path = v
			c.Dataset.URL = ""
		}
	}
	if v := strings.TrimSpace(getenv(EnvAddr)); v != "" {
		c.Server.Addr = v
	}
	if v := strings.TrimSpace(getenv(EnvCatalog)); v != "" {
		c.Storage.Path = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.Logging.Level = v
	}
	if v := strings.TrimSpace(getenv(EnvStorage)); v != "" {
		c.Storage.Driver = strings.ToLower(v)
	}
}
