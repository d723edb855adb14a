package config

import "github.com/ewilliams-labs/trackscope/internal/core/domain"

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverNone   = "none"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Dataset: Dataset{
			Path:         "dataset.csv",
			SampleTarget: domain.DefaultSampleTarget,
		},
		Plot: Plot{
			Width:  domain.DefaultPlot.Width,
			Height: domain.DefaultPlot.Height,
		},
		Server: Server{
			Addr:                     ":8080",
			ReadHeaderTimeoutSeconds: 15,
			ShutdownTimeoutSeconds:   10,
			MaxSessions:              1000,
			SessionIdleMinutes:       30,
		},
		Storage: Storage{
			Driver: DriverSQLite,
			Path:   "trackscope.db",
		},
		Export: Export{
			Dir:       "exports",
			Workers:   2,
			QueueSize: 100,
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}
