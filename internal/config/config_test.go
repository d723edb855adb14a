package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trackscope.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if cfg.Server.Addr != want.Server.Addr || cfg.Dataset.SampleTarget != 10000 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Plot.Width != 1020 || cfg.Plot.Height != 400 {
		t.Fatalf("unexpected plot %+v", cfg.Plot)
	}
}

func TestLoad_ParsesFile(t *testing.T) {
	path := writeConfig(t, `
[dataset]
path = "/data/tracks.csv"
sample_target = 500

[server]
addr = "127.0.0.1:9000"
session_idle_minutes = 5

[storage]
driver = "none"

[logging]
format = "json"
level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Dataset.Path != "/data/tracks.csv" || cfg.Dataset.SampleTarget != 500 {
		t.Fatalf("unexpected dataset %+v", cfg.Dataset)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.CatalogEnabled() {
		t.Fatalf("unexpected server/storage %+v %+v", cfg.Server, cfg.Storage)
	}
	if cfg.Export.Workers != 2 {
		t.Fatalf("unset sections should keep defaults, got %+v", cfg.Export)
	}
	if cfg.SessionIdleTTL() != 5*time.Minute || cfg.Server.MaxSessions != 1000 {
		t.Fatalf("unexpected session limits %+v", cfg.Server)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "syntax", body: "[dataset\n", wantErr: "parse config"},
		{name: "unknown key", body: "[dataset]\ncolor = 1\n", wantErr: "parse config"},
		{name: "bad driver", body: "[storage]\ndriver = \"postgres\"\n", wantErr: "storage.driver"},
		{name: "bad format", body: "[logging]\nformat = \"xml\"\n", wantErr: "logging.format"},
		{name: "bad target", body: "[dataset]\nsample_target = 0\n", wantErr: "sample_target"},
		{name: "bad plot", body: "[plot]\nwidth = -1\n", wantErr: "plot.width"},
		{name: "bad session cap", body: "[server]\nmax_sessions = -1\n", wantErr: "session limits"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvDataset:  "https://example.test/tracks.csv",
		EnvAddr:     ":9999",
		EnvCatalog:  "/tmp/cat.db",
		EnvLogLevel: "warn",
		EnvStorage:  "NONE",
	}
	cfg := Default()
	cfg.applyEnv(func(k string) string { return env[k] })

	if cfg.Dataset.URL != "https://example.test/tracks.csv" {
		t.Fatalf("dataset url not applied: %+v", cfg.Dataset)
	}
	if cfg.Server.Addr != ":9999" || cfg.Storage.Path != "/tmp/cat.db" || cfg.Logging.Level != "warn" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Storage.Driver != DriverNone {
		t.Fatalf("driver should be lower-cased, got %q", cfg.Storage.Driver)
	}

	cfg.applyEnv(func(k string) string {
		if k == EnvDataset {
			return "local.csv"
		}
		return ""
	})
	if cfg.Dataset.Path != "local.csv" || cfg.Dataset.URL != "" {
		t.Fatalf("a path override should clear the url, got %+v", cfg.Dataset)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv(EnvAddr, ":7000")
	cfg, err := Load(writeConfig(t, "[server]\naddr = \":9000\"\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Fatalf("env should win over file, got %q", cfg.Server.Addr)
	}
}
