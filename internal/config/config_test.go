package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Port:            "8080",
		DataBackend:     "file",
		DataDir:         t.TempDir(),
		SQLiteDBPath:    "./data/worklog.db",
		GeminiModel:     "gemini-3-flash-preview",
		SummaryTimeout:  60 * time.Second,
		SummaryCacheTTL: time.Hour,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid file backend",
			mutate: func(c *Config) {},
		},
		{
			name: "valid sqlite backend",
			mutate: func(c *Config) {
				c.DataBackend = "sqlite"
				c.SQLiteDBPath = c.DataDir + "/worklog.db"
			},
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid backend",
			mutate:      func(c *Config) { c.DataBackend = "redis" },
			wantErr:     true,
			errorString: "invalid data backend 'redis'",
		},
		{
			name: "empty sqlite path",
			mutate: func(c *Config) {
				c.DataBackend = "sqlite"
				c.SQLiteDBPath = ""
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "key configured but model blank",
			mutate: func(c *Config) {
				c.GeminiAPIKey = "key"
				c.GeminiModel = "  "
			},
			wantErr:     true,
			errorString: "Gemini model cannot be empty",
		},
		{
			name:        "summary timeout too small",
			mutate:      func(c *Config) { c.SummaryTimeout = 100 * time.Millisecond },
			wantErr:     true,
			errorString: "invalid summary timeout",
		},
		{
			name: "multiple problems reported together",
			mutate: func(c *Config) {
				c.Port = "abc"
				c.DataBackend = "redis"
			},
			wantErr:     true,
			errorString: "invalid data backend 'redis'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.errorString)
			}
		})
	}
}

func TestSummaryEnabled(t *testing.T) {
	cfg := validConfig(t)
	if cfg.SummaryEnabled() {
		t.Error("SummaryEnabled() = true without a key")
	}
	cfg.GeminiAPIKey = "  "
	if cfg.SummaryEnabled() {
		t.Error("SummaryEnabled() = true with blank key")
	}
	cfg.GeminiAPIKey = "k"
	if !cfg.SummaryEnabled() {
		t.Error("SummaryEnabled() = false with a key")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DataBackend != "file" {
		t.Errorf("DataBackend = %q, want file", cfg.DataBackend)
	}
	if cfg.GeminiModel != "gemini-3-flash-preview" {
		t.Errorf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.SummaryTimeout != 60*time.Second {
		t.Errorf("SummaryTimeout = %v", cfg.SummaryTimeout)
	}
}
