package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:           "8081",
		DataBackend:    "memory",
		SQLiteDBPath:   "./test.db",
		UnwantedFile:   "./unwanted.csv",
		UploadMaxBytes: 64 << 20,
		ChartCacheSize: 100,
		ChartCacheTTL:  5 * time.Minute,
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
			name:   "valid memory backend config",
			mutate: func(c *Config) {},
		},
		{
			name: "valid sqlite backend config",
			mutate: func(c *Config) {
				c.DataBackend = "sqlite"
			},
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range low",
			mutate:      func(c *Config) { c.Port = "0" },
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name:        "invalid port - out of range high",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid data backend",
			mutate:      func(c *Config) { c.DataBackend = "redis" },
			wantErr:     true,
			errorString: "invalid data backend 'redis'",
		},
		{
			name: "sqlite backend missing database path",
			mutate: func(c *Config) {
				c.DataBackend = "sqlite"
				c.SQLiteDBPath = ""
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
		{
			name:        "empty unwanted file path",
			mutate:      func(c *Config) { c.UnwantedFile = "" },
			wantErr:     true,
			errorString: "unwanted list file path cannot be empty",
		},
		{
			name:        "upload limit too small",
			mutate:      func(c *Config) { c.UploadMaxBytes = 512 },
			wantErr:     true,
			errorString: "must be at least 1KB",
		},
		{
			name:        "upload limit too large",
			mutate:      func(c *Config) { c.UploadMaxBytes = 512 << 20 },
			wantErr:     true,
			errorString: "must be at most 256MB",
		},
		{
			name:        "chart cache size too small",
			mutate:      func(c *Config) { c.ChartCacheSize = 0 },
			wantErr:     true,
			errorString: "invalid chart cache size 0",
		},
		{
			name:        "chart cache TTL too short",
			mutate:      func(c *Config) { c.ChartCacheTTL = 100 * time.Millisecond },
			wantErr:     true,
			errorString: "must be at least 1 second",
		},
		{
			name:        "chart cache TTL too long",
			mutate:      func(c *Config) { c.ChartCacheTTL = 2 * time.Hour },
			wantErr:     true,
			errorString: "must be at most 1 hour",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Config.Validate() error = nil, wantErr true")
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %q", err, tt.errorString)
				}
			} else if err != nil {
				t.Errorf("Config.Validate() error = %v, wantErr false", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	vars := []string{
		"PORT", "DATA_BACKEND", "SQLITE_DB_PATH", "UNWANTED_FILE",
		"UPLOAD_MAX_BYTES", "CHART_CACHE_SIZE", "CHART_CACHE_TTL",
	}
	original := map[string]string{}
	for _, key := range vars {
		original[key] = os.Getenv(key)
		os.Unsetenv(key)
	}
	defer func() {
		for key, value := range original {
			if value != "" {
				os.Setenv(key, value)
			} else {
				os.Unsetenv(key)
			}
		}
	}()

	t.Run("default values", func(t *testing.T) {
		cfg := Load()
		if cfg.Port != "8081" {
			t.Errorf("Load() Port = %v, want 8081", cfg.Port)
		}
		if cfg.DataBackend != "memory" {
			t.Errorf("Load() DataBackend = %v, want memory", cfg.DataBackend)
		}
		if cfg.UnwantedFile != "./data/unwanted.csv" {
			t.Errorf("Load() UnwantedFile = %v", cfg.UnwantedFile)
		}
		if cfg.UploadMaxBytes != 64<<20 {
			t.Errorf("Load() UploadMaxBytes = %v, want 64MB", cfg.UploadMaxBytes)
		}
		if cfg.ChartCacheTTL != 5*time.Minute {
			t.Errorf("Load() ChartCacheTTL = %v, want 5m", cfg.ChartCacheTTL)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		os.Setenv("PORT", "9090")
		os.Setenv("DATA_BACKEND", "sqlite")
		os.Setenv("SQLITE_DB_PATH", "/tmp/test.db")
		os.Setenv("UPLOAD_MAX_BYTES", "1048576")
		os.Setenv("CHART_CACHE_TTL", "45s")

		cfg := Load()
		if cfg.Port != "9090" {
			t.Errorf("Load() Port = %v, want 9090", cfg.Port)
		}
		if cfg.DataBackend != "sqlite" {
			t.Errorf("Load() DataBackend = %v, want sqlite", cfg.DataBackend)
		}
		if cfg.SQLiteDBPath != "/tmp/test.db" {
			t.Errorf("Load() SQLiteDBPath = %v", cfg.SQLiteDBPath)
		}
		if cfg.UploadMaxBytes != 1048576 {
			t.Errorf("Load() UploadMaxBytes = %v, want 1048576", cfg.UploadMaxBytes)
		}
		if cfg.ChartCacheTTL != 45*time.Second {
			t.Errorf("Load() ChartCacheTTL = %v, want 45s", cfg.ChartCacheTTL)
		}
	})

	t.Run("invalid environment variables use defaults", func(t *testing.T) {
		os.Setenv("UPLOAD_MAX_BYTES", "invalid")
		os.Setenv("CHART_CACHE_TTL", "invalid")

		cfg := Load()
		if cfg.UploadMaxBytes != 64<<20 {
			t.Errorf("Load() UploadMaxBytes = %v, want default for invalid input", cfg.UploadMaxBytes)
		}
		if cfg.ChartCacheTTL != 5*time.Minute {
			t.Errorf("Load() ChartCacheTTL = %v, want default for invalid input", cfg.ChartCacheTTL)
		}
	})
}
