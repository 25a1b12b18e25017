package config

import (
	"os"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Port:            "8080",
		SQLiteDBPath:    "./test.db",
		DataBackend:     "sqlite",
		LogLevel:        "info",
		DefaultUsername: "demo_user",
		RateLimitRPS:    10,
		RateLimitBurst:  30,
	}

	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid sqlite backend config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "valid memory backend config",
			mutate:  func(c *Config) { c.DataBackend = "memory" },
			wantErr: false,
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
			mutate:      func(c *Config) { c.DataBackend = "postgres" },
			wantErr:     true,
			errorString: "invalid data backend 'postgres': must be one of [sqlite memory]",
		},
		{
			name:        "sqlite backend missing database path",
			mutate:      func(c *Config) { c.SQLiteDBPath = "" },
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
		{
			name:        "empty default username",
			mutate:      func(c *Config) { c.DefaultUsername = "  " },
			wantErr:     true,
			errorString: "default username cannot be empty",
		},
		{
			name:        "invalid rate limit rps",
			mutate:      func(c *Config) { c.RateLimitRPS = 0 },
			wantErr:     true,
			errorString: "invalid rate limit rps 0: must be at least 1",
		},
		{
			name:        "burst smaller than rps",
			mutate:      func(c *Config) { c.RateLimitBurst = 5 },
			wantErr:     true,
			errorString: "invalid rate limit burst 5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != nil && !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("Config.Validate() error = %v, want it to contain %q", err, tt.errorString)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	// Save original env vars
	originalVars := map[string]string{
		"PORT":             os.Getenv("PORT"),
		"DATA_BACKEND":     os.Getenv("DATA_BACKEND"),
		"SQLITE_DB_PATH":   os.Getenv("SQLITE_DB_PATH"),
		"LOG_LEVEL":        os.Getenv("LOG_LEVEL"),
		"DEFAULT_USERNAME": os.Getenv("DEFAULT_USERNAME"),
		"RATE_LIMIT_RPS":   os.Getenv("RATE_LIMIT_RPS"),
		"RATE_LIMIT_BURST": os.Getenv("RATE_LIMIT_BURST"),
	}

	// Clean environment
	for key := range originalVars {
		os.Unsetenv(key)
	}

	// Restore env vars at end of test
	defer func() {
		for key, value := range originalVars {
			if value != "" {
				os.Setenv(key, value)
			} else {
				os.Unsetenv(key)
			}
		}
	}()

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		if cfg.Port != "8080" {
			t.Errorf("Load() Port = %v, want 8080", cfg.Port)
		}
		if cfg.DataBackend != "sqlite" {
			t.Errorf("Load() DataBackend = %v, want sqlite", cfg.DataBackend)
		}
		if cfg.SQLiteDBPath != "./data/fintrack.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want ./data/fintrack.db", cfg.SQLiteDBPath)
		}
		if cfg.DefaultUsername != "demo_user" {
			t.Errorf("Load() DefaultUsername = %v, want demo_user", cfg.DefaultUsername)
		}
		if cfg.RateLimitRPS != 10 || cfg.RateLimitBurst != 30 {
			t.Errorf("Load() rate limits = %d/%d, want 10/30", cfg.RateLimitRPS, cfg.RateLimitBurst)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		os.Setenv("PORT", "9090")
		os.Setenv("DATA_BACKEND", "memory")
		os.Setenv("SQLITE_DB_PATH", "/tmp/test.db")
		os.Setenv("DEFAULT_USERNAME", "alice")
		os.Setenv("RATE_LIMIT_RPS", "25")

		cfg := Load()

		if cfg.Port != "9090" {
			t.Errorf("Load() Port = %v, want 9090", cfg.Port)
		}
		if cfg.DataBackend != "memory" {
			t.Errorf("Load() DataBackend = %v, want memory", cfg.DataBackend)
		}
		if cfg.SQLiteDBPath != "/tmp/test.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want /tmp/test.db", cfg.SQLiteDBPath)
		}
		if cfg.DefaultUsername != "alice" {
			t.Errorf("Load() DefaultUsername = %v, want alice", cfg.DefaultUsername)
		}
		if cfg.RateLimitRPS != 25 {
			t.Errorf("Load() RateLimitRPS = %v, want 25", cfg.RateLimitRPS)
		}
	})

	t.Run("invalid environment variables use defaults", func(t *testing.T) {
		os.Setenv("RATE_LIMIT_RPS", "invalid")

		cfg := Load()

		if cfg.RateLimitRPS != 10 {
			t.Errorf("Load() RateLimitRPS = %v, want 10 (default for invalid input)", cfg.RateLimitRPS)
		}
	})
}
