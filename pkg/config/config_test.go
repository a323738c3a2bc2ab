package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Save original env
	originalEnv := make(map[string]string)
	envVars := []string{
		"PORT",
		"HOSTPULSE_CONFIG",
		"HOSTPULSE_NAME",
		"HOSTPULSE_REDIS_URL",
		"REDIS_URL",
		"HOSTPULSE_HEARTBEAT_INTERVAL",
		"HOSTPULSE_PROBE_TIMEOUT",
		"HOSTPULSE_CPU_SAMPLE_INTERVAL",
		"HOSTPULSE_STREAM_INTERVAL",
	}

	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
		os.Unsetenv(key)
	}

	// Restore env after test
	defer func() {
		for key, val := range originalEnv {
			if val != "" {
				os.Setenv(key, val)
			} else {
				os.Unsetenv(key)
			}
		}
	}()

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if cfg.Port != 59232 {
			t.Errorf("Expected default port 59232, got %d", cfg.Port)
		}
		if cfg.HeartbeatInterval != 10*time.Second {
			t.Errorf("Expected default heartbeat 10s, got %v", cfg.HeartbeatInterval)
		}
		if cfg.ProbeTimeout != 2*time.Second {
			t.Errorf("Expected default probe timeout 2s, got %v", cfg.ProbeTimeout)
		}
		if cfg.CPUSampleInterval != 250*time.Millisecond {
			t.Errorf("Expected default CPU sample interval 250ms, got %v", cfg.CPUSampleInterval)
		}
		if cfg.RedisURL != "" {
			t.Errorf("Expected no Redis URL by default, got %s", cfg.RedisURL)
		}
	})

	t.Run("from environment", func(t *testing.T) {
		os.Setenv("PORT", "8080")
		os.Setenv("HOSTPULSE_NAME", "node-1")
		os.Setenv("HOSTPULSE_REDIS_URL", "redis://dashboard:6379")
		os.Setenv("HOSTPULSE_HEARTBEAT_INTERVAL", "5")
		os.Setenv("HOSTPULSE_PROBE_TIMEOUT", "3s")
		os.Setenv("HOSTPULSE_CPU_SAMPLE_INTERVAL", "100ms")
		defer func() {
			for _, key := range envVars {
				os.Unsetenv(key)
			}
		}()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if cfg.Port != 8080 {
			t.Errorf("Expected port 8080, got %d", cfg.Port)
		}
		if cfg.Name != "node-1" {
			t.Errorf("Expected name node-1, got %s", cfg.Name)
		}
		if cfg.RedisURL != "redis://dashboard:6379" {
			t.Errorf("Expected redis://dashboard:6379, got %s", cfg.RedisURL)
		}
		if cfg.HeartbeatInterval != 5*time.Second {
			t.Errorf("Expected heartbeat 5s, got %v", cfg.HeartbeatInterval)
		}
		if cfg.ProbeTimeout != 3*time.Second {
			t.Errorf("Expected probe timeout 3s, got %v", cfg.ProbeTimeout)
		}
		if cfg.CPUSampleInterval != 100*time.Millisecond {
			t.Errorf("Expected CPU sample interval 100ms, got %v", cfg.CPUSampleInterval)
		}
	})

	t.Run("REDIS_URL fallback", func(t *testing.T) {
		os.Setenv("REDIS_URL", "redis://fallback:6379")
		defer os.Unsetenv("REDIS_URL")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.RedisURL != "redis://fallback:6379" {
			t.Errorf("Expected fallback Redis URL, got %s", cfg.RedisURL)
		}
	})

	t.Run("invalid PORT", func(t *testing.T) {
		os.Setenv("PORT", "not-a-number")
		defer os.Unsetenv("PORT")

		if _, err := Load(); err == nil {
			t.Error("Expected error for non-numeric PORT")
		}
	})

	t.Run("config file with env precedence", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "port: 7000\nname: file-node\nprobe_timeout: 4s\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing config file: %v", err)
		}

		os.Setenv("HOSTPULSE_CONFIG", path)
		os.Setenv("PORT", "7001")
		defer func() {
			os.Unsetenv("HOSTPULSE_CONFIG")
			os.Unsetenv("PORT")
		}()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if cfg.Port != 7001 {
			t.Errorf("Expected env PORT to win, got %d", cfg.Port)
		}
		if cfg.Name != "file-node" {
			t.Errorf("Expected name from file, got %s", cfg.Name)
		}
		if cfg.ProbeTimeout != 4*time.Second {
			t.Errorf("Expected probe timeout from file, got %v", cfg.ProbeTimeout)
		}
	})

	t.Run("missing config file errors", func(t *testing.T) {
		os.Setenv("HOSTPULSE_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
		defer os.Unsetenv("HOSTPULSE_CONFIG")

		if _, err := Load(); err == nil {
			t.Error("Expected error for missing explicit config file")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults valid",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "port zero",
			mutate:  func(c *Config) { c.Port = 0 },
			wantErr: true,
		},
		{
			name:    "port too large",
			mutate:  func(c *Config) { c.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "cpu interval exceeds probe timeout",
			mutate:  func(c *Config) { c.CPUSampleInterval = 3 * time.Second },
			wantErr: true,
		},
		{
			name:    "zero probe timeout",
			mutate:  func(c *Config) { c.ProbeTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "zero stream interval",
			mutate:  func(c *Config) { c.StreamInterval = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("Expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no validation error, got %v", err)
			}
		})
	}
}
