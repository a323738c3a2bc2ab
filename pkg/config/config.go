// Package config handles configuration loading from environment variables
// and an optional YAML file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPort is the historical default bind port of the agent.
const DefaultPort = 59232

// Config holds all runtime configuration for the agent.
type Config struct {
	// Port is the HTTP bind port; the bind address is always all
	// interfaces.
	Port int

	// Name optionally overrides the node name used in heartbeat keys
	// (defaults to hostname).
	Name string

	// RedisURL enables the heartbeat publisher when non-empty.
	RedisURL string

	// HeartbeatInterval is the publish cadence when RedisURL is set.
	HeartbeatInterval time.Duration

	// ProbeTimeout is the per-probe sampling deadline.
	ProbeTimeout time.Duration

	// CPUSampleInterval is the two-point window of the CPU usage probe.
	CPUSampleInterval time.Duration

	// StreamInterval is the push cadence of the websocket stream.
	StreamInterval time.Duration
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:              DefaultPort,
		HeartbeatInterval: 10 * time.Second,
		ProbeTimeout:      2 * time.Second,
		CPUSampleInterval: 250 * time.Millisecond,
		StreamInterval:    5 * time.Second,
	}
}

// fileConfig is the YAML shape of the optional config file. Durations are
// written as Go duration strings ("250ms", "10s").
type fileConfig struct {
	Port              int    `yaml:"port"`
	Name              string `yaml:"name"`
	RedisURL          string `yaml:"redis_url"`
	HeartbeatInterval string `yaml:"heartbeat_interval"`
	ProbeTimeout      string `yaml:"probe_timeout"`
	CPUSampleInterval string `yaml:"cpu_sample_interval"`
	StreamInterval    string `yaml:"stream_interval"`
}

// Load builds a Config from defaults, then the file named by
// HOSTPULSE_CONFIG (if any), then environment variables. A missing file at
// the default location is fine; a file that fails to parse is not.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv("HOSTPULSE_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	if fc.Port != 0 {
		c.Port = fc.Port
	}
	if fc.Name != "" {
		c.Name = fc.Name
	}
	if fc.RedisURL != "" {
		c.RedisURL = fc.RedisURL
	}
	for _, d := range []struct {
		raw string
		dst *time.Duration
	}{
		{fc.HeartbeatInterval, &c.HeartbeatInterval},
		{fc.ProbeTimeout, &c.ProbeTimeout},
		{fc.CPUSampleInterval, &c.CPUSampleInterval},
		{fc.StreamInterval, &c.StreamInterval},
	} {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
		*d.dst = v
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Port = port
	}

	if v := os.Getenv("HOSTPULSE_NAME"); v != "" {
		c.Name = v
	}

	if v := os.Getenv("HOSTPULSE_REDIS_URL"); v != "" {
		c.RedisURL = v
	} else if v := os.Getenv("REDIS_URL"); v != "" {
		// Common convention
		c.RedisURL = v
	}

	if v := os.Getenv("HOSTPULSE_HEARTBEAT_INTERVAL"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil {
			c.HeartbeatInterval = time.Duration(seconds) * time.Second
		}
	}

	for _, d := range []struct {
		key string
		dst *time.Duration
	}{
		{"HOSTPULSE_PROBE_TIMEOUT", &c.ProbeTimeout},
		{"HOSTPULSE_CPU_SAMPLE_INTERVAL", &c.CPUSampleInterval},
		{"HOSTPULSE_STREAM_INTERVAL", &c.StreamInterval},
	} {
		v := os.Getenv(d.key)
		if v == "" {
			continue
		}
		dur, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", d.key, v, err)
		}
		*d.dst = dur
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return &ConfigError{Field: "Port", Message: fmt.Sprintf("port %d out of range", c.Port)}
	}
	if c.ProbeTimeout <= 0 {
		return &ConfigError{Field: "ProbeTimeout", Message: "probe timeout must be positive"}
	}
	if c.CPUSampleInterval <= 0 {
		return &ConfigError{Field: "CPUSampleInterval", Message: "CPU sample interval must be positive"}
	}
	if c.CPUSampleInterval >= c.ProbeTimeout {
		return &ConfigError{Field: "CPUSampleInterval", Message: "CPU sample interval must be shorter than the probe timeout"}
	}
	if c.HeartbeatInterval <= 0 {
		return &ConfigError{Field: "HeartbeatInterval", Message: "heartbeat interval must be positive"}
	}
	if c.StreamInterval <= 0 {
		return &ConfigError{Field: "StreamInterval", Message: "stream interval must be positive"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Field + ": " + e.Message
}
