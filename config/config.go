// Package config resolves pdarena-service's runtime configuration: the
// CLI flag values (parsed by urfave/cli/v2 in cmd/pdarena-service) merged
// over an optional YAML overlay for defaults (database URL, site external
// URL, auth/sandbox service URLs, bind port, worker count, log level).
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration for YAML string parsing (e.g. "10s").
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a duration string like "10s" or "5m30s".
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// File is the optional pdarena.yaml overlay. CLI flags always win over
// values loaded from File; File only supplies defaults for flags left
// unset on the command line.
type File struct {
	DatabaseURL string `yaml:"database_url"`
	SiteExternalURL string `yaml:"site_external_url"`
	AuthServiceURL string `yaml:"auth_service_url"`
	SandboxServiceURL string `yaml:"sandbox_service_url"`
	RedisURL string `yaml:"redis_url,omitempty"`
	ArchiveRoot string `yaml:"archive_root,omitempty"`
	Port int `yaml:"port"`
	Workers int `yaml:"workers"`
	LogLevel string `yaml:"log_level"`
	RequestTimeout Duration `yaml:"request_timeout,omitempty"`
}

// Load reads and parses a YAML config file at path. A missing or
// unreadable file is an error; callers decide whether it is fatal.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return f, nil
}

// Config is the fully resolved runtime configuration used to wire
// cmd/pdarena-service/main.go, after merging CLI flags over an
// optional File overlay.
type Config struct {
	DatabaseURL string
	SiteExternalURL string
	AuthServiceURL string
	SandboxServiceURL string
	RedisURL string
	ArchiveRoot string
	Port int
	Workers int
	LogLevel string
	RequestTimeout time.Duration
}

// DefaultPort is the default HTTP bind port.
const DefaultPort = 8080

// DefaultWorkers is the default Worker Pool size.
const DefaultWorkers = 8

// DefaultRequestTimeout bounds outbound auth/sandbox HTTP calls.
const DefaultRequestTimeout = 30 * time.Second

// Merge overlays non-zero File values onto Config wherever the
// corresponding field is still at its zero value, then fills any
// remaining zero values with package defaults.
func (c Config) Merge(f File) Config {
	if c.DatabaseURL == "" {
		c.DatabaseURL = f.DatabaseURL
	}
	if c.SiteExternalURL == "" {
		c.SiteExternalURL = f.SiteExternalURL
	}
	if c.AuthServiceURL == "" {
		c.AuthServiceURL = f.AuthServiceURL
	}
	if c.SandboxServiceURL == "" {
		c.SandboxServiceURL = f.SandboxServiceURL
	}
	if c.RedisURL == "" {
		c.RedisURL = f.RedisURL
	}
	if c.ArchiveRoot == "" {
		c.ArchiveRoot = f.ArchiveRoot
	}
	if c.Port == 0 {
		c.Port = f.Port
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Workers == 0 {
		c.Workers = f.Workers
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
	if c.LogLevel == "" {
		c.LogLevel = f.LogLevel
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = f.RequestTimeout.Duration
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	return c
}

// Validate reports the first missing required setting.
func (c Config) Validate() error {
	switch {
	case c.DatabaseURL == "":
		return fmt.Errorf("config: database-url is required")
	case c.AuthServiceURL == "":
		return fmt.Errorf("config: auth-service-url is required")
	case c.SandboxServiceURL == "":
		return fmt.Errorf("config: sandbox-service-url is required")
	default:
		return nil
	}
}
