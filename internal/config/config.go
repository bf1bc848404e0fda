// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config loads blogdesk settings from an optional YAML file and the
// environment. Environment variables win over the file; the file wins over
// the built-in defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Session backends.
const (
	SessionMemory = "memory"
	SessionFile   = "file"
	SessionValkey = "valkey"
)

// Config holds all client configuration.
type Config struct {
	Env string `yaml:"env"` // "development", "production", "testing"

	// Blog API
	APIURL  string        `yaml:"api_url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
	Version string        `yaml:"version"`

	// Session storage
	SessionBackend string `yaml:"session_backend"`
	Profile        string `yaml:"profile"`
	SessionDir     string `yaml:"session_dir"` // file backend; empty means the user config dir

	// Valkey (Redis-compatible), used when SessionBackend is "valkey"
	ValkeyHost     string `yaml:"valkey_host"`
	ValkeyPort     string `yaml:"valkey_port"`
	ValkeyPassword string `yaml:"valkey_password"`

	Languages []string `yaml:"languages"`

	LogFormat string `yaml:"log_format"` // "text" or "json"
	LogLevel  string `yaml:"log_level"`
}

// Defaults returns the development configuration.
func Defaults() *Config {
	return &Config{
		Env:            "development",
		APIURL:         "http://localhost:8080/",
		Timeout:        30 * time.Second,
		Version:        "0.0.1-SNAPSHOT",
		SessionBackend: SessionFile,
		Profile:        "default",
		ValkeyHost:     "localhost",
		ValkeyPort:     "6379",
		Languages:      []string{"en"},
		LogFormat:      "text",
		LogLevel:       "info",
	}
}

// Load builds the configuration from defaults, the YAML file named by
// BLOGDESK_CONFIG (if any) and the environment, then validates it.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("BLOGDESK_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	c.Env = envOrDefault("APP_ENV", c.Env)
	c.APIURL = envOrDefault("BLOGDESK_API_URL", c.APIURL)
	c.Token = envOrDefault("BLOGDESK_TOKEN", c.Token)
	c.Version = envOrDefault("BLOGDESK_VERSION", c.Version)
	c.SessionBackend = envOrDefault("BLOGDESK_SESSION_BACKEND", c.SessionBackend)
	c.Profile = envOrDefault("BLOGDESK_PROFILE", c.Profile)
	c.SessionDir = envOrDefault("BLOGDESK_SESSION_DIR", c.SessionDir)
	c.ValkeyHost = envOrDefault("VALKEY_HOST", c.ValkeyHost)
	c.ValkeyPort = envOrDefault("VALKEY_PORT", c.ValkeyPort)
	c.ValkeyPassword = envOrDefault("VALKEY_PASSWORD", c.ValkeyPassword)
	c.LogFormat = envOrDefault("BLOGDESK_LOG_FORMAT", c.LogFormat)
	c.LogLevel = envOrDefault("BLOGDESK_LOG_LEVEL", c.LogLevel)

	if v := os.Getenv("BLOGDESK_LANGUAGES"); v != "" {
		c.Languages = splitList(v)
	}
	if v := os.Getenv("BLOGDESK_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("BLOGDESK_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	return nil
}

// Validate checks values that would otherwise fail later in confusing ways.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("BLOGDESK_API_URL must be an http(s) URL, got %q", c.APIURL)
	}
	if c.IsProduction() && u.Scheme != "https" {
		return errors.New("BLOGDESK_API_URL must use https in production")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	switch c.SessionBackend {
	case SessionMemory, SessionFile, SessionValkey:
	default:
		return fmt.Errorf("unknown session backend %q", c.SessionBackend)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}

// SessionDirectory returns SessionDir, or <user config dir>/blogdesk when
// it is empty.
func (c *Config) SessionDirectory() (string, error) {
	if c.SessionDir != "" {
		return c.SessionDir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("session dir: %w", err)
	}
	return filepath.Join(base, "blogdesk"), nil
}

// IsDev returns true if the client runs in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true if the client targets a production backend.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
