// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// envVars lists every variable Load reads.
var envVars = []string{
	"APP_ENV", "BLOGDESK_CONFIG",
	"BLOGDESK_API_URL", "BLOGDESK_TOKEN", "BLOGDESK_TIMEOUT", "BLOGDESK_VERSION",
	"BLOGDESK_SESSION_BACKEND", "BLOGDESK_PROFILE", "BLOGDESK_SESSION_DIR", "BLOGDESK_LANGUAGES",
	"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD",
	"BLOGDESK_LOG_FORMAT", "BLOGDESK_LOG_LEVEL",
}

// clearEnv sets every variable to "", which envOrDefault treats as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blogdesk.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if diff := cmp.Diff(Defaults(), cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
	if !cfg.IsDev() || cfg.IsProduction() {
		t.Error("default env should be development")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BLOGDESK_API_URL", "https://blog.example.com/")
	t.Setenv("BLOGDESK_TOKEN", "jwt")
	t.Setenv("BLOGDESK_TIMEOUT", "5s")
	t.Setenv("BLOGDESK_SESSION_BACKEND", "valkey")
	t.Setenv("BLOGDESK_LANGUAGES", "en, fr ,ro")
	t.Setenv("VALKEY_PORT", "6380")
	t.Setenv("BLOGDESK_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != "https://blog.example.com/" || cfg.Token != "jwt" {
		t.Errorf("api settings = %q %q", cfg.APIURL, cfg.Token)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.SessionBackend != SessionValkey || cfg.ValkeyPort != "6380" {
		t.Errorf("session settings = %q %q", cfg.SessionBackend, cfg.ValkeyPort)
	}
	if diff := cmp.Diff([]string{"en", "fr", "ro"}, cfg.Languages); diff != "" {
		t.Errorf("languages mismatch (-want +got):\n%s", diff)
	}
	if lvl, _ := cfg.SlogLevel(); lvl != slog.LevelDebug {
		t.Errorf("SlogLevel = %v, want debug", lvl)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
api_url: https://file.example.com/
timeout: 10s
profile: staging
languages: [en, de]
log_format: json
`)
	t.Setenv("BLOGDESK_CONFIG", path)
	t.Setenv("BLOGDESK_PROFILE", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != "https://file.example.com/" {
		t.Errorf("APIURL = %q, want value from file", cfg.APIURL)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout)
	}
	if cfg.Profile != "from-env" {
		t.Errorf("Profile = %q, env should win over file", cfg.Profile)
	}
	if cfg.LogFormat != "json" || len(cfg.Languages) != 2 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.ValkeyHost != "localhost" {
		t.Errorf("ValkeyHost = %q, want default", cfg.ValkeyHost)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		file    string
		wantErr string
	}{
		{
			name:    "production requires https",
			env:     map[string]string{"APP_ENV": "production", "BLOGDESK_API_URL": "http://blog.example.com/"},
			wantErr: "https in production",
		},
		{
			name:    "bad scheme",
			env:     map[string]string{"BLOGDESK_API_URL": "ftp://blog.example.com/"},
			wantErr: "BLOGDESK_API_URL",
		},
		{
			name:    "bad timeout",
			env:     map[string]string{"BLOGDESK_TIMEOUT": "soon"},
			wantErr: "BLOGDESK_TIMEOUT",
		},
		{
			name:    "unknown backend",
			env:     map[string]string{"BLOGDESK_SESSION_BACKEND": "disk"},
			wantErr: "session backend",
		},
		{
			name:    "unknown log format",
			env:     map[string]string{"BLOGDESK_LOG_FORMAT": "xml"},
			wantErr: "log format",
		},
		{
			name:    "unknown log level",
			env:     map[string]string{"BLOGDESK_LOG_LEVEL": "loud"},
			wantErr: "log level",
		},
		{
			name:    "malformed file",
			file:    "api_url: [unclosed",
			wantErr: "parse config file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if tt.file != "" {
				t.Setenv("BLOGDESK_CONFIG", writeFile(t, tt.file))
			}

			_, err := Load()
			if err == nil {
				t.Fatal("Load() should return an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("BLOGDESK_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail for a missing config file")
	}
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("BLOGDESK_TEST_VAR", "custom_value")
	if got := envOrDefault("BLOGDESK_TEST_VAR", "fallback"); got != "custom_value" {
		t.Errorf("envOrDefault = %q, want custom_value", got)
	}
	t.Setenv("BLOGDESK_TEST_VAR", "")
	if got := envOrDefault("BLOGDESK_TEST_VAR", "fallback"); got != "fallback" {
		t.Errorf("envOrDefault with empty = %q, want fallback", got)
	}
}

func TestSessionDirectory(t *testing.T) {
	cfg := Defaults()
	cfg.SessionDir = "/tmp/blogdesk-sessions"
	if dir, err := cfg.SessionDirectory(); err != nil || dir != "/tmp/blogdesk-sessions" {
		t.Errorf("SessionDirectory() = %q, %v", dir, err)
	}

	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv("HOME", "/tmp/home")
	cfg.SessionDir = ""
	dir, err := cfg.SessionDirectory()
	if err != nil {
		t.Fatalf("SessionDirectory() error: %v", err)
	}
	if filepath.Base(dir) != "blogdesk" {
		t.Errorf("SessionDirectory() = %q, want a blogdesk subdirectory", dir)
	}
}
