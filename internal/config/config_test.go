package config

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"github.com/cosmez/redisrest-go"
)

const sample = `
default_profile = "dev"

[profiles.dev]
url = "https://dev-1.upstash.io"
token = "dev-token"

[profiles.prod]
url = "prod-1.upstash.io"
token = "prod-token"

[logging]
level = "info"
format = "json"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(redisrest.EnvURL, "")
	t.Setenv(redisrest.EnvToken, "")
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample), true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultProfile != "dev" {
		t.Errorf("DefaultProfile = %q", cfg.DefaultProfile)
	}
	if !reflect.DeepEqual(cfg.ProfileNames(), []string{"dev", "prod"}) {
		t.Errorf("ProfileNames() = %v", cfg.ProfileNames())
	}
	if cfg.Logging != (LoggingConfig{Level: "info", Format: "json"}) {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load optional: %v", err)
	}
	if len(cfg.Profiles) != 0 {
		t.Errorf("expected empty config, got %+v", cfg)
	}

	if _, err := Load(path, true); err == nil {
		t.Errorf("expected error for required missing file")
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "Syntax", content: "default_profile = "},
		{name: "Unknown Default", content: "default_profile = \"qa\"\n"},
		{name: "Bad Format", content: "[logging]\nformat = \"xml\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content), true); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}

func TestResolvePrecedence(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample), true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	t.Run("Default Profile", func(t *testing.T) {
		clearEnv(t)
		s, err := cfg.Resolve(Overrides{})
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		expected := Settings{Profile: "dev", URL: "https://dev-1.upstash.io", Token: "dev-token", LogLevel: "info", LogFormat: "json"}
		if s != expected {
			t.Errorf("Resolve() = %+v, want %+v", s, expected)
		}
	})

	t.Run("Named Profile", func(t *testing.T) {
		clearEnv(t)
		s, err := cfg.Resolve(Overrides{Profile: "prod"})
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if s.URL != "prod-1.upstash.io" || s.Token != "prod-token" {
			t.Errorf("Resolve() = %+v", s)
		}
	})

	t.Run("Env Beats File", func(t *testing.T) {
		t.Setenv(redisrest.EnvURL, "env.upstash.io")
		t.Setenv(redisrest.EnvToken, "")
		s, err := cfg.Resolve(Overrides{})
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if s.URL != "env.upstash.io" || s.Token != "dev-token" {
			t.Errorf("Resolve() = %+v", s)
		}
	})

	t.Run("Flags Beat Env", func(t *testing.T) {
		t.Setenv(redisrest.EnvURL, "env.upstash.io")
		t.Setenv(redisrest.EnvToken, "env-token")
		s, err := cfg.Resolve(Overrides{URL: "flag.upstash.io", Token: "flag-token", LogLevel: "debug"})
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if s.URL != "flag.upstash.io" || s.Token != "flag-token" || s.LogLevel != "debug" {
			t.Errorf("Resolve() = %+v", s)
		}
	})

	t.Run("Unknown Profile", func(t *testing.T) {
		clearEnv(t)
		if _, err := cfg.Resolve(Overrides{Profile: "qa"}); err == nil {
			t.Errorf("expected error for unknown profile")
		}
	})
}

func TestResolveMissingCredentials(t *testing.T) {
	clearEnv(t)
	empty := &File{Profiles: map[string]ProfileConfig{}}

	if _, err := empty.Resolve(Overrides{Token: "t"}); err == nil {
		t.Errorf("expected error for missing URL")
	}
	if _, err := empty.Resolve(Overrides{URL: "x.upstash.io"}); err == nil {
		t.Errorf("expected error for missing token")
	}
}

func TestDefaultPathUsesXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on linux")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if path != filepath.Join(dir, "redisrest", "config.toml") {
		t.Errorf("DefaultPath() = %q", path)
	}
}
