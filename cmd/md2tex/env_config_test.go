package main

// Notes:
// - loadEnvConfig / warnUnknownEnvVars read the process environment, so
//   those tests use t.Setenv and cannot run in parallel.
// - applyEnvConfig: we test that env only fills fields still at their
//   built-in default.
// - resolveTimeoutWithEnv: we test parsing, validation, and priority.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-md2tex/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment parsing
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("MD2TEX_TEMPLATE", "matnoble-teaching")
	t.Setenv("MD2TEX_TIMEOUT", "90s")
	t.Setenv("MD2TEX_WORKERS", "3")
	t.Setenv("MD2TEX_RESOURCES_DIR", "/srv/doc")
	t.Setenv("MD2TEX_LISTEN", ":9000")

	env := loadEnvConfig()

	if env.Template != "matnoble-teaching" {
		t.Errorf("Template = %q", env.Template)
	}
	if env.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v", env.Timeout)
	}
	if env.Workers != 3 {
		t.Errorf("Workers = %d", env.Workers)
	}
	if env.ResourcesDir != "/srv/doc" || env.Listen != ":9000" {
		t.Errorf("env = %+v", env)
	}
}

func TestLoadEnvConfig_InvalidNumbersIgnored(t *testing.T) {
	t.Setenv("MD2TEX_TIMEOUT", "later")
	t.Setenv("MD2TEX_WORKERS", "-2")

	env := loadEnvConfig()
	if env.Timeout != 0 || env.Workers != 0 {
		t.Errorf("Timeout = %v, Workers = %d, want zero values", env.Timeout, env.Workers)
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("MD2TEX_TEMPLTE", "x")
	t.Setenv("MD2TEX_TEMPLATE", "matnoble")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	if !strings.Contains(buf.String(), "MD2TEX_TEMPLTE") {
		t.Errorf("missing warning for typo, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "MD2TEX_TEMPLATE ") {
		t.Errorf("known variable reported: %q", buf.String())
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Env fills defaults only
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	env := &envConfig{
		Template:     "matnoble-teaching",
		ResourcesDir: "/env/doc",
		Author:       "Env Author",
		BuildDir:     "/env/build",
	}

	t.Run("defaults are replaced", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(env, cfg)

		if cfg.Template.Name != "matnoble-teaching" {
			t.Errorf("Template.Name = %q", cfg.Template.Name)
		}
		if cfg.Resources.Dir != "/env/doc" {
			t.Errorf("Resources.Dir = %q", cfg.Resources.Dir)
		}
		if cfg.Document.Author != "Env Author" {
			t.Errorf("Document.Author = %q", cfg.Document.Author)
		}
		if cfg.Server.BuildDir != "/env/build" {
			t.Errorf("Server.BuildDir = %q", cfg.Server.BuildDir)
		}
		if cfg.Server.Listen != config.DefaultListen {
			t.Errorf("Server.Listen = %q, want untouched default", cfg.Server.Listen)
		}
	})

	t.Run("file values win", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Template.Name = "report"
		cfg.Resources.Dir = "/file/doc"
		applyEnvConfig(env, cfg)

		if cfg.Template.Name != "report" || cfg.Resources.Dir != "/file/doc" {
			t.Errorf("config file values overwritten: %+v", cfg)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveTimeoutWithEnv - Timeout resolution with env var support
// ---------------------------------------------------------------------------

func TestResolveTimeoutWithEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		flagValue   string
		envValue    time.Duration
		configValue string
		want        time.Duration
		wantErr     bool
		errSubstr   string
	}{
		{name: "all empty means no limit", want: 0},
		{name: "flag only", flagValue: "2m", want: 2 * time.Minute},
		{name: "env only", envValue: 45 * time.Second, want: 45 * time.Second},
		{name: "config only", configValue: "30s", want: 30 * time.Second},
		{name: "flag overrides env and config", flagValue: "5m", envValue: 45 * time.Second, configValue: "30s", want: 5 * time.Minute},
		{name: "env overrides config", envValue: 2 * time.Minute, configValue: "30s", want: 2 * time.Minute},
		{name: "config zero is no limit", configValue: "0s", want: 0},
		{name: "invalid flag format", flagValue: "abc", wantErr: true, errSubstr: "invalid timeout"},
		{name: "invalid config format", configValue: "xyz", wantErr: true, errSubstr: "invalid timeout"},
		{name: "negative flag", flagValue: "-5s", wantErr: true, errSubstr: "must be positive"},
		{name: "zero flag", flagValue: "0s", wantErr: true, errSubstr: "must be positive"},
		{name: "invalid flag overrides valid env", flagValue: "invalid", envValue: time.Minute, wantErr: true, errSubstr: "invalid timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveTimeoutWithEnv(tt.flagValue, tt.envValue, tt.configValue)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("error should contain %q, got: %v", tt.errSubstr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveTimeoutWithEnv(%q, %v, %q) = %v, want %v",
					tt.flagValue, tt.envValue, tt.configValue, got, tt.want)
			}
		})
	}
}
