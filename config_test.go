package licitadoc

import (
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing base url", func(c *Config) { c.API.BaseURL = "" }},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }},
		{"missing entry route", func(c *Config) { c.Routes.Entry = "" }},
		{"negative redirect delay", func(c *Config) { c.Routes.RedirectDelay = -time.Second }},
		{"excessive redirect delay", func(c *Config) { c.Routes.RedirectDelay = time.Minute }},
		{"unknown state backend", func(c *Config) { c.State.Backend = "etcd" }},
		{"zero notify buffer", func(c *Config) { c.Notify.BufferSize = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadConfigReadsEnvironment(t *testing.T) {
	t.Setenv("LICITADOC_API_URL", "https://api.licitadoc.example")
	t.Setenv("LICITADOC_API_TIMEOUT_SECONDS", "5")
	t.Setenv("LICITADOC_STATE_BACKEND", "redis")
	t.Setenv("LICITADOC_REDIS_ADDR", "redis.internal:6379")
	t.Setenv("LICITADOC_METRICS_ENABLED", "false")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.API.BaseURL != "https://api.licitadoc.example" {
		t.Fatalf("unexpected base url %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.API.Timeout)
	}
	if cfg.State.Backend != "redis" || cfg.State.RedisAddr != "redis.internal:6379" {
		t.Fatalf("unexpected state config %+v", cfg.State)
	}
	if cfg.Metrics.Enabled {
		t.Fatal("expected metrics disabled")
	}
}

func TestLoadConfigRejectsInvalidEnvironment(t *testing.T) {
	t.Setenv("LICITADOC_STATE_BACKEND", "etcd")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected LoadConfig to reject unknown backend")
	}
}
