package licitadoc

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the client core. Instances are
// set up once, validated by [Builder.Build], and treated as immutable.
type Config struct {
	API     APIConfig
	Routes  RouteConfig
	State   StateConfig
	Notify  NotifyConfig
	Metrics MetricsConfig
	Logger  LoggerConfig
}

// APIConfig controls the outbound HTTP adapter.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// RouteConfig names the routes the core itself needs to know about.
type RouteConfig struct {
	// Entry is the public entry route a forced sign-out navigates to.
	Entry string
	// RedirectDelay is how long the adapter waits before navigating after a
	// session-expired response, so the notification can render first.
	RedirectDelay time.Duration
}

// StateConfig configures the persisted key-value state backend.
type StateConfig struct {
	// Backend selects "memory" or "redis".
	Backend       string
	Prefix        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// TTL bounds how long persisted values live; zero means no expiry.
	TTL time.Duration
}

// NotifyConfig configures the async notification dispatcher.
type NotifyConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig toggles the in-process counters.
type MetricsConfig struct {
	Enabled bool
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 30 * time.Second,
		},
		Routes: RouteConfig{
			Entry:         "/",
			RedirectDelay: 1500 * time.Millisecond,
		},
		State: StateConfig{
			Backend:   "memory",
			Prefix:    "licitadoc",
			RedisAddr: "localhost:6379",
		},
		Notify: NotifyConfig{
			Enabled:    true,
			BufferSize: 64,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{Enabled: true},
		Logger:  LoggerConfig{Level: "info"},
	}
}

// DefaultConfig returns the baseline configuration callers mutate before
// handing it to [Builder.WithConfig].
func DefaultConfig() Config {
	return defaultConfig()
}

// Validate checks the configuration for values Build cannot work with.
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("API.BaseURL is required")
	}
	if c.API.Timeout <= 0 {
		return errors.New("API.Timeout must be positive")
	}
	if c.Routes.Entry == "" {
		return errors.New("Routes.Entry is required")
	}
	if c.Routes.RedirectDelay < 0 || c.Routes.RedirectDelay > 10*time.Second {
		return errors.New("Routes.RedirectDelay out of range")
	}
	switch c.State.Backend {
	case "memory", "redis":
	default:
		return errors.New("State.Backend must be memory or redis")
	}
	if c.Notify.Enabled && c.Notify.BufferSize <= 0 {
		return errors.New("Notify.BufferSize must be positive when enabled")
	}
	return nil
}

// LoadConfig reads configuration from environment variables, consulting a
// .env file when present and applying defaults everywhere else.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()
	cfg.API.BaseURL = getEnv("LICITADOC_API_URL", cfg.API.BaseURL)
	cfg.API.Timeout = time.Duration(getEnvAsInt("LICITADOC_API_TIMEOUT_SECONDS", 30)) * time.Second
	cfg.Routes.Entry = getEnv("LICITADOC_ENTRY_ROUTE", cfg.Routes.Entry)
	cfg.Routes.RedirectDelay = time.Duration(getEnvAsInt("LICITADOC_REDIRECT_DELAY_MS", 1500)) * time.Millisecond

	cfg.State.Backend = getEnv("LICITADOC_STATE_BACKEND", cfg.State.Backend)
	cfg.State.Prefix = getEnv("LICITADOC_STATE_PREFIX", cfg.State.Prefix)
	cfg.State.RedisAddr = getEnv("LICITADOC_REDIS_ADDR", cfg.State.RedisAddr)
	cfg.State.RedisPassword = getEnv("LICITADOC_REDIS_PASSWORD", "")
	cfg.State.RedisDB = getEnvAsInt("LICITADOC_REDIS_DB", 0)

	cfg.Notify.Enabled = getEnvAsBool("LICITADOC_NOTIFY_ENABLED", cfg.Notify.Enabled)
	cfg.Notify.BufferSize = getEnvAsInt("LICITADOC_NOTIFY_BUFFER", cfg.Notify.BufferSize)
	cfg.Metrics.Enabled = getEnvAsBool("LICITADOC_METRICS_ENABLED", cfg.Metrics.Enabled)
	cfg.Logger.Level = getEnv("LICITADOC_LOG_LEVEL", cfg.Logger.Level)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
