package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	Cache   CacheConfig
	OTel    OTelConfig
}

type AppConfig struct {
	Name     string
	Version  string
	Env      string
	LogLevel string
}

type APIConfig struct {
	BaseURL     string
	ShortBase   string // public base short links are served from
	Timeout     time.Duration
	MaxFailures int           // circuit breaker failure threshold
	CBInterval  time.Duration // time the breaker stays open
}

type SessionConfig struct {
	Dir string
}

type CacheConfig struct {
	Enabled    bool
	TTL        time.Duration
	MaxEntries int
}

type OTelConfig struct {
	Enabled  bool
	Endpoint string
}

func Load() (*Config, error) {
	// A missing .env is fine for a CLI; plain env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:     GetEnv("APP_NAME", "snip"),
			Version:  GetEnv("APP_VERSION", "0.1.0"),
			Env:      GetEnv("APP_ENV", "production"),
			LogLevel: GetEnv("LOG_LEVEL", "warn"),
		},
		API: APIConfig{
			BaseURL:     GetEnv("SNIP_API_URL", "http://localhost:8080/api"),
			ShortBase:   GetEnv("SNIP_SHORT_BASE", ""),
			Timeout:     GetEnvDuration("SNIP_API_TIMEOUT", 15*time.Second),
			MaxFailures: GetEnvInt("SNIP_API_MAX_FAILURES", 5),
			CBInterval:  GetEnvDuration("SNIP_API_CB_INTERVAL", 30*time.Second),
		},
		Session: SessionConfig{
			Dir: GetEnv("SNIP_SESSION_DIR", DefaultSessionDir(".snip")),
		},
		Cache: CacheConfig{
			Enabled:    GetEnvBool("SNIP_CACHE_ENABLED", true),
			TTL:        GetEnvDuration("SNIP_CACHE_TTL", 60*time.Second),
			MaxEntries: GetEnvInt("SNIP_CACHE_MAX_ENTRIES", 1024),
		},
		OTel: OTelConfig{
			Enabled:  GetEnvBool("OTEL_ENABLED", false),
			Endpoint: GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
		},
	}

	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || strings.TrimSpace(u.Host) == "" {
		return nil, fmt.Errorf("SNIP_API_URL must be an absolute http(s) URL (got %q)", cfg.API.BaseURL)
	}
	if cfg.API.Timeout <= 0 {
		return nil, fmt.Errorf("SNIP_API_TIMEOUT must be positive (got %s)", cfg.API.Timeout)
	}
	if cfg.API.MaxFailures < 1 {
		return nil, fmt.Errorf("SNIP_API_MAX_FAILURES must be at least 1 (got %d)", cfg.API.MaxFailures)
	}
	if cfg.Cache.MaxEntries < 1 {
		return nil, fmt.Errorf("SNIP_CACHE_MAX_ENTRIES must be at least 1 (got %d)", cfg.Cache.MaxEntries)
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.API.ShortBase == "" {
		// Short links live at the server root alongside the /api prefix.
		cfg.API.ShortBase = strings.TrimSuffix(cfg.API.BaseURL, "/api")
	}
	cfg.API.ShortBase = strings.TrimRight(cfg.API.ShortBase, "/")

	return cfg, nil
}
