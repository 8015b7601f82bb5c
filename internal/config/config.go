// Package config loads runtime settings.
//
// Sources, highest priority first:
//  1. environment variables (a .env file is loaded first in development);
//  2. the YAML file named by CONFIG_PATH, when set;
//  3. defaults from the struct tags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Environments
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds every runtime setting of the web frontend.
type Config struct {
	Env             string `yaml:"env" env:"LAGANA_ENV" env-default:"development"`
	APIBaseURL      string `yaml:"api_base_url" env:"API_BASE_URL" env-default:"http://localhost:8000/api/v1"`
	FrontendBaseURL string `yaml:"frontend_base_url" env:"FRONTEND_BASE_URL" env-default:"http://localhost:8080"`
	Port            string `yaml:"port" env:"PORT" env-default:"8080"`

	APITimeout time.Duration `yaml:"api_timeout" env:"LAGANA_API_TIMEOUT" env-default:"15s"`

	// SlowRequest is the threshold above which requests log at WARN.
	SlowRequest time.Duration `yaml:"slow_request" env:"LAGANA_SLOW_REQUEST" env-default:"200ms"`

	Storage  StorageConfig  `yaml:"storage"`
	Security SecurityConfig `yaml:"security"`
	Mail     MailConfig     `yaml:"mail"`

	// RateLimit is requests per minute per client IP on the auth pages.
	RateLimit int  `yaml:"rate_limit" env:"LAGANA_RATE_LIMIT" env-default:"20"`
	Metrics   bool `yaml:"metrics" env:"LAGANA_METRICS" env-default:"true"`
}

// StorageConfig selects where session state is kept.
// Redis wins over SQLite when both are set; neither means in-memory.
type StorageConfig struct {
	DBPath    string        `yaml:"db_path" env:"LAGANA_DB_PATH" env-default:"lagana.db"`
	RedisAddr string        `yaml:"redis_addr" env:"LAGANA_REDIS_ADDR"`
	SlowQuery time.Duration `yaml:"slow_query" env:"LAGANA_SLOW_QUERY" env-default:"50ms"`
}

// SecurityConfig holds key material. Keys are base64 encoded, 32 bytes.
type SecurityConfig struct {
	CSRFKey  string `yaml:"csrf_key" env:"LAGANA_CSRF_KEY"`
	TokenKey string `yaml:"token_key" env:"LAGANA_TOKEN_KEY"`

	// MetricsToken is the bearer token scrapers send to /metrics.
	MetricsToken string `yaml:"metrics_token" env:"LAGANA_METRICS_TOKEN"`
}

// MailConfig configures the invoice-ready notification.
type MailConfig struct {
	ResendKey string `yaml:"resend_key" env:"LAGANA_RESEND_KEY"`
	From      string `yaml:"from" env:"LAGANA_MAIL_FROM" env-default:"Lagana Coach <noreply@laganacoach.com>"`
}

// IsProduction reports whether the server runs in production.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort("", c.Port)
}

// KVDriver names the session store backend.
func (c *Config) KVDriver() string {
	switch {
	case c.Storage.RedisAddr != "":
		return "redis"
	case c.Storage.DBPath != "" && c.Storage.DBPath != "none":
		return "sqlite"
	default:
		return "memory"
	}
}

// TrustedOrigins returns the hosts allowed to post forms (used by CSRF checks).
func (c *Config) TrustedOrigins() []string {
	u, err := url.Parse(c.FrontendBaseURL)
	if err != nil || u.Host == "" {
		return nil
	}
	return []string{u.Host}
}

// SecureCookies reports whether cookies must carry the Secure flag.
func (c *Config) SecureCookies() bool {
	return strings.HasPrefix(c.FrontendBaseURL, "https://")
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	for name, raw := range map[string]string{"API_BASE_URL": c.APIBaseURL, "FRONTEND_BASE_URL": c.FrontendBaseURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s must be an absolute URL, got %q", name, raw))
		}
	}
	if c.APITimeout <= 0 {
		errs = append(errs, errors.New("LAGANA_API_TIMEOUT must be positive"))
	}
	if c.RateLimit < 0 {
		errs = append(errs, errors.New("LAGANA_RATE_LIMIT must not be negative"))
	}
	if c.IsProduction() {
		if c.Security.CSRFKey == "" {
			errs = append(errs, errors.New("LAGANA_CSRF_KEY is required in production"))
		}
		if c.Security.TokenKey == "" {
			errs = append(errs, errors.New("LAGANA_TOKEN_KEY is required in production"))
		}
		if c.Metrics && c.Security.MetricsToken == "" {
			errs = append(errs, errors.New("LAGANA_METRICS_TOKEN is required in production when metrics are on"))
		}
	}
	return errors.Join(errs...)
}

// Load reads the configuration.
// PRE: none
// POST: returns a validated config or the first source that failed
func Load() (*Config, error) {
	if os.Getenv("LAGANA_ENV") != EnvProduction {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("config", "event", "dotenv_unreadable", "error", err)
		}
	}

	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %q: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}

	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	cfg.FrontendBaseURL = strings.TrimRight(cfg.FrontendBaseURL, "/")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad panics when the configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
