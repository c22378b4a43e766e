package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`
	BaseURL     string `env:"BASE_URL,required" validate:"required,url"`
	SiteName    string `env:"SITE_NAME" envDefault:"DevAI Portfolio" validate:"required"`

	LygosAPIKey  string `env:"LYGOS_API_KEY,required" validate:"required"`
	LygosBaseURL string `env:"LYGOS_BASE_URL" envDefault:"https://api.lygosapp.com" validate:"required,url"`

	EmailProvider  string `env:"EMAIL_PROVIDER" envDefault:"resend" validate:"omitempty,oneof=resend mailgun"`
	EmailFrom      string `env:"EMAIL_FROM,required" validate:"required"`
	AdminEmail     string `env:"ADMIN_EMAIL,required" validate:"required,email"`
	ResendAPIKey   string `env:"RESEND_API_KEY" validate:"required_if=EmailProvider resend"`
	MailgunAPIKey  string `env:"MAILGUN_API_KEY" validate:"required_if=EmailProvider mailgun"`
	MailgunDomain  string `env:"MAILGUN_DOMAIN" validate:"required_if=EmailProvider mailgun"`
	MailgunBaseURL string `env:"MAILGUN_BASE_URL" envDefault:"https://api.mailgun.net/v3" validate:"omitempty,url"`

	CatalogPath string `env:"CATALOG_PATH"`

	CacheProvider         string `env:"CACHE_PROVIDER" envDefault:"memory" validate:"omitempty,oneof=memory redis"`
	SessionStoreProvider  string `env:"SESSION_STORE_PROVIDER" envDefault:"memory" validate:"omitempty,oneof=memory redis"`
	RedisConnectionString string `env:"REDIS_CONNECTION_STRING" envDefault:"redis://localhost:6379/0" validate:"required_if=CacheProvider redis,required_if=SessionStoreProvider redis"`

	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"text" validate:"omitempty,oneof=text json"`
	Port      string     `env:"PORT" envDefault:"8080"`
}

var configValidator = validator.New()

func Load() (*Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if err := configValidator.Struct(c); err != nil {
		return err
	}

	baseURL := strings.TrimSpace(c.BaseURL)
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Hostname() == "" {
		return fmt.Errorf("BASE_URL must be a valid absolute URL")
	}
	if !isLocalHost(parsed.Hostname()) && !strings.EqualFold(parsed.Scheme, "https") {
		return fmt.Errorf("BASE_URL must use https outside local development")
	}

	return nil
}

func isLocalHost(host string) bool {
	switch strings.ToLower(strings.TrimSpace(host)) {
	case "localhost", "127.0.0.1", "::1":
		return true
	default:
		return false
	}
}
