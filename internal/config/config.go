package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig
	SMTP      SMTPConfig
	Webhook   WebhookConfig
	Captcha   CaptchaConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port int `envconfig:"PORT" default:"8080"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// SMTPConfig carries the relay credentials for contact-form notification
// email. Username and password have no defaults; sending without them fails
// at send time.
type SMTPConfig struct {
	Host      string `envconfig:"SMTP_HOST" default:"smtp.zoho.com"`
	Port      int    `envconfig:"SMTP_PORT" default:"465"`
	Username  string `envconfig:"SMTP_USERNAME"`
	Password  string `envconfig:"SMTP_PASSWORD"`
	Recipient string `envconfig:"CONTACT_RECIPIENT"`
}

// WebhookConfig points form submissions at an external automation platform.
// Both values must be set for the sink to activate; otherwise it is skipped.
type WebhookConfig struct {
	URL    string `envconfig:"WEBHOOK_URL"`
	APIKey string `envconfig:"WEBHOOK_API_KEY"`
}

// Enabled reports whether the webhook sink is fully configured.
func (c WebhookConfig) Enabled() bool {
	return c.URL != "" && c.APIKey != ""
}

// CaptchaConfig gates the contact form behind reCAPTCHA v3 when a secret is
// present. An empty secret skips verification entirely.
type CaptchaConfig struct {
	SecretKey string `envconfig:"RECAPTCHA_SECRET_KEY"`
}

// Enabled reports whether captcha verification is active.
func (c CaptchaConfig) Enabled() bool {
	return c.SecretKey != ""
}

type RateLimitConfig struct {
	Window time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"15m"`
	Max    int           `envconfig:"RATE_LIMIT_MAX" default:"5"`
}

// Load reads configuration from environment variables. Optional sinks
// (webhook, captcha) degrade gracefully when their variables are absent.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}
