package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.SMTP.Host != "smtp.zoho.com" || cfg.SMTP.Port != 465 {
		t.Errorf("SMTP defaults = %s:%d, want smtp.zoho.com:465", cfg.SMTP.Host, cfg.SMTP.Port)
	}
	if cfg.RateLimit.Window != 15*time.Minute || cfg.RateLimit.Max != 5 {
		t.Errorf("rate limit defaults = %v/%d, want 15m/5", cfg.RateLimit.Window, cfg.RateLimit.Max)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")
	t.Setenv("RATE_LIMIT_MAX", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.RateLimit.Window != time.Minute || cfg.RateLimit.Max != 2 {
		t.Errorf("rate limit = %v/%d, want 1m/2", cfg.RateLimit.Window, cfg.RateLimit.Max)
	}
}

func TestOptionalSinks(t *testing.T) {
	var w WebhookConfig
	if w.Enabled() {
		t.Error("empty webhook config should be disabled")
	}
	w.URL = "https://hooks.example.com/x"
	if w.Enabled() {
		t.Error("webhook with URL but no key should be disabled")
	}
	w.APIKey = "k"
	if !w.Enabled() {
		t.Error("webhook with URL and key should be enabled")
	}

	var c CaptchaConfig
	if c.Enabled() {
		t.Error("empty captcha config should be disabled")
	}
	c.SecretKey = "s"
	if !c.Enabled() {
		t.Error("captcha with secret should be enabled")
	}
}
