package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "shortlist-console")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("RECRUITING_API_BASE_URL", "https://api.example.com/")
	t.Setenv("SESSION_ACCESS_SECRET", "access")
	t.Setenv("SESSION_REFRESH_SECRET", "refresh")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Recruiting.BaseURL != "https://api.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Recruiting.BaseURL)
	}
	if cfg.Recruiting.Timeout != 10*time.Second {
		t.Fatalf("expected 10s api timeout, got %s", cfg.Recruiting.Timeout)
	}
	if cfg.Session.AccessTTL != time.Hour {
		t.Fatalf("expected 1h access ttl, got %s", cfg.Session.AccessTTL)
	}
	if cfg.Redis.JobsCacheTTL != 30*time.Second {
		t.Fatalf("expected 30s jobs cache ttl, got %s", cfg.Redis.JobsCacheTTL)
	}
	if cfg.Database.Enabled() {
		t.Fatalf("expected database disabled without DB_HOST")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_ACCESS_SECRET", "")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
	if !strings.Contains(err.Error(), "SESSION_ACCESS_SECRET") {
		t.Fatalf("expected missing key in message, got %v", err)
	}
}

func TestLoad_DurationAsSeconds(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RECRUITING_API_TIMEOUT", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Recruiting.Timeout != 3*time.Second {
		t.Fatalf("expected 3s, got %s", cfg.Recruiting.Timeout)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_ACCESS_TTL", "soon")

	_, err := Load()
	if !errors.Is(err, errInvalidEnv) {
		t.Fatalf("expected errInvalidEnv, got %v", err)
	}
}
