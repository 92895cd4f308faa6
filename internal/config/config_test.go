package config

import (
	"reflect"
	"testing"
	"time"
)

var allKeys = []string{
	"PORT", "GIN_MODE", "GOOGLE_API_KEY", "ORACLE_MODEL", "ORACLE_TIMEOUT", "ORACLE_ATTEMPTS",
	"DB_URL", "REDIS_URL", "RABBITMQ_URL",
	"R2_ACCOUNT_ID", "R2_BUCKET", "R2_ACCESS_KEY", "R2_SECRET_KEY",
	"SESSION_TTL", "COOKIE_SECURE", "ADMIN_TOKEN", "CORS_ORIGINS", "STATIC_DIR",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "5000" || cfg.GinMode != "release" || cfg.OracleModel != "gemini-2.5-pro" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.OracleTimeout != time.Minute || cfg.OracleAttempts != 2 || cfg.SessionTTL != 168*time.Hour {
		t.Errorf("durations = %v %d %v", cfg.OracleTimeout, cfg.OracleAttempts, cfg.SessionTTL)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"http://localhost:5173"}) {
		t.Errorf("origins = %v", cfg.CORSOrigins)
	}
	if cfg.R2Enabled() || cfg.CookieSecure {
		t.Errorf("optional features enabled: %+v", cfg)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "key")
	t.Setenv("ORACLE_TIMEOUT", "15s")
	t.Setenv("ORACLE_ATTEMPTS", "5")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("R2_ACCOUNT_ID", "acc")
	t.Setenv("R2_BUCKET", "cvs")
	t.Setenv("R2_ACCESS_KEY", "ak")
	t.Setenv("R2_SECRET_KEY", "sk")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OracleTimeout != 15*time.Second || cfg.OracleAttempts != 5 || !cfg.CookieSecure {
		t.Errorf("cfg = %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Errorf("origins = %v", cfg.CORSOrigins)
	}
	if !cfg.R2Enabled() || cfg.R2Bucket != "cvs" {
		t.Errorf("r2 = %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"missing api key":   {},
		"attempts too high": {"GOOGLE_API_KEY": "k", "ORACLE_ATTEMPTS": "6"},
		"attempts zero":     {"GOOGLE_API_KEY": "k", "ORACLE_ATTEMPTS": "0"},
		"bad timeout":       {"GOOGLE_API_KEY": "k", "ORACLE_TIMEOUT": "soon"},
		"negative ttl":      {"GOOGLE_API_KEY": "k", "SESSION_TTL": "-1h"},
		"bad bool":          {"GOOGLE_API_KEY": "k", "COOKIE_SECURE": "maybe"},
		"partial r2":        {"GOOGLE_API_KEY": "k", "R2_BUCKET": "cvs"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
