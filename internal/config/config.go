// Package config loads and validates environment variables at startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration of the server.
type Config struct {
	Port    string
	GinMode string

	GoogleAPIKey   string
	OracleModel    string
	OracleTimeout  time.Duration
	OracleAttempts int

	DatabaseURL string // empty selects the in-memory store
	RedisURL    string // empty selects in-memory sessions
	RabbitMQURL string // empty disables events

	R2AccountID string
	R2Bucket    string
	R2AccessKey string
	R2SecretKey string

	SessionTTL   time.Duration
	CookieSecure bool
	AdminToken   string
	CORSOrigins  []string
	StaticDir    string
}

// R2Enabled reports whether the CV archive is configured.
func (c *Config) R2Enabled() bool {
	return c.R2AccountID != ""
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY is required")
	}

	timeout, err := durationEnv("ORACLE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	ttl, err := durationEnv("SESSION_TTL", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}

	attempts := 2
	if s := os.Getenv("ORACLE_ATTEMPTS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > 5 {
			return nil, fmt.Errorf("ORACLE_ATTEMPTS must be an integer between 1 and 5, got %q", s)
		}
		attempts = v
	}

	secure := false
	if s := os.Getenv("COOKIE_SECURE"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("COOKIE_SECURE must be a boolean, got %q", s)
		}
		secure = v
	}

	r2 := [4]string{
		os.Getenv("R2_ACCOUNT_ID"),
		os.Getenv("R2_BUCKET"),
		os.Getenv("R2_ACCESS_KEY"),
		os.Getenv("R2_SECRET_KEY"),
	}
	set := 0
	for _, v := range r2 {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != len(r2) {
		return nil, fmt.Errorf("R2_ACCOUNT_ID, R2_BUCKET, R2_ACCESS_KEY and R2_SECRET_KEY must be set together")
	}

	var origins []string
	for _, o := range strings.Split(envOr("CORS_ORIGINS", "http://localhost:5173"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &Config{
		Port:           envOr("PORT", "5000"),
		GinMode:        envOr("GIN_MODE", "release"),
		GoogleAPIKey:   apiKey,
		OracleModel:    envOr("ORACLE_MODEL", "gemini-2.5-pro"),
		OracleTimeout:  timeout,
		OracleAttempts: attempts,
		DatabaseURL:    os.Getenv("DB_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		RabbitMQURL:    os.Getenv("RABBITMQ_URL"),
		R2AccountID:    r2[0],
		R2Bucket:       r2[1],
		R2AccessKey:    r2[2],
		R2SecretKey:    r2[3],
		SessionTTL:     ttl,
		CookieSecure:   secure,
		AdminToken:     os.Getenv("ADMIN_TOKEN"),
		CORSOrigins:    origins,
		StaticDir:      os.Getenv("STATIC_DIR"),
	}, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, s)
	}
	return d, nil
}
