// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// DevJWTSecret signs tokens when APP_ENV is development and JWT_SECRET is unset.
const DevJWTSecret = "billsplit-development-secret-do-not-use"

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	DBPath             string
	JWTSecret          string
	TokenTTL           time.Duration
	LogLevel           string
	CORSAllowedOrigins []string
	MetricsNamespace   string
}

// defaults apply to keys that are unset or blank in the environment.
var defaults = map[string]any{
	"APP_ENV":              "development",
	"PORT":                 "8080",
	"DB_PATH":              "./data/bills.db",
	"TOKEN_TTL":            "24h",
	"LOG_LEVEL":            "info",
	"CORS_ALLOWED_ORIGINS": []string{"*"},
	"METRICS_NAMESPACE":    "billsplit",
}

// Load reads configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("set default %s: %w", key, err)
		}
	}
	if err := k.Load(env.ProviderWithValue("", ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             k.String("APP_ENV"),
		Port:               k.String("PORT"),
		DBPath:             k.String("DB_PATH"),
		JWTSecret:          k.String("JWT_SECRET"),
		TokenTTL:           k.Duration("TOKEN_TTL"),
		LogLevel:           k.String("LOG_LEVEL"),
		CORSAllowedOrigins: k.Strings("CORS_ALLOWED_ORIGINS"),
		MetricsNamespace:   k.String("METRICS_NAMESPACE"),
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}

	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, errors.New("JWT_SECRET is required")
		}
		cfg.JWTSecret = DevJWTSecret
	}

	return cfg, nil
}

// envValue trims every variable, drops blank ones so defaults hold, and
// splits the CORS origin list.
func envValue(key, value string) (string, any) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if key != "CORS_ALLOWED_ORIGINS" {
		return key, value
	}

	var origins []string
	for _, origin := range strings.Split(value, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return key, origins
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

// HTTPAddr returns the listen address for Port, which may be "8080" or ":8080".
func (c *Config) HTTPAddr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
