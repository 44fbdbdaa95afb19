// Package config resolves runtime settings from a .env file, an optional YAML
// file and the process environment, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	insecureSecretPlaceholder = "change_me_in_production"
	minSecretKeyLength        = 32

	defaultPort            = "8080"
	defaultTimezone        = "UTC"
	defaultLanguage        = "en"
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
	defaultMaxCalendarDays = 366
	defaultTokenTTLHours   = 7 * 24
)

var (
	ErrSecretKeyMissing  = errors.New("SECRET_KEY is required")
	ErrSecretKeyInsecure = errors.New("SECRET_KEY uses the insecure placeholder")
	ErrSecretKeyTooShort = fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
)

type Config struct {
	Port            string `yaml:"port"`
	DBPath          string `yaml:"db_path"`
	SecretKey       string `yaml:"secret_key"`
	Timezone        string `yaml:"timezone"`
	DefaultLanguage string `yaml:"default_language"`
	// LocalesDir overrides the embedded locale files when set.
	LocalesDir      string `yaml:"locales_dir"`
	LogLevel        string `yaml:"log_level"`
	LogFormat       string `yaml:"log_format"`
	MaxCalendarDays int    `yaml:"max_calendar_days"`
	TokenTTLHours   int    `yaml:"token_ttl_hours"`
	CookieSecure    bool   `yaml:"cookie_secure"`
}

func Default() *Config {
	return &Config{
		Port:            defaultPort,
		DBPath:          filepath.Join("data", "ovumcalc.db"),
		Timezone:        defaultTimezone,
		DefaultLanguage: defaultLanguage,
		LogLevel:        defaultLogLevel,
		LogFormat:       defaultLogFormat,
		MaxCalendarDays: defaultMaxCalendarDays,
		TokenTTLHours:   defaultTokenTTLHours,
	}
}

// Load reads .env (if present), then the YAML file named by CONFIG_PATH, then
// individual environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return cfg, nil
}

func (cfg *Config) mergeFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (cfg *Config) applyEnv() error {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.SecretKey = getEnv("SECRET_KEY", cfg.SecretKey)
	cfg.Timezone = getEnv("TZ", cfg.Timezone)
	cfg.DefaultLanguage = getEnv("DEFAULT_LANGUAGE", cfg.DefaultLanguage)
	cfg.LocalesDir = getEnv("LOCALES_DIR", cfg.LocalesDir)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)

	var err error
	if cfg.MaxCalendarDays, err = getEnvInt("MAX_CALENDAR_DAYS", cfg.MaxCalendarDays); err != nil {
		return err
	}
	if cfg.TokenTTLHours, err = getEnvInt("TOKEN_TTL_HOURS", cfg.TokenTTLHours); err != nil {
		return err
	}
	if cfg.CookieSecure, err = getEnvBool("COOKIE_SECURE", cfg.CookieSecure); err != nil {
		return err
	}
	return nil
}

// Normalize replaces empty or out-of-range values with defaults.
func (cfg *Config) Normalize() {
	if strings.TrimSpace(cfg.Port) == "" {
		cfg.Port = defaultPort
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "ovumcalc.db")
	}
	if strings.TrimSpace(cfg.Timezone) == "" {
		cfg.Timezone = defaultTimezone
	}
	if strings.TrimSpace(cfg.DefaultLanguage) == "" {
		cfg.DefaultLanguage = defaultLanguage
	}
	switch strings.ToLower(strings.TrimSpace(cfg.LogLevel)) {
	case "debug", "info", "warn", "error":
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	default:
		cfg.LogLevel = defaultLogLevel
	}
	switch strings.ToLower(strings.TrimSpace(cfg.LogFormat)) {
	case "json":
		cfg.LogFormat = "json"
	default:
		cfg.LogFormat = defaultLogFormat
	}
	if cfg.MaxCalendarDays <= 0 {
		cfg.MaxCalendarDays = defaultMaxCalendarDays
	}
	if cfg.TokenTTLHours <= 0 {
		cfg.TokenTTLHours = defaultTokenTTLHours
	}
}

// ValidateSecretKey is required before serving; the CLI calculator commands
// run without a key.
func (cfg *Config) ValidateSecretKey() error {
	secret := strings.TrimSpace(cfg.SecretKey)
	switch {
	case secret == "":
		return ErrSecretKeyMissing
	case secret == insecureSecretPlaceholder:
		return ErrSecretKeyInsecure
	case len(secret) < minSecretKeyLength:
		return ErrSecretKeyTooShort
	}
	return nil
}

// Location falls back to UTC for unknown zone names.
func (cfg *Config) Location() (*time.Location, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return time.UTC, fmt.Errorf("invalid TZ %q: %w", cfg.Timezone, err)
	}
	return location, nil
}

func (cfg *Config) TokenTTL() time.Duration {
	return time.Duration(cfg.TokenTTLHours) * time.Hour
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return value, nil
}
