// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"

	DefaultUserID = "763b9c95-4bae-4044-9d30-7ae513286b37"

	minSecretKeyLength = 32
)

var insecureSecretPlaceholders = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

var (
	ErrSecretKeyMissing     = errors.New("SECRET_KEY is required")
	ErrSecretKeyPlaceholder = errors.New("SECRET_KEY uses an insecure placeholder value")
	ErrSecretKeyTooShort    = fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
)

type Config struct {
	Port            string        `mapstructure:"PORT"`
	SecretKey       string        `mapstructure:"SECRET_KEY"`
	DBPath          string        `mapstructure:"DB_PATH"`
	APIBaseURL      string        `mapstructure:"API_BASE_URL"`
	DefaultLanguage string        `mapstructure:"DEFAULT_LANGUAGE"`
	Timezone        string        `mapstructure:"TZ"`
	CookieSecure    bool          `mapstructure:"COOKIE_SECURE"`
	DefaultUserID   string        `mapstructure:"DEFAULT_USER_ID"`
	UseLocalUserID  bool          `mapstructure:"USE_LOCAL_USER_ID"`
	BackendTimeout  time.Duration `mapstructure:"BACKEND_TIMEOUT"`
	RenderBudget    time.Duration `mapstructure:"RENDER_BUDGET"`

	CacheBackend    string        `mapstructure:"CACHE_BACKEND"`
	CacheSizeMB     int           `mapstructure:"CACHE_SIZE_MB"`
	CacheStaleAfter time.Duration `mapstructure:"CACHE_STALE_AFTER"`
	CacheRetention  time.Duration `mapstructure:"CACHE_RETENTION"`
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int           `mapstructure:"REDIS_DB"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
	LogFile  string `mapstructure:"LOG_FILE"`
	LogJSON  bool   `mapstructure:"LOG_JSON"`

	TemplatesDir string `mapstructure:"TEMPLATES_DIR"`
	LocalesDir   string `mapstructure:"LOCALES_DIR"`
	StaticDir    string `mapstructure:"STATIC_DIR"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("SECRET_KEY", "")
	v.SetDefault("DB_PATH", "data/titanlift.db")
	v.SetDefault("API_BASE_URL", "http://localhost:3000")
	v.SetDefault("DEFAULT_LANGUAGE", "en")
	v.SetDefault("TZ", "UTC")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("DEFAULT_USER_ID", DefaultUserID)
	v.SetDefault("USE_LOCAL_USER_ID", false)
	v.SetDefault("BACKEND_TIMEOUT", "0s")
	v.SetDefault("RENDER_BUDGET", "750ms")

	v.SetDefault("CACHE_BACKEND", CacheBackendMemory)
	v.SetDefault("CACHE_SIZE_MB", 64)
	v.SetDefault("CACHE_STALE_AFTER", "30s")
	v.SetDefault("CACHE_RETENTION", "5m")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOG_JSON", false)

	v.SetDefault("TEMPLATES_DIR", "internal/templates")
	v.SetDefault("LOCALES_DIR", "internal/i18n/locales")
	v.SetDefault("STATIC_DIR", "web/static")
}

// Load reads dotenv files (missing ones are ignored) and then the environment.
func Load(dotenvFiles ...string) (*Config, error) {
	for _, file := range dotenvFiles {
		_ = godotenv.Load(file)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DatabasePath resolves DB_PATH the way Load does, without validating the
// rest of the configuration. Maintenance commands only need the database.
func DatabasePath(dotenvFiles ...string) string {
	for _, file := range dotenvFiles {
		_ = godotenv.Load(file)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return strings.TrimSpace(v.GetString("DB_PATH"))
}

func (cfg *Config) normalize() {
	cfg.SecretKey = strings.TrimSpace(cfg.SecretKey)
	cfg.Port = strings.TrimSpace(cfg.Port)
	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	cfg.CacheBackend = strings.ToLower(strings.TrimSpace(cfg.CacheBackend))
	cfg.DefaultUserID = strings.TrimSpace(cfg.DefaultUserID)
}

func (cfg *Config) Validate() error {
	if err := ValidateSecretKey(cfg.SecretKey); err != nil {
		return err
	}
	if err := ValidatePort(cfg.Port); err != nil {
		return err
	}
	if cfg.APIBaseURL == "" {
		return errors.New("API_BASE_URL is required")
	}
	if cfg.DefaultUserID == "" {
		return errors.New("DEFAULT_USER_ID is required")
	}
	switch cfg.CacheBackend {
	case CacheBackendMemory:
		if cfg.CacheSizeMB <= 0 {
			return errors.New("CACHE_SIZE_MB must be positive")
		}
	case CacheBackendRedis:
		if strings.TrimSpace(cfg.RedisAddr) == "" {
			return errors.New("REDIS_ADDR is required for the redis cache backend")
		}
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", cfg.CacheBackend)
	}
	if cfg.RenderBudget < 0 || cfg.BackendTimeout < 0 || cfg.CacheStaleAfter < 0 || cfg.CacheRetention < 0 {
		return errors.New("durations must not be negative")
	}
	return nil
}

func ValidateSecretKey(secret string) error {
	trimmed := strings.TrimSpace(secret)
	if trimmed == "" {
		return ErrSecretKeyMissing
	}
	if _, insecure := insecureSecretPlaceholders[strings.ToLower(trimmed)]; insecure {
		return ErrSecretKeyPlaceholder
	}
	if len(trimmed) < minSecretKeyLength {
		return ErrSecretKeyTooShort
	}
	return nil
}

func ValidatePort(raw string) error {
	port, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("PORT must be numeric: %w", err)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("PORT %d is out of range", port)
	}
	return nil
}
