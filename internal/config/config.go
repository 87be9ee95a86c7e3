// Package config reads client and server settings from the environment.
// Command-line flags in cmd/* override the values loaded here.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends of the client session
const (
	StorageBolt  = "bolt"
	StorageRedis = "redis"
)

type ClientConfig struct {
	ServerURL      string
	LogLevel       string
	Storage        StorageConfig
	RefreshCushion time.Duration
	AttemptTimeout time.Duration
	RequestTimeout time.Duration
}

type StorageConfig struct {
	Backend    string
	DBPath     string
	Passphrase string
	DeviceID   string // пусто: ID из metadata bbolt или имя хоста для redis
	Redis      RedisConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type ServerConfig struct {
	Addr         string
	DBPath       string
	LogLevel     string
	JWT          JWTConfig
	RateLimit    RateLimitConfig
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type JWTConfig struct {
	Secret        string
	Issuer        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

// LoadClient reads the client configuration
func LoadClient() (*ClientConfig, error) {
	cfg := &ClientConfig{
		ServerURL: getEnv("OPENSKY_SERVER_URL", "http://localhost:8080"),
		LogLevel:  getEnv("OPENSKY_LOG_LEVEL", "warn"),
		Storage: StorageConfig{
			Backend:    getEnv("OPENSKY_STORAGE", StorageBolt),
			DBPath:     getEnv("OPENSKY_DB", "opensky-client.db"),
			Passphrase: getEnv("OPENSKY_STORAGE_PASSPHRASE", ""),
			DeviceID:   getEnv("OPENSKY_DEVICE_ID", ""),
			Redis: RedisConfig{
				Addr:     getEnv("OPENSKY_REDIS_ADDR", "localhost:6379"),
				Password: getEnv("OPENSKY_REDIS_PASSWORD", ""),
				DB:       getEnvAsInt("OPENSKY_REDIS_DB", 0),
				TTL:      getEnvAsDuration("OPENSKY_REDIS_TTL", 30*24*time.Hour),
			},
		},
		RefreshCushion: getEnvAsDuration("OPENSKY_REFRESH_CUSHION", 90*time.Second),
		AttemptTimeout: getEnvAsDuration("OPENSKY_REFRESH_TIMEOUT", 30*time.Second),
		RequestTimeout: getEnvAsDuration("OPENSKY_REQUEST_TIMEOUT", 60*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that may also have been overridden by flags
func (c *ClientConfig) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("OPENSKY_SERVER_URL must be an http(s) URL, got %q", c.ServerURL)
	}

	switch c.Storage.Backend {
	case StorageBolt:
		if c.Storage.DBPath == "" {
			return fmt.Errorf("OPENSKY_DB must not be empty")
		}
	case StorageRedis:
		if c.Storage.Redis.Addr == "" {
			return fmt.Errorf("OPENSKY_REDIS_ADDR must not be empty")
		}
	default:
		return fmt.Errorf("OPENSKY_STORAGE must be %q or %q, got %q", StorageBolt, StorageRedis, c.Storage.Backend)
	}

	if c.RefreshCushion < 0 {
		return fmt.Errorf("OPENSKY_REFRESH_CUSHION must not be negative")
	}
	if c.AttemptTimeout <= 0 {
		return fmt.Errorf("OPENSKY_REFRESH_TIMEOUT must be positive")
	}
	return nil
}

// LoadServer reads the development backend configuration
func LoadServer() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Addr:         getEnv("OPENSKY_ADDR", ":8080"),
		DBPath:       getEnv("OPENSKY_SERVER_DB", "opensky-server.db"),
		LogLevel:     getEnv("OPENSKY_LOG_LEVEL", "info"),
		ReadTimeout:  getEnvAsDuration("OPENSKY_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvAsDuration("OPENSKY_WRITE_TIMEOUT", 15*time.Second),
		JWT: JWTConfig{
			Secret:        getEnv("OPENSKY_JWT_SECRET", ""),
			Issuer:        getEnv("OPENSKY_JWT_ISSUER", "opensky"),
			AccessExpiry:  getEnvAsDuration("OPENSKY_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getEnvAsDuration("OPENSKY_REFRESH_EXPIRY", 30*24*time.Hour),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvAsInt("OPENSKY_RATE_LIMIT", 120),
			Burst:             getEnvAsInt("OPENSKY_RATE_BURST", 20),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("OPENSKY_JWT_SECRET environment variable is required")
	}
	if len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("OPENSKY_JWT_SECRET must be at least 32 bytes (256 bits)")
	}
	if cfg.JWT.AccessExpiry <= 0 || cfg.JWT.RefreshExpiry <= cfg.JWT.AccessExpiry {
		return nil, fmt.Errorf("refresh expiry must be longer than access expiry")
	}

	return cfg, nil
}

// ParseLogLevel maps a level name onto slog levels
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
