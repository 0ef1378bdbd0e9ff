package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration, loaded from environment
// variables with sensible local-development defaults.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Logging  LoggingConfig
	Prices   PricesConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

// DatabaseConfig holds Postgres connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// AuthConfig holds token and password settings.
type AuthConfig struct {
	JWTSecret            string
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	BcryptCost           int
	MinPasswordLength    int
}

// RedisConfig holds quote cache settings. Enabled is false when no
// address is configured; the server then runs without a cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis address is configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string
	Pretty bool
}

// PricesConfig holds market data settings.
type PricesConfig struct {
	CacheTTL time.Duration
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvIntOrDefault("SERVER_PORT", 8080),
			AllowedOrigins: []string{getEnvOrDefault("SERVER_ALLOWED_ORIGINS", "http://localhost:3000")},
		},
		Database: DatabaseConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
			Name:     getEnvOrDefault("DB_NAME", "networth"),
			SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
		},
		Auth: AuthConfig{
			JWTSecret:            os.Getenv("JWT_SECRET"),
			AccessTokenDuration:  getEnvDurationOrDefault("JWT_ACCESS_DURATION", 15*time.Minute),
			RefreshTokenDuration: getEnvDurationOrDefault("JWT_REFRESH_DURATION", 7*24*time.Hour),
			BcryptCost:           getEnvIntOrDefault("BCRYPT_COST", 12),
			MinPasswordLength:    getEnvIntOrDefault("MIN_PASSWORD_LENGTH", 8),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvIntOrDefault("REDIS_DB", 0),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Pretty: getEnvOrDefault("LOG_PRETTY", "false") == "true",
		},
		Prices: PricesConfig{
			CacheTTL: getEnvDurationOrDefault("PRICE_CACHE_TTL", 5*time.Minute),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	return cfg, nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDurationOrDefault(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
