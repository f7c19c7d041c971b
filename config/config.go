package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type Config struct {
	HTTPHost string
	HTTPPort string
	GRPCHost string
	GRPCPort string

	Database DatabaseConfig
	Keys     KeyConfig
	Records  RecordLimits
	Log      LogConfig
}

type DatabaseConfig struct {
	Driver string
	DSN    string
}

type KeyConfig struct {
	// ValidationDelay is the minimum time every key check takes, valid or not.
	ValidationDelay    time.Duration
	IssueRatePerMinute int
	RedisURL           string
	CacheTTL           time.Duration
}

type RecordLimits struct {
	NameMaxLength int
	MetaMaxLength int
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignores error if not found)
	_ = godotenv.Load()

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		return nil, errors.New("DB_DSN environment variable is required")
	}

	driver := strings.ToLower(getEnv("DB_DRIVER", DriverMySQL))
	if driver != DriverMySQL && driver != DriverPostgres {
		return nil, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverMySQL, DriverPostgres, driver)
	}

	return &Config{
		HTTPHost: getEnv("HTTP_HOST", ""),
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		GRPCHost: getEnv("GRPC_HOST", ""),
		GRPCPort: getEnv("GRPC_PORT", "9090"),
		Database: DatabaseConfig{
			Driver: driver,
			DSN:    dsn,
		},
		Keys: KeyConfig{
			ValidationDelay:    getMillisEnv("KEY_VALIDATION_DELAY_MS", 500*time.Millisecond),
			IssueRatePerMinute: getIntEnv("KEY_ISSUE_RATE_PER_MINUTE", 10),
			RedisURL:           strings.TrimSpace(os.Getenv("REDIS_URL")),
			CacheTTL:           getDurationEnv("KEY_CACHE_TTL", 10*time.Minute),
		},
		Records: RecordLimits{
			NameMaxLength: getIntEnv("NAME_MAX_LENGTH", 100),
			MetaMaxLength: getIntEnv("META_MAX_LENGTH", 1000),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}

func getMillisEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if ms, err := strconv.Atoi(value); err == nil && ms >= 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
