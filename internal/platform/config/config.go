package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr               string
	DatabaseURL        string
	ServiceDatabaseURL string
	JWTSecret          string
	DataEncryptionKey  string
	Environment        string
	LogLevel           string
	LogFormat          string
	RunMigrations      bool
	RunSeed            bool
	MaxBodyBytes       int64
	RateLimitPerMinute int
	RateLimitStorage   string
	RateLimitRedisURL  string
	MetricsEnabled     bool
}

// LoadEnvFiles loads the given dotenv files that exist. Variables already set
// in the process environment win.
func LoadEnvFiles(files ...string) error {
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// Load reads the process environment. Schema migrations and seeding default
// to on only in development; other environments run them through the
// migrate and seed commands or opt in explicitly.
func Load() Config {
	env := getEnv("APP_ENV", "development")
	schemaSetup := env == "development"
	return Config{
		Addr:               getEnv("APP_ADDR", ":8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		ServiceDatabaseURL: getEnv("SERVICE_DATABASE_URL", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		DataEncryptionKey:  getEnv("DATA_ENCRYPTION_KEY", ""),
		Environment:        env,
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		RunMigrations:      getEnvBool("RUN_MIGRATIONS", schemaSetup),
		RunSeed:            getEnvBool("RUN_SEED", schemaSetup),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		RateLimitStorage:   getEnv("RATE_LIMIT_STORAGE", "memory"),
		RateLimitRedisURL:  getEnv("RATE_LIMIT_REDIS_URL", ""),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
	}
}

// AdminDatabaseURL is the connection used for schema setup. It falls back to
// the application connection when no privileged URL is configured.
func (c Config) AdminDatabaseURL() string {
	if strings.TrimSpace(c.ServiceDatabaseURL) != "" {
		return c.ServiceDatabaseURL
	}
	return c.DatabaseURL
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.IsProduction() {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if strings.TrimSpace(c.DataEncryptionKey) == "" {
			return fmt.Errorf("DATA_ENCRYPTION_KEY must be set in production for encryption at rest")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.RateLimitStorage != "memory" && c.RateLimitStorage != "redis" {
		return fmt.Errorf("RATE_LIMIT_STORAGE must be 'memory' or 'redis', got %q", c.RateLimitStorage)
	}
	if c.RateLimitStorage == "redis" && strings.TrimSpace(c.RateLimitRedisURL) == "" {
		return fmt.Errorf("RATE_LIMIT_REDIS_URL is required when RATE_LIMIT_STORAGE is 'redis'")
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be 'json' or 'text', got %q", c.LogFormat)
	}
	return nil
}
