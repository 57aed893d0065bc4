package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ModerationOpen = "open" // any authenticated user may moderate
	ModerationRole = "role" // only moderator/admin roles may moderate
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// Service Ports
	HTTPPort int `env:"HTTP_PORT" default:"8080"`

	// Database
	DBHost         string `env:"DB_HOST" default:"localhost"`
	DBPort         int    `env:"DB_PORT" default:"5432"`
	DBName         string `env:"DB_NAME" default:"mrp_db"`
	DBUser         string `env:"DB_USER" default:"mrp_user"`
	DBPassword     string `env:"DB_PASS" default:"mrp_password"`
	DBSSLMode      string `env:"DB_SSLMODE" default:"disable"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" default:"20"`
	DBMaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" default:"5"`

	// Authentication
	TokenSecret    string `env:"TOKEN_SECRET"` // random per process when empty
	ModerationMode string `env:"MODERATION_MODE" default:"open"`

	// Redis Cache
	RedisURL      string        `env:"REDIS_URL"`
	ScoreCacheTTL time.Duration `env:"SCORE_CACHE_TTL" default:"5m"`

	// Monitoring
	PrometheusEnabled bool `env:"PROMETHEUS_ENABLED" default:"true"`

	// Development
	LogLevel    string `env:"LOG_LEVEL" default:"info"`
	LogFormat   string `env:"LOG_FORMAT" default:"text"`
	CORSOrigins string `env:"CORS_ORIGINS" default:"*"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// A missing .env is fine, system env vars still apply and always take precedence.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load .env file: %v\n", err)
		}
	}

	config := &Config{}

	loadEnvString(&config.GoEnv, "GO_ENV", "development")

	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 8080); err != nil {
		return nil, err
	}

	// Database
	loadEnvString(&config.DBHost, "DB_HOST", "localhost")
	if err := loadEnvInt(&config.DBPort, "DB_PORT", 5432); err != nil {
		return nil, err
	}
	loadEnvString(&config.DBName, "DB_NAME", "mrp_db")
	loadEnvString(&config.DBUser, "DB_USER", "mrp_user")
	loadEnvString(&config.DBPassword, "DB_PASS", "mrp_password")
	loadEnvString(&config.DBSSLMode, "DB_SSLMODE", "disable")
	if err := loadEnvInt(&config.DBMaxOpenConns, "DB_MAX_OPEN_CONNS", 20); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.DBMaxIdleConns, "DB_MAX_IDLE_CONNS", 5); err != nil {
		return nil, err
	}

	// Authentication
	loadEnvString(&config.TokenSecret, "TOKEN_SECRET", "")
	loadEnvString(&config.ModerationMode, "MODERATION_MODE", ModerationOpen)
	config.ModerationMode = strings.ToLower(config.ModerationMode)

	// Redis
	loadEnvString(&config.RedisURL, "REDIS_URL", "")
	if err := loadEnvDuration(&config.ScoreCacheTTL, "SCORE_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}

	// Monitoring
	if err := loadEnvBool(&config.PrometheusEnabled, "PROMETHEUS_ENABLED", true); err != nil {
		return nil, err
	}

	// Development
	loadEnvString(&config.LogLevel, "LOG_LEVEL", "info")
	loadEnvString(&config.LogFormat, "LOG_FORMAT", "text")
	loadEnvString(&config.CORSOrigins, "CORS_ORIGINS", "*")

	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvBool(target *bool, key string, defaultValue bool) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errors []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}
	if c.DBPort < 1 || c.DBPort > 65535 {
		errors = append(errors, "DB_PORT must be between 1 and 65535")
	}
	if c.DBMaxOpenConns < 1 {
		errors = append(errors, "DB_MAX_OPEN_CONNS must be positive")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	if c.ModerationMode != ModerationOpen && c.ModerationMode != ModerationRole {
		errors = append(errors, "MODERATION_MODE must be one of: open, role")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// DSN returns the postgres connection string built from the DB_* settings.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// Helper function to check if slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
