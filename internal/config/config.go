package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Env        string `validate:"required"`
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Geocoding  GeocodingConfig
	Forecast   ForecastConfig
	Session    SessionConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, takes precedence over the parts below
	Host               string
	Port               int `validate:"gte=1,lte=65535"`
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int `validate:"gte=1"`
	MaxIdleConnections int `validate:"gte=0"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int `validate:"gte=1,lte=65535"`
	Host           string
	GinMode        string `validate:"oneof=debug release test"`
	AllowedOrigins string
	// Per-client request budget for the suggestion endpoints.
	RateLimitRPS   float64 `validate:"gt=0"`
	RateLimitBurst int     `validate:"gte=1"`
}

// GeocodingConfig holds the open-meteo geocoding settings
type GeocodingConfig struct {
	BaseURL        string        `validate:"required,url"`
	SuggestCount   int           `validate:"gte=1,lte=100"`
	MinQueryLength int           `validate:"gte=1"`
	Timeout        time.Duration `validate:"gt=0"`
	RPS            int           `validate:"gte=1"`
	Language       string
}

// ForecastConfig holds the open-meteo forecast settings
type ForecastConfig struct {
	BaseURL string        `validate:"required,url"`
	Hourly  []string      `validate:"min=1,dive,required"`
	Timeout time.Duration `validate:"gt=0"`
}

// SessionConfig holds the session cookie settings
type SessionConfig struct {
	CookieName string        `validate:"required"`
	MaxAge     time.Duration `validate:"gt=0"`
	Secure     bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		Env: getEnv("APP_ENV", "production"),
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "weather"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 2),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8000),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 10),
			RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
		Geocoding: GeocodingConfig{
			BaseURL:        getEnv("GEOCODING_URL", "https://geocoding-api.open-meteo.com/v1/search"),
			SuggestCount:   getEnvAsInt("SUGGEST_COUNT", 5),
			MinQueryLength: getEnvAsInt("SUGGEST_MIN_QUERY_LENGTH", 2),
			Timeout:        getEnvAsDuration("GEOCODING_TIMEOUT", 5*time.Second),
			RPS:            getEnvAsInt("GEOCODING_RPS", 10),
			Language:       getEnv("GEOCODING_LANGUAGE", ""),
		},
		Forecast: ForecastConfig{
			BaseURL: getEnv("FORECAST_URL", "https://api.open-meteo.com/v1/forecast"),
			Hourly:  getEnvAsList("FORECAST_HOURLY", []string{"temperature_2m", "weathercode", "precipitation", "windspeed_10m"}),
			Timeout: getEnvAsDuration("FORECAST_TIMEOUT", 5*time.Second),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE_NAME", "session_id"),
			MaxAge:     getEnvAsDuration("SESSION_MAX_AGE", 30*24*time.Hour),
			Secure:     getEnv("SESSION_COOKIE_SECURE", "false") == "true",
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the loaded values against their struct tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Addr returns the host:port the server listens on
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration value for %s, using default %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
