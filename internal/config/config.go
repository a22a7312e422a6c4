// Package config loads application settings from the environment and exposes
// them as an explicit configuration object passed into the wiring at startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the application.
type Config struct {
	// Server settings
	Port    string // HTTP listen port
	GinMode string // gin mode (debug, release, test)

	// Database settings
	DBDriver   string // sqlite, mysql or postgres
	SQLitePath string // database file path when DBDriver is sqlite
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// RunMigrations runs gorm AutoMigrate on startup when true.
	RunMigrations bool

	// Session settings
	RedisAddr     string        // Redis address for the session store; empty means DB-backed sessions
	RedisPassword string
	SessionTTL    time.Duration // lifetime of a login session

	// API token settings
	JWTSecret string
	JWTExpiry time.Duration

	// CORSAllowedOrigins is a comma-separated list of origins allowed on /api.
	CORSAllowedOrigins string
}

// Load reads the configuration from environment variables.
// A .env file is loaded first when present so local development does not need
// exported variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		SQLitePath: getEnv("SQLITE_PATH", "tasktrack.db"),
		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBName:     getEnv("DB_NAME", "tasktrack"),

		RunMigrations: getEnvAsBool("RUN_MIGRATIONS", true),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		SessionTTL:    getEnvAsDuration("SESSION_TTL", 12*time.Hour),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: getEnvAsDuration("JWT_EXPIRY", 15*time.Minute),

		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that must be present for the process to run safely.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	// In release mode an unset JWT secret would make every API token forgeable.
	if c.GinMode == "release" && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in release mode")
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
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
