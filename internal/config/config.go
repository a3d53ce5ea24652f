package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	HTTP    HTTPConfig
	CORS    CORSConfig
	Session SessionConfig
	Refresh RefreshConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// StoreConfig holds portfolio store configuration.
// The default path ":memory:" keeps the portfolio process-scoped,
// matching the reset-on-restart behavior of the original tracker.
// Point it at a file to make the portfolio durable.
type StoreConfig struct {
	Path string
}

// HTTPConfig holds settings for outbound calls to external services.
type HTTPConfig struct {
	Timeout time.Duration
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// SessionConfig holds the fernet key used to encrypt the session cookie.
// When empty, an ephemeral key is generated at startup and sessions do not
// survive a restart.
type SessionConfig struct {
	Key string
}

// RefreshConfig holds the optional cron schedule for the background quote
// refresher. Empty disables it.
type RefreshConfig struct {
	Schedule string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	timeout, err := getEnvDuration("HTTP_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Store: StoreConfig{
			Path: getEnv("DB_PATH", ":memory:"),
		},
		HTTP: HTTPConfig{
			Timeout: timeout,
		},
		CORS: CORSConfig{
			AllowedOrigins: strings.Split(
				getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost"),
				",",
			),
		},
		Session: SessionConfig{
			Key: os.Getenv("SESSION_KEY"),
		},
		Refresh: RefreshConfig{
			Schedule: os.Getenv("REFRESH_SCHEDULE"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvDuration parses an environment variable as seconds, with a default.
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return time.Duration(seconds) * time.Second, nil
}
