// Package config provides application configuration management.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server        ServerConfig
	Store         StoreConfig
	Redis         RedisConfig
	Notifications NotificationConfig
	RateLimit     RateLimitConfig
	CORS          CORSConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Environment  string
}

// StoreConfig holds the Transaction Store client configuration.
type StoreConfig struct {
	BaseURL      string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

// RedisConfig holds Redis configuration. An empty URL keeps notifications in memory.
type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

// NotificationConfig holds user notification settings.
type NotificationConfig struct {
	TTL      time.Duration
	MaxItems int
}

// RateLimitConfig holds the limits applied to mutating endpoints.
type RateLimitConfig struct {
	MaxAttempts int
	Window      time.Duration
}

// CORSConfig holds the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsInt("SERVER_PORT", 8081),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			Environment:  getEnv("ENV", "development"),
		},
		Store: StoreConfig{
			BaseURL:      getEnv("STORE_BASE_URL", "http://localhost:8080"),
			Timeout:      getEnvAsDuration("STORE_TIMEOUT", 10*time.Second),
			MaxRetries:   getEnvAsInt("STORE_MAX_RETRIES", 2),
			RetryBackoff: getEnvAsDuration("STORE_RETRY_BACKOFF", 200*time.Millisecond),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Notifications: NotificationConfig{
			TTL:      getEnvAsDuration("NOTIFICATION_TTL", 30*time.Second),
			MaxItems: getEnvAsInt("NOTIFICATION_MAX", 20),
		},
		RateLimit: RateLimitConfig{
			MaxAttempts: getEnvAsInt("RATE_LIMIT_MAX_ATTEMPTS", 60),
			Window:      getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		},
	}
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
