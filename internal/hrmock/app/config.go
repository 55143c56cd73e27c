package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer        string        // Optional: issuer claim for minted tokens (default: hrmock)
	TokenTTL      time.Duration // Optional: badge token lifetime (default: 12h)
	TokenKeyPath  string        // Optional: path to token signing key file (ephemeral key if unset)
	DatabaseFile  string        // Optional: path to SQLite database file (default: ./hrmock.db)
	PepperFile    string        // Optional: path to password hashing pepper file (default: ./pepper)
	Seed          string        // Optional: employee seed records (see service.Seed)
	Env           string        // Environment (dev, staging, prod) (default: dev)
	LogLevel      string        // Log level (debug, info, warn, error) (default: info)
	LogFormat     string        // Log format (json, text) (default: json)
	Port          int           // HTTP server port (default: 8080)
	ShutdownGrace time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:        getEnvOrDefault("HRMOCK_ISSUER", "hrmock"),
		TokenTTL:      getEnvDurationOrDefault("HRMOCK_TOKEN_TTL", 12*time.Hour),
		TokenKeyPath:  os.Getenv("HRMOCK_TOKEN_KEY_PATH"),
		DatabaseFile:  getEnvOrDefault("HRMOCK_DATABASE_FILE", "hrmock.db"),
		PepperFile:    getEnvOrDefault("HRMOCK_PEPPER_FILE", "pepper"),
		Seed:          os.Getenv("HRMOCK_SEED"),
		Env:           getEnvOrDefault("ENV", "dev"),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:     getEnvOrDefault("LOG_FORMAT", "json"),
		Port:          getEnvIntOrDefault("PORT", 8080),
		ShutdownGrace: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
