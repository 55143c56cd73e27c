package app

import (
	"os"
	"path/filepath"
)

type Config struct {
	APIURL    string // Base URL of the HR identity service (default: http://localhost:8080)
	DataDir   string // Directory for the session database and credential vault
	Biometric string // Biometric stub mode: approve, deny, unavailable, unenrolled
	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: warn)
	LogFormat string // Log format (json, text) (default: text)
}

func LoadConfig() Config {
	return Config{
		APIURL:    getEnvOrDefault("BADGE_API_URL", "http://localhost:8080"),
		DataDir:   getEnvOrDefault("BADGE_DATA_DIR", defaultDataDir()),
		Biometric: os.Getenv("BADGE_BIOMETRIC"),
		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "warn"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "text"),
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "idbadge")
	}
	return ".idbadge"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
