// Package config provides configuration management for the application.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendLocal = "local"
	BackendSQL   = "sql"
)

// Config holds all configuration values for the application.
type Config struct {
	// HTTP
	Port           string
	AllowedOrigins []string
	WebDir         string

	// Storage
	StorageBackend string
	LocalDataDir   string

	// Database
	DatabaseURLOverride string
	DBHost              string
	DBPort              int
	DBName              string
	DBUser              string
	DBPassword          string

	// Scoring; empty values select the weighted profile and loose validation.
	ScoringProfile string
	ValidationMode string

	// AWS
	AWSRegion      string
	S3Bucket       string
	SESSenderEmail string
	DashboardURL   string

	// Application
	Stage    string
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	_ = godotenv.Load()

	cfg := &Config{
		// HTTP
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"*"}),
		WebDir:         getEnv("WEB_DIR", "./web"),

		// Storage
		StorageBackend: storageBackend(),
		LocalDataDir:   getEnv("LOCAL_DATA_DIR", "./local-data"),

		// Database
		DatabaseURLOverride: getEnv("DATABASE_URL", ""),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnvInt("DB_PORT", 5432),
		DBName:              getEnv("DB_NAME", "nevernoshow"),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          getEnv("DB_PASSWORD", ""),

		// Scoring
		ScoringProfile: strings.ToLower(getEnv("SCORING_PROFILE", "")),
		ValidationMode: strings.ToLower(getEnv("VALIDATION_MODE", "")),

		// AWS
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		S3Bucket:       getEnv("S3_BUCKET", ""),
		SESSenderEmail: getEnv("SES_SENDER_EMAIL", ""),
		DashboardURL:   getEnv("DASHBOARD_URL", ""),

		// Application
		Stage:    getEnv("STAGE", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// DatabaseURL returns the PostgreSQL connection string.
func (c *Config) DatabaseURL() string {
	if c.DatabaseURLOverride != "" {
		return c.DatabaseURLOverride
	}
	sslMode := "require"
	if c.DBHost == "localhost" || c.DBHost == "127.0.0.1" {
		sslMode = "disable" // Disable SSL for local development
	}
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + strconv.Itoa(c.DBPort) + "/" + c.DBName + "?sslmode=" + sslMode
}

// UseLocalStorage reports whether the JSON file backend is selected.
func (c *Config) UseLocalStorage() bool {
	return c.StorageBackend == BackendLocal
}

// storageBackend resolves STORAGE_BACKEND, falling back to the older USE_LOCAL_DB switch.
func storageBackend() string {
	if backend := strings.ToLower(getEnv("STORAGE_BACKEND", "")); backend != "" {
		return backend
	}
	if getEnvBool("USE_LOCAL_DB", false) {
		return BackendLocal
	}
	return BackendSQL
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an environment variable as int or returns a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated variable, dropping empty entries.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
