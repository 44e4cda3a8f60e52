package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port"`
	Env             string        `json:"env"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	HTTPTimeout     time.Duration `json:"http_timeout"`

	// AI Configuration
	AIApiKey      string  `json:"ai_api_key"`
	AIModel       string  `json:"ai_model"`
	AITimeout     int     `json:"ai_timeout"`
	AITemperature float64 `json:"ai_temperature"`

	// Edition archive persistence. Backend is one of "file", "redis", "s3".
	ArchiveBackend string `json:"archive_backend"`
	ArchivePath    string `json:"archive_path"`
	ArchiveKey     string `json:"archive_key"`

	// Redis configuration (archive_backend=redis)
	RedisURL string `json:"redis_url"`

	// CloudFlare R2 / S3 configuration (archive_backend=s3)
	R2Endpoint  string `json:"r2_endpoint"`
	R2AccessKey string `json:"r2_access_key"`
	R2SecretKey string `json:"r2_secret_key"`
	R2Bucket    string `json:"r2_bucket"`

	// Logging
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`

	// Security
	AdminAPIKey string `json:"admin_api_key"`
}

// Load loads configuration from environment variables and validates it
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{
		// Server configuration
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),

		// AI Configuration
		AIApiKey:      getEnv("AI_API_KEY", ""),
		AIModel:       getEnv("AI_MODEL", "gemini-3-flash-preview"),
		AITimeout:     getEnvAsInt("AI_TIMEOUT", 90),
		AITemperature: getEnvAsFloat("AI_TEMPERATURE", 0.7),

		// Archive persistence
		ArchiveBackend: getEnv("ARCHIVE_BACKEND", "file"),
		ArchivePath:    getEnv("ARCHIVE_PATH", "./data/editions.json"),
		ArchiveKey:     getEnv("ARCHIVE_KEY", "witty-weekly:editions"),

		// Redis configuration
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		// CloudFlare R2 Configuration
		R2Endpoint:  getEnv("R2_ENDPOINT", ""),
		R2AccessKey: getEnv("R2_ACCESS_KEY", ""),
		R2SecretKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:    getEnv("R2_BUCKET", "newsletters"),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),

		// Security
		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	return cfg
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.ArchiveBackend {
	case "file", "redis", "s3":
	default:
		return fmt.Errorf("unknown archive backend %q", c.ArchiveBackend)
	}
	if c.ArchiveBackend == "s3" && (c.R2Endpoint == "" || c.R2AccessKey == "" || c.R2SecretKey == "") {
		return fmt.Errorf("archive backend s3 requires R2_ENDPOINT, R2_ACCESS_KEY and R2_SECRET_ACCESS_KEY")
	}
	// A missing AI key is deliberately not fatal here: the server can still
	// browse the archive, and generation fails fast with a clear signal.
	return nil
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsFloat(name string, defaultVal float64) float64 {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
