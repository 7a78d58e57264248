package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	DatabaseURL         string
	Port                string `validate:"required,numeric"`
	GoEnv               string `validate:"oneof=development test production"`
	StaffUsername       string `validate:"required"`
	StaffPassword       string `validate:"required"`
	CORSAllowedOrigins  []string
	WebhookURL          string        `validate:"omitempty,url"`
	NotificationQueue   int           `validate:"gt=0"`
	NotificationTimeout time.Duration `validate:"gt=0"`
	AWSRegion           string
	AWSS3Bucket         string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	LogLevel            string `validate:"oneof=debug info warn error"`
}

var appConfig *Config

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	// Determine which environment file to load
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Try to load environment-specific file first
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		// If environment-specific file doesn't exist, try .env
		if err := godotenv.Load(); err != nil {
			log.Printf("No .env file found, using system environment variables")
		}
	} else {
		log.Printf("Loaded configuration from %s", envFile)
	}

	queueSize, err := strconv.Atoi(getEnv("NOTIFICATION_QUEUE_SIZE", "100"))
	if err != nil {
		return nil, fmt.Errorf("NOTIFICATION_QUEUE_SIZE must be an integer: %w", err)
	}

	timeout, err := time.ParseDuration(getEnv("NOTIFICATION_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("NOTIFICATION_TIMEOUT must be a duration: %w", err)
	}

	config := &Config{
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		Port:                getEnv("PORT", "3000"),
		GoEnv:               getEnv("GO_ENV", "development"),
		StaffUsername:       getEnv("STAFF_USERNAME", "admin"),
		StaffPassword:       getEnv("STAFF_PASSWORD", "admin123"),
		CORSAllowedOrigins:  splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		WebhookURL:          getEnv("NOTIFICATION_WEBHOOK_URL", ""),
		NotificationQueue:   queueSize,
		NotificationTimeout: timeout,
		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSS3Bucket:         getEnv("AWS_S3_BUCKET", ""),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfig = config
	return config, nil
}

// Validate checks that all configuration values are well formed
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// GinMode picks gin's mode. Production runs in release mode unless LOG_LEVEL
// is debug; the test environment uses test mode.
func (c *Config) GinMode() string {
	switch {
	case c.LogLevel == "debug":
		return gin.DebugMode
	case c.IsProduction():
		return gin.ReleaseMode
	case c.IsTest():
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

// UsesInMemoryDatabase returns true when no DATABASE_URL is configured
func (c *Config) UsesInMemoryDatabase() bool {
	return c.DatabaseURL == ""
}

// WebhookEnabled returns true when notifications should be POSTed to a webhook
func (c *Config) WebhookEnabled() bool {
	return c.WebhookURL != ""
}

// ArchiveEnabled returns true when notifications should be archived to S3
func (c *Config) ArchiveEnabled() bool {
	return c.AWSS3Bucket != ""
}

// GetConfig returns the most recently loaded configuration
func GetConfig() *Config {
	return appConfig
}

// SetConfig sets the configuration instance (primarily for testing)
func SetConfig(cfg *Config) {
	appConfig = cfg
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitList splits a comma separated value, dropping empty entries
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
