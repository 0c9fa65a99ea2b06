package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	App     AppConfig
	Storage StorageConfig
	Email   EmailConfig
	CORS    CORSConfig
}

// AppConfig holds application-level configuration
type AppConfig struct {
	Name    string `env:"APP_NAME" envDefault:"Spring Street Inquiry API"`
	Version string `env:"APP_VERSION" envDefault:"1.0.0"`
	Debug   bool   `env:"DEBUG" envDefault:"false"`
	Port    string `env:"PORT" envDefault:"8000"`
	Host    string `env:"HOST" envDefault:"0.0.0.0"`
}

// StorageConfig selects and configures the storage backend.
// An empty URL selects the in-memory backend.
type StorageConfig struct {
	URL           string `env:"DATABASE_URL"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"inquirydesk"`
}

// EmailConfig holds notification email configuration.
// An empty APIKey disables delivery.
type EmailConfig struct {
	APIKey    string        `env:"SENDGRID_API_KEY"`
	BaseURL   string        `env:"SENDGRID_BASE_URL"`
	FromEmail string        `env:"EMAIL_FROM" envDefault:"noreply@springstreet.in"`
	FromName  string        `env:"EMAIL_FROM_NAME" envDefault:"Spring Street"`
	NotifyTo  string        `env:"EMAIL_NOTIFY_TO" envDefault:"team@springstreet.in"`
	Timeout   time.Duration `env:"EMAIL_TIMEOUT" envDefault:"10s"`
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_HOSTS" envDefault:"*" envSeparator:","`
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

// Load loads configuration from the process environment, reading a .env file first if present
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()
	return parse(env.Options{})
}

// Parse builds a Config from an explicit variable set instead of the process environment.
func Parse(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.Storage.URL = strings.TrimSpace(cfg.Storage.URL)
	cfg.Email.APIKey = strings.TrimSpace(cfg.Email.APIKey)
	cfg.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS", "HEAD"}
	cfg.CORS.AllowedHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	cfg.CORS.MaxAge = 86400

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.App.Port == "" {
		return fmt.Errorf("PORT must be set")
	}
	if cfg.Email.Timeout <= 0 {
		return fmt.Errorf("EMAIL_TIMEOUT must be greater than 0")
	}
	if cfg.Email.Enabled() {
		if cfg.Email.FromEmail == "" {
			return fmt.Errorf("EMAIL_FROM must be set when SENDGRID_API_KEY is set")
		}
		if cfg.Email.NotifyTo == "" {
			return fmt.Errorf("EMAIL_NOTIFY_TO must be set when SENDGRID_API_KEY is set")
		}
	}
	return nil
}

// Enabled reports whether notification delivery should be attempted
func (c *EmailConfig) Enabled() bool {
	return c.APIKey != ""
}

// Durable reports whether a connection string was configured
func (c *StorageConfig) Durable() bool {
	return c.URL != ""
}

// IsMongo checks if the database URL is for MongoDB
func (c *StorageConfig) IsMongo() bool {
	return strings.HasPrefix(c.URL, "mongodb://") || strings.HasPrefix(c.URL, "mongodb+srv://")
}

// IsPostgres checks if the database URL is for PostgreSQL
func (c *StorageConfig) IsPostgres() bool {
	return strings.HasPrefix(c.URL, "postgresql://") || strings.HasPrefix(c.URL, "postgres://")
}

// IsSQLite checks if the database URL is for SQLite
func (c *StorageConfig) IsSQLite() bool {
	return strings.HasPrefix(c.URL, "sqlite://")
}

// GetSQLitePath extracts SQLite database path from URL
// Converts: sqlite:///./inquiries.db to ./inquiries.db
func (c *StorageConfig) GetSQLitePath() string {
	url := c.URL
	if strings.HasPrefix(url, "sqlite:///") {
		return url[len("sqlite:///"):]
	}
	return strings.TrimPrefix(url, "sqlite://")
}

// Scheme returns the URL scheme for logging without credentials
func (c *StorageConfig) Scheme() string {
	if i := strings.Index(c.URL, "://"); i > 0 {
		return c.URL[:i]
	}
	return ""
}
