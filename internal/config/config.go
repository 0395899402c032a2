package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Search   SearchConfig   `yaml:"search"`
	Auth     AuthConfig     `yaml:"auth"`
	Leads    LeadsConfig    `yaml:"leads"`
	Cleanup  CleanupConfig  `yaml:"cleanup"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         int      `yaml:"port"`
	AllowOrigins []string `yaml:"allow_origins"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Type     string         `yaml:"type"`
	Postgres PostgresConfig `yaml:"postgres"`
	MySQL    MySQLConfig    `yaml:"mysql"`
}

// PostgresConfig contains PostgreSQL connection settings
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// MySQLConfig contains MySQL connection settings
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// StorageConfig contains object storage (S3-compatible) settings
type StorageConfig struct {
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	// Endpoint overrides the AWS endpoint for S3-compatible providers.
	Endpoint string `yaml:"endpoint"`
	// PublicBaseURL is the prefix public object URLs are derived from,
	// e.g. https://cdn.example.com/property-images
	PublicBaseURL string `yaml:"public_base_url"`
}

// SearchConfig contains search engine settings
type SearchConfig struct {
	Meilisearch MeilisearchConfig `yaml:"meilisearch"`
}

// MeilisearchConfig contains Meilisearch connection settings
type MeilisearchConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	APIKey  string `yaml:"api_key"`
}

// AuthConfig contains admin session settings
type AuthConfig struct {
	JWTSecret       string `yaml:"jwt_secret"`
	SessionTTLHours int    `yaml:"session_ttl_hours"`
	CookieName      string `yaml:"cookie_name"`
	CookieSecure    bool   `yaml:"cookie_secure"`
}

// LeadsConfig contains public lead-capture settings
type LeadsConfig struct {
	RateLimitEnabled  bool `yaml:"rate_limit_enabled"`
	RequestsPerMinute int  `yaml:"requests_per_minute"`
	RequestsPerHour   int  `yaml:"requests_per_hour"`
}

// CleanupConfig contains storage janitor settings
type CleanupConfig struct {
	Enabled       bool   `yaml:"enabled"`
	DailyRunTime  string `yaml:"daily_run_time"`
	RetentionHrs  int    `yaml:"retention_hours"`
	MaxDeletions  int    `yaml:"max_deletions"`
	DryRun        bool   `yaml:"dry_run"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8084,
			AllowOrigins: []string{"http://localhost:3000"},
		},
		Database: DatabaseConfig{
			Type: "postgres",
			Postgres: PostgresConfig{
				Host:    "localhost",
				Port:    5432,
				SSLMode: "disable",
			},
			MySQL: MySQLConfig{
				Host: "localhost",
				Port: 3306,
			},
		},
		Storage: StorageConfig{
			Region: "us-east-1",
			Bucket: "property-images",
		},
		Auth: AuthConfig{
			SessionTTLHours: 12,
			CookieName:      "portal_session",
		},
		Leads: LeadsConfig{
			RateLimitEnabled:  true,
			RequestsPerMinute: 5,
			RequestsPerHour:   30,
		},
		Cleanup: CleanupConfig{
			Enabled:      false,
			DailyRunTime: "03:00",
			RetentionHrs: 24,
			MaxDeletions: 500,
			DryRun:       true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from a YAML file, starting from the
// defaults. A missing file is not an error; env vars still apply.
func LoadConfig(filepath string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		config.applyEnv()
		return config, nil
	}

	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnv()
	return config, nil
}

// applyEnv overrides secrets and connection details from the
// environment so they can stay out of the config file.
func (c *Config) applyEnv() {
	setString(&c.Database.Postgres.Host, "DB_HOST")
	setString(&c.Database.Postgres.User, "DB_USER")
	setString(&c.Database.Postgres.Password, "DB_PASSWORD")
	setString(&c.Database.Postgres.Database, "DB_NAME")
	setString(&c.Database.MySQL.Host, "DB_HOST")
	setString(&c.Database.MySQL.User, "DB_USER")
	setString(&c.Database.MySQL.Password, "DB_PASSWORD")
	setString(&c.Database.MySQL.Database, "DB_NAME")
	setString(&c.Database.Type, "DB_TYPE")

	setString(&c.Storage.AccessKeyID, "STORAGE_ACCESS_KEY_ID")
	setString(&c.Storage.SecretAccessKey, "STORAGE_SECRET_ACCESS_KEY")
	setString(&c.Storage.Endpoint, "STORAGE_ENDPOINT")
	setString(&c.Storage.Bucket, "STORAGE_BUCKET")
	setString(&c.Storage.PublicBaseURL, "STORAGE_PUBLIC_BASE_URL")

	setString(&c.Search.Meilisearch.Host, "MEILISEARCH_HOST")
	setString(&c.Search.Meilisearch.APIKey, "MEILISEARCH_KEY")

	setString(&c.Auth.JWTSecret, "JWT_SECRET")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// SessionTTL returns the admin session lifetime as a duration.
func (a *AuthConfig) SessionTTL() time.Duration {
	if a.SessionTTLHours <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(a.SessionTTLHours) * time.Hour
}

// Retention returns the janitor retention window as a duration.
func (c *CleanupConfig) Retention() time.Duration {
	if c.RetentionHrs <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.RetentionHrs) * time.Hour
}
