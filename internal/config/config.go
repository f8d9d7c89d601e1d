package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Catalogue sources understood by CatalogConfig.Source.
const (
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
	SourceFile     = "file"
	SourceS3       = "s3"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Catalog  CatalogConfig
	Database DatabaseConfig
	S3       S3Config
	Display  DisplayConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// CatalogConfig selects and configures the remote product catalogue.
type CatalogConfig struct {
	Source         string
	BaseURL        string
	TimeoutSeconds int
	SnapshotPath   string // file path or S3 key for the file/s3 sources
	NodeID         int64  // snowflake node for locally authored product IDs
}

// DatabaseConfig holds database-related configuration for the postgres source.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// S3Config holds AWS S3 configuration for the s3 source.
type S3Config struct {
	Bucket string
	Region string
}

// DisplayConfig holds the presentation currency settings.
type DisplayConfig struct {
	Rate   float64
	Symbol string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := fromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadHTTPCatalog loads configuration for tools that always read the HTTP
// catalogue, whatever CATALOG_SOURCE the server is configured with.
func LoadHTTPCatalog() (*Config, error) {
	cfg := fromEnv()
	cfg.Catalog.Source = SourceHTTP

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func fromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Catalog: CatalogConfig{
			Source:         getEnv("CATALOG_SOURCE", SourceHTTP),
			BaseURL:        getEnv("CATALOG_BASE_URL", "https://fakestoreapi.com"),
			TimeoutSeconds: getEnvAsInt("CATALOG_TIMEOUT_SECONDS", 10),
			SnapshotPath:   getEnv("CATALOG_SNAPSHOT_PATH", ""),
			NodeID:         int64(getEnvAsInt("CATALOG_NODE_ID", 1)),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "shopease"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 10),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 1),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		S3: S3Config{
			Bucket: getEnv("S3_BUCKET", ""),
			Region: getEnv("S3_REGION", "us-east-1"),
		},
		Display: DisplayConfig{
			Rate:   getEnvAsFloat("DISPLAY_RATE", 80),
			Symbol: getEnv("DISPLAY_SYMBOL", "₹"),
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Catalog.TimeoutSeconds < 1 {
		return fmt.Errorf("catalog timeout must be at least 1 second")
	}

	if c.Catalog.NodeID < 0 || c.Catalog.NodeID > 1023 {
		return fmt.Errorf("invalid catalog node id: %d (must be between 0 and 1023)", c.Catalog.NodeID)
	}

	switch c.Catalog.Source {
	case SourceHTTP:
		u, err := url.Parse(c.Catalog.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid catalog base URL: %q", c.Catalog.BaseURL)
		}
	case SourcePostgres:
		if err := c.Database.validate(); err != nil {
			return err
		}
	case SourceFile:
		if c.Catalog.SnapshotPath == "" {
			return fmt.Errorf("catalog snapshot path is required for the file source")
		}
	case SourceS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required for the s3 source")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required for the s3 source")
		}
		if c.Catalog.SnapshotPath == "" {
			return fmt.Errorf("catalog snapshot path is required for the s3 source")
		}
	default:
		return fmt.Errorf("invalid catalog source: %s (must be http, postgres, file, or s3)", c.Catalog.Source)
	}

	if c.Display.Rate <= 0 {
		return fmt.Errorf("display rate must be positive")
	}

	return nil
}

func (c *DatabaseConfig) validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// Timeout returns the catalogue request timeout.
func (c *CatalogConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat retrieves an environment variable as a float or returns a default value.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
