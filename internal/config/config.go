package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig
	Vendor VendorConfig
	Redis  RedisConfig
	App    AppConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// VendorConfig holds settings for the outbound store/vendor API
type VendorConfig struct {
	// BaseURLTemplate builds the per-tenant API base URL; %s is the tenant
	// subdomain (https://%s.mybrightsites.com)
	BaseURLTemplate string
	APIVersion      string
	Timeout         time.Duration
	CacheTTL        time.Duration
}

// RedisConfig holds the optional Redis cache configuration. An empty Addr
// means the in-process cache is used instead.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Environment     string
	LogLevel        string
	TenantTablePath string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Vendor: VendorConfig{
			BaseURLTemplate: getEnv("VENDOR_API_BASE", "https://%s.mybrightsites.com"),
			APIVersion:      getEnv("VENDOR_API_VERSION", "v2.6.1"),
			Timeout:         getEnvAsDuration("VENDOR_HTTP_TIMEOUT", 30*time.Second),
			CacheTTL:        getEnvAsDuration("VENDOR_CACHE_TTL", 5*time.Minute),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		App: AppConfig{
			Environment:     getEnv("APP_ENV", "development"),
			LogLevel:        getEnv("LOG_LEVEL", "info"),
			TenantTablePath: getEnv("TENANT_TABLE_PATH", ""),
		},
	}
}

// GetServerAddress returns the server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
