package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DB       DBConfig
	Server   ServerConfig
	Upstream UpstreamConfig
}

// DBType represents database type
type DBType string

const (
	DBTypePostgreSQL DBType = "postgres"
	DBTypeMemory     DBType = "memory"
)

// DBConfig holds database configuration
type DBConfig struct {
	Type     DBType
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	// Path points the embedded SQLite database at a file instead of memory
	Path string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
}

// UpstreamConfig holds settings for the external geocoding and weather services
type UpstreamConfig struct {
	GeocodeBaseURL  string
	ForecastBaseURL string
	ArchiveBaseURL  string
	UserAgent       string
	GeocodeTimeout  time.Duration
	ForecastTimeout time.Duration
	ArchiveTimeout  time.Duration
	YouTubeAPIKey   string
}

// DSN returns the database connection string
func (c DBConfig) DSN() string {
	if c.Type == DBTypeMemory {
		if c.Path != "" {
			// SQLite on disk
			return fmt.Sprintf("file:%s?cache=shared", c.Path)
		}
		// SQLite in-memory database
		if c.Name != "" && c.Name != "weathertrack" {
			return fmt.Sprintf("file:%s?mode=memory&cache=shared", c.Name)
		}
		return "file::memory:?cache=shared"
	}
	// PostgreSQL connection string
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// IsMemory returns true if using the embedded SQLite database
func (c DBConfig) IsMemory() bool {
	return c.Type == DBTypeMemory
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbType := DBType(getEnv("DB_TYPE", "memory"))
	if dbType != DBTypePostgreSQL && dbType != DBTypeMemory {
		dbType = DBTypeMemory
	}

	config := &Config{
		DB: DBConfig{
			Type:     dbType,
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "weathertrack"),
			Password: getEnv("DB_PASSWORD", "weathertrack_password"),
			Name:     getEnv("DB_NAME", "weathertrack"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DB_PATH", ""),
		},
		Server: ServerConfig{
			Port: getEnv("APP_PORT", "3001"),
		},
		Upstream: UpstreamConfig{
			GeocodeBaseURL:  getEnv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
			ForecastBaseURL: getEnv("FORECAST_BASE_URL", "https://api.open-meteo.com/v1/forecast"),
			ArchiveBaseURL:  getEnv("ARCHIVE_BASE_URL", "https://archive-api.open-meteo.com/v1/era5"),
			UserAgent:       getEnv("UPSTREAM_USER_AGENT", "WeatherTrack/1.0 (contact: example@example.com)"),
			GeocodeTimeout:  getEnvAsDuration("GEOCODE_TIMEOUT", 12*time.Second),
			ForecastTimeout: getEnvAsDuration("FORECAST_TIMEOUT", 15*time.Second),
			ArchiveTimeout:  getEnvAsDuration("ARCHIVE_TIMEOUT", 20*time.Second),
			YouTubeAPIKey:   getEnv("YOUTUBE_API_KEY", ""),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
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
