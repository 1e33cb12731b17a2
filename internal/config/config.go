package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Advisor  AdvisorConfig
	Cache    CacheConfig
	Drafts   DraftConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience

	// RequireAPIKey guards the draft routes with the shared-key middleware.
	// Enabled automatically when INTERNAL_API_KEY is set.
	RequireAPIKey bool
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// AdvisorConfig holds the content-generation collaborator settings.
// An empty APIKey disables the remote collaborator; the engine then runs
// entirely on its deterministic fallbacks.
type AdvisorConfig struct {
	APIKey string
	APIURL string
	Model  string
}

// CacheConfig holds narrative-cache settings. An empty RedisAddr selects
// the in-memory cache.
type CacheConfig struct {
	RedisAddr string
	TTL       time.Duration
}

// DraftConfig holds draft persistence settings. EncryptionKey is a
// base64-encoded 32-byte fernet key protecting personal data at rest;
// empty disables encryption (local development only).
type DraftConfig struct {
	EncryptionKey   string
	RetentionDays   int
	CleanupSchedule string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port:          getEnv("SERVER_PORT", "5001"),
			Host:          getEnv("SERVER_HOST", "localhost"),
			RequireAPIKey: getEnv("INTERNAL_API_KEY", "") != "",
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/wealthgenie.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Advisor: AdvisorConfig{
			APIKey: getEnv("ADVISOR_API_KEY", ""),
			APIURL: getEnv("ADVISOR_API_URL", "https://api.openai.com/v1/chat/completions"),
			Model:  getEnv("ADVISOR_MODEL", "gpt-4o-mini"),
		},
		Cache: CacheConfig{
			RedisAddr: getEnv("REDIS_ADDR", ""),
			TTL:       time.Duration(getEnvInt("CACHE_TTL_MINUTES", 60)) * time.Minute,
		},
		Drafts: DraftConfig{
			EncryptionKey:   getEnv("DRAFT_ENCRYPTION_KEY", ""),
			RetentionDays:   getEnvInt("DRAFT_RETENTION_DAYS", 30),
			CleanupSchedule: getEnv("DRAFT_CLEANUP_SCHEDULE", "0 3 * * *"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
