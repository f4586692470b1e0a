package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the site service.
//
// The backend fields (URL, anon key, JWT secret) are deliberately optional:
// when they are missing every data-dependent page degrades to its fallback
// dataset instead of refusing to start.
type Config struct {
	ServerPort int

	// Hosted backend (row API + auth API).
	BackendURL       string
	BackendAnonKey   string
	BackendJWTSecret string

	// S3-compatible blob store for uploaded attachments and avatars.
	StorageEndpoint        string
	StorageAccessKeyID     string
	StorageSecretAccessKey string
	StorageBucket          string
	StoragePublicBaseURL   string

	// Origins allowed to call the API from a browser.
	AllowedOrigins []string
}

// Load reads configuration from environment variables, optionally seeded from
// a local .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	origins := []string{"*"}
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
	}

	cfg := &Config{
		ServerPort:             port,
		BackendURL:             strings.TrimRight(os.Getenv("BACKEND_URL"), "/"),
		BackendAnonKey:         os.Getenv("BACKEND_ANON_KEY"),
		BackendJWTSecret:       os.Getenv("BACKEND_JWT_SECRET"),
		StorageEndpoint:        os.Getenv("STORAGE_ENDPOINT"),
		StorageAccessKeyID:     os.Getenv("STORAGE_ACCESS_KEY_ID"),
		StorageSecretAccessKey: os.Getenv("STORAGE_SECRET_ACCESS_KEY"),
		StorageBucket:          os.Getenv("STORAGE_BUCKET"),
		StoragePublicBaseURL:   os.Getenv("STORAGE_PUBLIC_BASE_URL"),
		AllowedOrigins:         origins,
	}

	return cfg, nil
}

// BackendConfigured reports whether the hosted backend credentials are
// present. Without them the service serves demo content only.
func (c *Config) BackendConfigured() bool {
	return c.BackendURL != "" && c.BackendAnonKey != ""
}

// StorageConfigured reports whether the blob store credentials are present.
func (c *Config) StorageConfigured() bool {
	return c.StorageEndpoint != "" && c.StorageAccessKeyID != "" &&
		c.StorageSecretAccessKey != "" && c.StorageBucket != ""
}
