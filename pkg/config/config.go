package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	DatabaseURL         string
	JWTSecret           string
	GoogleClientID      string
	GoogleClientSecret  string
	GmailAccessToken    string
	GmailRefreshToken   string
	RefreshInterval     time.Duration
	SnoozeSweepInterval time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	refreshInterval := 60 * time.Second
	if v := os.Getenv("BOARD_REFRESH_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			refreshInterval = parsed
		}
	}

	sweepInterval := time.Minute
	if v := os.Getenv("SNOOZE_SWEEP_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			sweepInterval = parsed
		}
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         getEnv("DATABASE_URL", "host=localhost user=mailboard password=mailboard dbname=mailboard port=5432 sslmode=disable"),
		JWTSecret:           getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		GoogleClientID:      getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:  getEnv("GOOGLE_CLIENT_SECRET", ""),
		GmailAccessToken:    getEnv("GMAIL_ACCESS_TOKEN", ""),
		GmailRefreshToken:   getEnv("GMAIL_REFRESH_TOKEN", ""),
		RefreshInterval:     refreshInterval,
		SnoozeSweepInterval: sweepInterval,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
