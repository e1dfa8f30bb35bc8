package service

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Environment string
	APIBaseURL  string
	DBPath      string

	HTTP struct {
		Timeout time.Duration
	}

	Banner struct {
		VisibleFor time.Duration
	}
}

func LoadConfig() (*Config, error) {
	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:8000"),
		DBPath:      getEnv("DB_PATH", "./db/activities-admin.db"),
	}

	config.HTTP.Timeout = getDurationEnv("API_TIMEOUT_SECONDS", 15*time.Second)
	config.Banner.VisibleFor = getDurationEnv("MESSAGE_SECONDS", 5*time.Second)

	return config, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}
