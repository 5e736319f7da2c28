// Package config loads process-wide settings from the environment
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is built once at startup and passed to the components that need it
type Config struct {
	TelegramToken string
	AdminID       int64 // 0 disables admin commands
	MapURL        string

	Weather struct {
		APIKey  string
		BaseURL string
		Lang    string
		Timeout time.Duration
	}

	OpenAI struct {
		APIKey string
		Model  string
	}

	Journal struct {
		DBPath          string
		Retention       time.Duration
		JanitorSchedule string
	}
}

// Load reads .env (if present) and the environment.
// Only malformed values are reported here; each binary checks what it requires.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to read .env file: %v", err)
	}

	c := &Config{}
	c.TelegramToken = getEnv("TELEGRAM_TOKEN", "")
	c.MapURL = getEnv("MAP_URL", "https://fishing-bot.vercel.app")

	adminID, err := getEnvInt64("ADMIN_ID", 0)
	if err != nil {
		return nil, err
	}
	c.AdminID = adminID

	c.Weather.APIKey = getEnv("WEATHERAPI_KEY", "")
	c.Weather.BaseURL = getEnv("WEATHERAPI_URL", "https://api.weatherapi.com/v1")
	c.Weather.Lang = getEnv("WEATHERAPI_LANG", "ru")
	timeoutSeconds, err := getEnvInt64("WEATHER_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	if timeoutSeconds <= 0 {
		return nil, fmt.Errorf("WEATHER_TIMEOUT_SECONDS must be positive, got %d", timeoutSeconds)
	}
	c.Weather.Timeout = time.Duration(timeoutSeconds) * time.Second

	c.OpenAI.APIKey = getEnv("OPENAI_API_KEY", "")
	c.OpenAI.Model = getEnv("OPENAI_MODEL", "gpt-4o")

	c.Journal.DBPath = getEnv("DB_PATH", "")
	retentionDays, err := getEnvInt64("JOURNAL_RETENTION_DAYS", 30)
	if err != nil {
		return nil, err
	}
	if retentionDays <= 0 {
		return nil, fmt.Errorf("JOURNAL_RETENTION_DAYS must be positive, got %d", retentionDays)
	}
	c.Journal.Retention = time.Duration(retentionDays) * 24 * time.Hour
	c.Journal.JanitorSchedule = getEnv("JANITOR_SCHEDULE", "0 3 * * *")

	return c, nil
}

// IsAdmin reports whether the Telegram user is the configured administrator
func (c *Config) IsAdmin(userID int64) bool {
	return c.AdminID != 0 && c.AdminID == userID
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt64(key string, def int64) (int64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q: %w", key, v, err)
	}
	return i, nil
}
