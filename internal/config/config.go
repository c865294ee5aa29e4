// Package config centralises configuration parsing for the workout tracker.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultDBPath is used when neither DB_PATH nor a flag names a database file.
const DefaultDBPath = "workouts.db"

// Config captures runtime configuration values for the server.
type Config struct {
	Port                   int
	Bind                   string
	DBPath                 string
	TemplateDir            string
	StaticDir              string
	SecureCookie           bool
	LogLevel               string
	LogFile                string // Empty means next to the database file.
	SessionCleanupSchedule string // Cron spec for expired session cleanup.
	AdminUser              string
	AdminPassword          string
}

// LoadDotEnv loads variables from the given .env files (default ".env") without
// overriding values already present in the environment. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// Load reads environment variables into Config, applying defaults for local use.
func Load() Config {
	return Config{
		Port:                   getIntEnv("PORT", 8080),
		Bind:                   getEnv("BIND", ""),
		DBPath:                 getEnv("DB_PATH", DefaultDBPath),
		TemplateDir:            getEnv("TEMPLATE_DIR", "web/templates"),
		StaticDir:              getEnv("STATIC_DIR", "web/static"),
		SecureCookie:           getBoolEnv("SECURE_COOKIE", false),
		LogLevel:               strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFile:                getEnv("LOG_FILE", ""),
		SessionCleanupSchedule: getEnv("SESSION_CLEANUP_SCHEDULE", "@hourly"),
		AdminUser:              strings.TrimSpace(getEnv("ADMIN_USER", "")),
		AdminPassword:          getEnv("ADMIN_PASSWORD", ""),
	}
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return c.Bind + ":" + strconv.Itoa(c.Port)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
