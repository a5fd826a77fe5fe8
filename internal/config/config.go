package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	AppPort        string
	TrustedProxies []string

	// DbDriver selects the sqlx driver: mysql (default), postgres, sqlite3.
	DbDriver   string
	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string
	DbParams   string
	// DbDSN overrides the assembled DSN when set (postgres URLs, sqlite paths).
	DbDSN string

	JwtSecret string
	JwtExpiry time.Duration

	SmtpHost     string
	SmtpPort     string
	SmtpUser     string
	SmtpPassword string
	SmtpFrom     string

	ClientURL string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	UserDeletePolicy string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		AppPort:        getEnv("APP_PORT", "8080"),
		TrustedProxies: parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),

		DbDriver:   getEnv("DB_DRIVER", "mysql"),
		DbHost:     getEnv("MYSQL_HOST", "db"),
		DbPort:     getEnv("MYSQL_PORT", "3306"),
		DbUser:     getEnv("MYSQL_USER", "taskmanager"),
		DbPassword: getEnv("MYSQL_PASSWORD", "taskmanager"),
		DbName:     getEnv("MYSQL_DATABASE", "taskmanager"),
		DbParams:   getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
		DbDSN:      os.Getenv("DB_DSN"),

		JwtSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),
		JwtExpiry: getDuration("JWT_EXPIRY", 168*time.Hour),

		SmtpHost:     os.Getenv("SMTP_HOST"),
		SmtpPort:     getEnv("SMTP_PORT", "587"),
		SmtpUser:     os.Getenv("SMTP_USER"),
		SmtpPassword: os.Getenv("SMTP_PASSWORD"),
		SmtpFrom:     getEnv("SMTP_FROM", "no-reply@localhost"),

		ClientURL: getEnv("CLIENT_URL", "http://localhost:3000"),

		RateLimitRequests: getInt("RATE_LIMIT_REQUESTS", 30),
		RateLimitWindow:   getDuration("RATE_LIMIT_WINDOW", time.Minute),

		UserDeletePolicy: getEnv("USER_DELETE_POLICY", "delete"),
	}
}

// Production reports whether error detail should be withheld from clients.
func (c *Config) Production() bool {
	return c.AppEnv == "production"
}

// SmtpConfigured: forgot-password falls back to the dev-mode token response
// when no mail transport is configured.
func (c *Config) SmtpConfigured() bool {
	return c.SmtpHost != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
