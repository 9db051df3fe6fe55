package internal

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Email providers selectable with EMAIL_PROVIDER.
const (
	EmailProviderSMTP     = "smtp"
	EmailProviderSendGrid = "sendgrid"
)

type Config struct {
	Env         string
	Port        int
	LogLevel    string
	ServiceName string // Attached to every log record
	DatabaseUrl string

	// Email provider: "smtp" (default) or "sendgrid"
	EmailProvider string

	// SMTP Configuration
	SMTPHost     string
	SMTPPort     int
	SMTPSecure   bool // Implicit TLS; port 465 implies it
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	SMTPTimeout  time.Duration

	// SendGrid Configuration
	SendGridAPIKey string

	// Recipient of new-reservation alerts
	AdminEmail string

	// Admin endpoint authentication
	// If both are empty, /admin routes are unprotected (development only)
	AdminUsername string
	AdminPassword string

	// Metrics endpoint authentication
	// If both are empty, the /metrics endpoint will be unprotected (not recommended)
	MetricsUsername string
	MetricsPassword string

	// Browser origins allowed to call the email endpoints
	CORSAllowedOrigins []string

	// Base URL of a remote email service for notify.Client callers
	EmailServiceURL string
}

func NewConfig() (*Config, error) {
	// Load .env file if it exists (ignored in production)
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		ServiceName: getEnv("SERVICE_NAME", "traslado-email"),

		EmailProvider: strings.ToLower(getEnv("EMAIL_PROVIDER", EmailProviderSMTP)),

		// SMTP defaults target Gmail with STARTTLS
		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPSecure:   getEnvBool("SMTP_SECURE", false),
		SMTPUsername: getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASS", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "Traslado"),
		SMTPTimeout:  getEnvDuration("SMTP_TIMEOUT", 10*time.Second),

		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@traslado.app"),
		AdminUsername: getEnv("ADMIN_USERNAME", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		// Metrics authentication
		MetricsUsername: getEnv("METRICS_USERNAME", ""),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),

		EmailServiceURL: getEnv("EMAIL_SERVICE_URL", "http://localhost:8080"),
	}

	// The sender defaults to the authenticated account, as Gmail requires
	cfg.SMTPFrom = getEnv("SMTP_FROM", getEnv("SMTP_USER", "noreply@traslado.app"))

	cfg.CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", ""))

	// Required
	cfg.DatabaseUrl = os.Getenv("DATABASE_URL")
	if cfg.DatabaseUrl == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	// Validate email provider configuration
	switch cfg.EmailProvider {
	case EmailProviderSMTP:
		if cfg.SMTPPort <= 0 || cfg.SMTPPort > 65535 {
			return nil, fmt.Errorf("SMTP_PORT must be between 1 and 65535, got: %d", cfg.SMTPPort)
		}
	case EmailProviderSendGrid:
		if cfg.SendGridAPIKey == "" {
			return nil, fmt.Errorf("SENDGRID_API_KEY is required when EMAIL_PROVIDER is 'sendgrid'")
		}
	default:
		return nil, fmt.Errorf("EMAIL_PROVIDER must be either 'smtp' or 'sendgrid', got: %s", cfg.EmailProvider)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// splitList parses a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
