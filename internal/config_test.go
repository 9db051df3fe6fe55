package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEmailEnv blanks every variable NewConfig reads so a developer's
// .env or shell does not leak into the test.
func clearEmailEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV", "PORT", "LOG_LEVEL", "SERVICE_NAME", "DATABASE_URL", "EMAIL_PROVIDER",
		"SMTP_HOST", "SMTP_PORT", "SMTP_SECURE", "SMTP_USER", "SMTP_PASS",
		"SMTP_FROM", "SMTP_FROM_NAME", "SMTP_TIMEOUT", "SENDGRID_API_KEY",
		"ADMIN_EMAIL", "ADMIN_USERNAME", "ADMIN_PASSWORD",
		"METRICS_USERNAME", "METRICS_PASSWORD", "CORS_ALLOWED_ORIGINS", "EMAIL_SERVICE_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	clearEmailEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/traslado")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "traslado-email", cfg.ServiceName)
	assert.Equal(t, EmailProviderSMTP, cfg.EmailProvider)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.False(t, cfg.SMTPSecure)
	assert.Equal(t, "noreply@traslado.app", cfg.SMTPFrom)
	assert.Equal(t, "Traslado", cfg.SMTPFromName)
	assert.Equal(t, 10*time.Second, cfg.SMTPTimeout)
	assert.Equal(t, "admin@traslado.app", cfg.AdminEmail)
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestNewConfig_FromDefaultsToSMTPUser(t *testing.T) {
	clearEmailEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/traslado")
	t.Setenv("SMTP_USER", "reservas@gmail.com")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "reservas@gmail.com", cfg.SMTPFrom)

	t.Setenv("SMTP_FROM", "no-reply@traslado.app")
	cfg, err = NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "no-reply@traslado.app", cfg.SMTPFrom)
}

func TestNewConfig_Overrides(t *testing.T) {
	clearEmailEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/traslado")
	t.Setenv("SMTP_HOST", "smtp.mailgun.org")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_SECURE", "true")
	t.Setenv("SMTP_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.traslado.app, ,http://localhost:5173")
	t.Setenv("SERVICE_NAME", "traslado-email-staging")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "smtp.mailgun.org", cfg.SMTPHost)
	assert.Equal(t, 465, cfg.SMTPPort)
	assert.True(t, cfg.SMTPSecure)
	assert.Equal(t, 3*time.Second, cfg.SMTPTimeout)
	assert.Equal(t, []string{"https://app.traslado.app", "http://localhost:5173"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "traslado-email-staging", cfg.ServiceName)
}

func TestNewConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing database url",
			env:     map[string]string{},
			wantErr: "DATABASE_URL is required",
		},
		{
			name:    "sendgrid without key",
			env:     map[string]string{"DATABASE_URL": "postgres://x", "EMAIL_PROVIDER": "sendgrid"},
			wantErr: "SENDGRID_API_KEY is required",
		},
		{
			name:    "unknown provider",
			env:     map[string]string{"DATABASE_URL": "postgres://x", "EMAIL_PROVIDER": "pigeon"},
			wantErr: "EMAIL_PROVIDER must be either",
		},
		{
			name:    "bad port",
			env:     map[string]string{"DATABASE_URL": "postgres://x", "SMTP_PORT": "70000"},
			wantErr: "SMTP_PORT must be between",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEmailEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := NewConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewConfig_SendGrid(t *testing.T) {
	clearEmailEnv(t)
	t.Setenv("DATABASE_URL", "postgres://x")
	t.Setenv("EMAIL_PROVIDER", "SendGrid")
	t.Setenv("SENDGRID_API_KEY", "SG.key")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, EmailProviderSendGrid, cfg.EmailProvider)
	assert.Equal(t, "SG.key", cfg.SendGridAPIKey)
}
