package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.False(t, cfg.IsProduction())
	require.Equal(t, "smtp.gmail.com", cfg.Mail.Host)
	require.Equal(t, 587, cfg.Mail.Port)
	require.False(t, cfg.Mail.Secure)
	require.Equal(t, "noreply@greanworld.com", cfg.Mail.From)
	require.Equal(t, 30*time.Second, cfg.Mail.Timeout)
	require.Equal(t, "info@greanworld.com", cfg.Contact.OperatorInbox)
	require.Equal(t, "[GREAN WORLD Contact]", cfg.Contact.SubjectPrefix)
	require.Equal(t, []string{"(+251) 913 330000", "(+251) 910 212989"}, cfg.Contact.Company.Phones)
	require.Equal(t, 5, cfg.ContactRateLimit.Max)
	require.Equal(t, time.Minute, cfg.ContactRateLimit.Window)
	require.False(t, cfg.Mail.HasCredentials())
	require.Empty(t, cfg.ProxyHeader)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "Production")
	t.Setenv("APP_PORT", ":9000")
	t.Setenv("EMAIL_HOST", "smtp.example.com")
	t.Setenv("EMAIL_PORT", "465")
	t.Setenv("EMAIL_SECURE", "true")
	t.Setenv("EMAIL_USER", "mailer@example.com")
	t.Setenv("EMAIL_PASS", "s3cret")
	t.Setenv("EMAIL_FROM", "web@example.com")
	t.Setenv("EMAIL_TO", "sales@example.com")
	t.Setenv("EMAIL_SUBJECT_PREFIX", "[Web]")
	t.Setenv("EMAIL_TIMEOUT", "5s")
	t.Setenv("CONTACT_RATE_LIMIT_MAX", "20")
	t.Setenv("CONTACT_RATE_LIMIT_WINDOW", "10m")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("APP_PROXY_HEADER", "X-Forwarded-For")

	cfg, err := Load()
	require.NoError(t, err)

	require.True(t, cfg.IsProduction())
	require.Equal(t, ":9000", cfg.HTTPAddress())
	require.Equal(t, "smtp.example.com", cfg.Mail.Host)
	require.Equal(t, 465, cfg.Mail.Port)
	require.True(t, cfg.Mail.Secure)
	require.True(t, cfg.Mail.HasCredentials())
	require.Equal(t, "web@example.com", cfg.Mail.From)
	require.Equal(t, "sales@example.com", cfg.Contact.OperatorInbox)
	require.Equal(t, "[Web]", cfg.Contact.SubjectPrefix)
	require.Equal(t, 5*time.Second, cfg.Mail.Timeout)
	require.Equal(t, 20, cfg.ContactRateLimit.Max)
	require.Equal(t, 10*time.Minute, cfg.ContactRateLimit.Window)
	require.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	require.Equal(t, "X-Forwarded-For", cfg.ProxyHeader)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("timeout", func(t *testing.T) {
		t.Setenv("EMAIL_TIMEOUT", "soon")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("port", func(t *testing.T) {
		t.Setenv("EMAIL_PORT", "0")
		_, err := Load()
		require.Error(t, err)
	})
}
