package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/greanworld/grean-contact-api/pkg/mailer"
)

// EnvProduction hides raw error detail from API callers.
const EnvProduction = "production"

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName          string
	AppEnv           string
	AppPort          string
	LogLevel         string
	RedisURL         string
	CORSAllowOrigins string
	ProxyHeader      string
	ContactRateLimit RateLimit
	Mail             mailer.Config
	Contact          ContactSettings
}

// RateLimit bounds how often one client may submit the contact form.
type RateLimit struct {
	Max    int
	Window time.Duration
}

// ContactSettings controls addressing and wording of contact notifications.
type ContactSettings struct {
	OperatorInbox string
	SubjectPrefix string
	Company       CompanyProfile
}

// CompanyProfile is the contact information quoted back to customers.
type CompanyProfile struct {
	Name          string
	Tagline       string
	Emails        []string
	Phones        []string
	OfficeHours   string
	FallbackEmail string
	FallbackPhone string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.AppEnv), EnvProduction)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "GREAN WORLD Contact API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("cors.allow_origins", "*")

	v.SetDefault("email.driver", mailer.DriverSMTP)
	v.SetDefault("email.host", "smtp.gmail.com")
	v.SetDefault("email.port", 587)
	v.SetDefault("email.secure", false)
	v.SetDefault("email.from", "noreply@greanworld.com")
	v.SetDefault("email.to", "info@greanworld.com")
	v.SetDefault("email.subject_prefix", "[GREAN WORLD Contact]")
	v.SetDefault("email.timeout", "30s")

	v.SetDefault("contact.rate_limit_max", 5)
	v.SetDefault("contact.rate_limit_window", "1m")
	v.SetDefault("contact.fallback_email", "info@greanworld.com")
	v.SetDefault("contact.fallback_phone", "(+251) 913 330000")

	v.SetDefault("company.name", "GREAN WORLD Energy Technology PLC")
	v.SetDefault("company.tagline", "Transforming Ethiopia's Energy Landscape")
	v.SetDefault("company.emails", "info@greanworld.com,sileshi@greanworld.com")
	v.SetDefault("company.phones", "(+251) 913 330000,(+251) 910 212989")
	v.SetDefault("company.office_hours", "Monday - Friday, 8:00 AM - 5:00 PM")

	mailTimeout, err := parseDuration(v.GetString("email.timeout"), 30*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("invalid email timeout: %w", err)
	}

	rateWindow, err := parseDuration(v.GetString("contact.rate_limit_window"), time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid contact rate limit window: %w", err)
	}

	port := v.GetInt("email.port")
	if port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid email port: %q", v.GetString("email.port"))
	}

	cfg := Config{
		AppName:          v.GetString("app.name"),
		AppEnv:           v.GetString("app.env"),
		AppPort:          v.GetString("app.port"),
		LogLevel:         strings.ToLower(v.GetString("log.level")),
		RedisURL:         v.GetString("redis.url"),
		CORSAllowOrigins: v.GetString("cors.allow_origins"),
		ProxyHeader:      strings.TrimSpace(v.GetString("app.proxy_header")),
		ContactRateLimit: RateLimit{
			Max:    v.GetInt("contact.rate_limit_max"),
			Window: rateWindow,
		},
		Mail: mailer.Config{
			Driver:   strings.ToLower(v.GetString("email.driver")),
			Host:     v.GetString("email.host"),
			Port:     port,
			Secure:   v.GetBool("email.secure"),
			Username: v.GetString("email.user"),
			Password: v.GetString("email.pass"),
			From:     v.GetString("email.from"),
			Timeout:  mailTimeout,
		},
		Contact: ContactSettings{
			OperatorInbox: v.GetString("email.to"),
			SubjectPrefix: v.GetString("email.subject_prefix"),
			Company: CompanyProfile{
				Name:          v.GetString("company.name"),
				Tagline:       v.GetString("company.tagline"),
				Emails:        splitList(v.GetString("company.emails")),
				Phones:        splitList(v.GetString("company.phones")),
				OfficeHours:   v.GetString("company.office_hours"),
				FallbackEmail: v.GetString("contact.fallback_email"),
				FallbackPhone: v.GetString("contact.fallback_phone"),
			},
		},
	}

	if cfg.ContactRateLimit.Max <= 0 {
		cfg.ContactRateLimit.Max = 5
	}

	return cfg, nil
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	return time.ParseDuration(value)
}

func splitList(input string) []string {
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
