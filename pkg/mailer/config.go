package mailer

import (
	"strings"
	"time"
)

const (
	// DriverSMTP delivers through an SMTP relay.
	DriverSMTP = "smtp"
	// DriverLog renders messages into the log instead of sending them.
	DriverLog = "log"
)

// Config describes how to reach the mail relay.
type Config struct {
	Driver   string
	Host     string
	Port     int
	Secure   bool
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// HasCredentials reports whether both the relay identity and secret are present.
func (c Config) HasCredentials() bool {
	return strings.TrimSpace(c.Username) != "" && c.Password != ""
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 30 * time.Second
	}
	return c.Timeout
}
