package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Dialer hands out transport handles to the mail relay.
type Dialer interface {
	// Configured reports whether the relay credentials are present. No handle
	// should be requested when it returns false.
	Configured() bool
	Dial(ctx context.Context) (Transport, error)
}

// Transport is a single handle to the relay. Verify must succeed before Send.
type Transport interface {
	Verify(ctx context.Context) error
	Send(ctx context.Context, msg Message) error
	Close() error
}

// New picks the dialer implementation for the configured driver.
func New(cfg Config, logger zerolog.Logger) (Dialer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverSMTP:
		return NewSMTPDialer(cfg, logger), nil
	case DriverLog:
		return NewLogDialer(cfg.From, logger), nil
	default:
		return nil, fmt.Errorf("unsupported email driver: %s", cfg.Driver)
	}
}
