package mailer

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// LogDialer is a development provider that writes messages to the log.
type LogDialer struct {
	from   string
	logger zerolog.Logger
}

// NewLogDialer constructs a logging provider.
func NewLogDialer(from string, logger zerolog.Logger) *LogDialer {
	return &LogDialer{from: from, logger: logger.With().Str("component", "log_mailer").Logger()}
}

// Configured always reports true; the log provider needs no credentials.
func (l *LogDialer) Configured() bool { return true }

// Dial returns a handle that logs each message.
func (l *LogDialer) Dial(context.Context) (Transport, error) {
	return &logTransport{from: l.from, logger: l.logger}, nil
}

type logTransport struct {
	from   string
	logger zerolog.Logger
}

func (t *logTransport) Verify(context.Context) error { return nil }

// Send validates the message the same way the SMTP transport does and logs it.
func (t *logTransport) Send(_ context.Context, msg Message) error {
	if _, err := buildMessage(t.from, msg); err != nil {
		return err
	}

	t.logger.Info().
		Str("from", t.from).
		Str("to", strings.Join(msg.To, ",")).
		Str("reply_to", msg.ReplyTo).
		Str("subject", msg.Subject).
		Int("html_bytes", len(msg.HTMLBody)).
		Int("text_bytes", len(msg.TextBody)).
		Msg("email delivered to log")
	return nil
}

func (t *logTransport) Close() error { return nil }
