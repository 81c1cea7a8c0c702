package mailer

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

const smtpProvider = "gomail/smtp"

// SMTPDialer opens gomail connections to the configured relay.
type SMTPDialer struct {
	cfg    Config
	logger zerolog.Logger
}

// NewSMTPDialer constructs an SMTP dialer. Connections are only opened by Verify.
func NewSMTPDialer(cfg Config, logger zerolog.Logger) *SMTPDialer {
	return &SMTPDialer{
		cfg:    cfg,
		logger: logger.With().Str("component", "smtp_dialer").Logger(),
	}
}

// Configured reports whether the relay credentials are present.
func (d *SMTPDialer) Configured() bool {
	return d.cfg.HasCredentials()
}

// Dial returns a fresh, unverified handle.
func (d *SMTPDialer) Dial(ctx context.Context) (Transport, error) {
	if strings.TrimSpace(d.cfg.Host) == "" || d.cfg.Port <= 0 {
		return nil, ErrVerify{Provider: smtpProvider, Err: ErrInvalidMessage{Reason: "smtp host and port are required"}}
	}

	dialer := gomail.NewDialer(d.cfg.Host, d.cfg.Port, d.cfg.Username, d.cfg.Password)
	dialer.SSL = d.cfg.Secure

	return &smtpTransport{
		dialer:  dialer,
		from:    d.cfg.From,
		timeout: d.cfg.timeout(),
		logger:  d.logger,
	}, nil
}

type smtpTransport struct {
	dialer  *gomail.Dialer
	sender  gomail.SendCloser
	from    string
	timeout time.Duration
	logger  zerolog.Logger
}

// Verify connects and authenticates against the relay, keeping the session
// open for the following sends.
func (t *smtpTransport) Verify(ctx context.Context) error {
	if t.sender != nil {
		return nil
	}

	done := make(chan dialResult, 1)
	go func() {
		sender, err := t.dialer.Dial()
		done <- dialResult{sender: sender, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return ErrVerify{Provider: smtpProvider, Err: res.err}
		}
		t.sender = res.sender
		return nil
	case <-ctx.Done():
		go closeWhenDialed(done)
		return ErrVerify{Provider: smtpProvider, Err: ctx.Err()}
	case <-time.After(t.timeout):
		go closeWhenDialed(done)
		return ErrVerify{Provider: smtpProvider, Err: ErrTimeout{Op: "verify", After: t.timeout}}
	}
}

// Send writes one message over the verified session. A send that has started
// is not cancelled by ctx; only the relay timeout bounds it.
func (t *smtpTransport) Send(_ context.Context, msg Message) error {
	if t.sender == nil {
		return ErrSend{Provider: smtpProvider, Err: ErrInvalidMessage{Reason: "transport has not been verified"}}
	}

	m, err := buildMessage(t.from, msg)
	if err != nil {
		return err
	}

	sender := t.sender
	done := make(chan error, 1)
	go func() {
		done <- gomail.Send(sender, m)
	}()

	timer := time.NewTimer(t.timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			return ErrSend{Provider: smtpProvider, Err: err}
		}
		return nil
	case <-timer.C:
		// the session is still busy; hand it to the goroutine to close.
		t.sender = nil
		go func() {
			<-done
			_ = sender.Close()
		}()
		return ErrSend{Provider: smtpProvider, Err: ErrTimeout{Op: "send", After: t.timeout}}
	}
}

func (t *smtpTransport) Close() error {
	if t.sender == nil {
		return nil
	}
	err := t.sender.Close()
	t.sender = nil
	if err != nil {
		t.logger.Debug().Err(err).Msg("smtp session close failed")
	}
	return err
}

type dialResult struct {
	sender gomail.SendCloser
	err    error
}

func closeWhenDialed(done <-chan dialResult) {
	res := <-done
	if res.err == nil && res.sender != nil {
		_ = res.sender.Close()
	}
}

func buildMessage(from string, m Message) (*gomail.Message, error) {
	msg := gomail.NewMessage()

	from = strings.TrimSpace(from)
	if from == "" {
		return nil, ErrInvalidMessage{Reason: "from is required"}
	}
	msg.SetHeader("From", from)

	to := cleanAddrs(m.To)
	if len(to) == 0 {
		return nil, ErrInvalidMessage{Reason: "at least one recipient is required"}
	}
	msg.SetHeader("To", to...)

	if replyTo := strings.TrimSpace(m.ReplyTo); replyTo != "" {
		msg.SetHeader("Reply-To", replyTo)
	}

	subj := strings.TrimSpace(m.Subject)
	if subj == "" {
		return nil, ErrInvalidMessage{Reason: "subject is required"}
	}
	msg.SetHeader("Subject", subj)

	for k, v := range m.Headers {
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		msg.SetHeader(k, v)
	}

	hasText := strings.TrimSpace(m.TextBody) != ""
	hasHTML := strings.TrimSpace(m.HTMLBody) != ""

	switch {
	case hasText && hasHTML:
		msg.SetBody("text/plain", m.TextBody)
		msg.AddAlternative("text/html", m.HTMLBody)
	case hasHTML:
		msg.SetBody("text/html", m.HTMLBody)
	case hasText:
		msg.SetBody("text/plain", m.TextBody)
	default:
		return nil, ErrInvalidMessage{Reason: "either TextBody or HTMLBody is required"}
	}

	return msg, nil
}

func cleanAddrs(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
