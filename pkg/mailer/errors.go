package mailer

import (
	"fmt"
	"time"
)

// ErrInvalidMessage reports a message that cannot be handed to the transport.
type ErrInvalidMessage struct{ Reason string }

func (e ErrInvalidMessage) Error() string { return "invalid email message: " + e.Reason }

// ErrVerify reports a transport that could not be reached or authenticated.
type ErrVerify struct {
	Provider string
	Err      error
}

func (e ErrVerify) Error() string {
	return fmt.Sprintf("email transport verification failed (%s): %v", e.Provider, e.Err)
}
func (e ErrVerify) Unwrap() error { return e.Err }

// ErrSend reports a message rejected or lost by the transport.
type ErrSend struct {
	Provider string
	Err      error
}

func (e ErrSend) Error() string { return fmt.Sprintf("email send failed (%s): %v", e.Provider, e.Err) }
func (e ErrSend) Unwrap() error { return e.Err }

// ErrTimeout reports an SMTP exchange that exceeded the configured timeout.
type ErrTimeout struct {
	Op    string
	After time.Duration
}

func (e ErrTimeout) Error() string { return fmt.Sprintf("smtp %s timeout after %s", e.Op, e.After) }
