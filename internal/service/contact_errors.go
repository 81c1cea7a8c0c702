package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/greanworld/grean-contact-api/internal/config"
	"github.com/greanworld/grean-contact-api/internal/dto"
)

const (
	defaultOperatorInbox = "info@greanworld.com"
	defaultCompanyName   = "GREAN WORLD Energy Technology PLC"
)

var (
	// ErrContactInvalid indicates one or more form fields failed validation.
	ErrContactInvalid = errors.New("contact submission failed validation")
	// ErrContactSuspicious indicates the spam heuristics flagged the submission.
	ErrContactSuspicious = errors.New("contact submission flagged as suspicious")
	// ErrMailNotConfigured indicates the relay credentials are missing.
	ErrMailNotConfigured = errors.New("email credentials are not configured")
	// ErrMailUnavailable indicates the relay could not be reached or authenticated.
	ErrMailUnavailable = errors.New("email transport verification failed")
	// ErrOperatorDelivery indicates the team notification was not delivered.
	ErrOperatorDelivery = errors.New("operator notification could not be delivered")
)

// ContactError is a failed submission together with the message safe to show
// to the person who sent it.
type ContactError struct {
	Kind       error
	Message    string
	Violations []string
	Err        error
}

func (e *ContactError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return e.Kind.Error()
}

func (e *ContactError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Outcome maps the failure onto the delivery outcome taxonomy.
func (e *ContactError) Outcome() dto.DeliveryOutcome {
	return outcomeFor(e.Kind)
}

func outcomeFor(kind error) dto.DeliveryOutcome {
	switch {
	case errors.Is(kind, ErrContactInvalid):
		return dto.OutcomeValidationFailure
	case errors.Is(kind, ErrContactSuspicious):
		return dto.OutcomeSuspiciousContent
	case errors.Is(kind, ErrMailNotConfigured), errors.Is(kind, ErrMailUnavailable):
		return dto.OutcomeConfigurationError
	case errors.Is(kind, ErrOperatorDelivery):
		return dto.OutcomeDeliveryFailure
	default:
		return dto.OutcomeUnhandledError
	}
}

// ContactMessages renders the caller-facing wording, pointing people at the
// company's fallback channels.
type ContactMessages struct {
	email string
	phone string
}

// NewContactMessages builds the message catalogue from the company profile.
func NewContactMessages(company config.CompanyProfile) ContactMessages {
	email := strings.TrimSpace(company.FallbackEmail)
	if email == "" {
		email = defaultOperatorInbox
	}
	return ContactMessages{email: email, phone: strings.TrimSpace(company.FallbackPhone)}
}

func (m ContactMessages) InvalidFormat() string {
	return "Invalid request format. Please try again."
}

func (m ContactMessages) Validation(violations []string) string {
	return "Validation failed: " + strings.Join(violations, ", ")
}

func (m ContactMessages) Suspicious() string {
	return "Message appears to contain suspicious content. Please contact us directly if this is a legitimate inquiry."
}

func (m ContactMessages) ServiceUnavailable() string {
	return "Email service is temporarily unavailable. Please contact us directly at " + m.email
}

func (m ContactMessages) ServiceMisconfigured() string {
	return "Email service configuration error. Please contact us directly at " + m.email
}

func (m ContactMessages) OperatorDeliveryFailed() string {
	return "Failed to send message to our team. Please try again or contact us directly at " + m.email
}

func (m ContactMessages) Success() string {
	return "Message sent successfully! We will get back to you within 24 hours. Please check your email for confirmation."
}

func (m ContactMessages) TooManyRequests() string {
	return "Too many requests. Please wait a moment and try again."
}

// Unexpected picks the best guidance for an error nothing else handled, based
// on the shape of its description.
func (m ContactMessages) Unexpected(err error) string {
	if err == nil {
		return m.generic()
	}

	description := strings.ToLower(err.Error())
	switch {
	case containsAny(description, "enotfound", "econnrefused", "no such host", "connection refused", "network is unreachable", "host is unreachable"):
		msg := m.ServiceUnavailable()
		if m.phone != "" {
			msg += " or call " + m.phone
		}
		return msg
	case containsAny(description, "invalid login", "authentication failed", "username and password not accepted", "535 "):
		return m.ServiceMisconfigured()
	case containsAny(description, "timeout", "timed out", "deadline exceeded"):
		return "Request timed out. Please try again or contact us directly."
	default:
		return m.generic()
	}
}

func (m ContactMessages) generic() string {
	return "An unexpected error occurred. Please try again or contact us directly at " + m.email
}

func containsAny(haystack string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
