package dto

import (
	"strings"
	"unicode"
)

// DeliveryOutcome tags how a contact submission was resolved.
type DeliveryOutcome string

const (
	OutcomeDelivered          DeliveryOutcome = "delivered"
	OutcomePartiallyDelivered DeliveryOutcome = "partially_delivered"
	OutcomeConfigurationError DeliveryOutcome = "configuration_error"
	OutcomeDeliveryFailure    DeliveryOutcome = "delivery_failure"
	OutcomeValidationFailure  DeliveryOutcome = "validation_failure"
	OutcomeSuspiciousContent  DeliveryOutcome = "suspicious_content"
	OutcomeUnhandledError     DeliveryOutcome = "unhandled_error"
)

// ContactRequest defines the expected payload for the contact form endpoint.
type ContactRequest struct {
	Name      string `json:"name" validate:"trimmed_min=2"`
	Email     string `json:"email" validate:"required,contact_email"`
	Subject   string `json:"subject" validate:"trimmed_min=3"`
	Interest  string `json:"interest" validate:"required"`
	Message   string `json:"message" validate:"trimmed_min=10"`
	Phone     string `json:"phone,omitempty" validate:"loose_phone"`
	IPAddress string `json:"-" validate:"-"`
}

// NewContactRequest reads the form fields out of a decoded JSON object.
// Fields that are missing or not strings are left empty.
func NewContactRequest(raw map[string]interface{}) ContactRequest {
	return ContactRequest{
		Name:     stringField(raw, "name"),
		Email:    stringField(raw, "email"),
		Phone:    stringField(raw, "phone"),
		Subject:  stringField(raw, "subject"),
		Interest: stringField(raw, "interest"),
		Message:  stringField(raw, "message"),
	}
}

// Sanitized returns the trimmed copy used for every outbound message.
func (r ContactRequest) Sanitized() ContactRequest {
	return ContactRequest{
		Name:      TrimFormSpace(r.Name),
		Email:     strings.ToLower(TrimFormSpace(r.Email)),
		Phone:     TrimFormSpace(r.Phone),
		Subject:   TrimFormSpace(r.Subject),
		Interest:  TrimFormSpace(r.Interest),
		Message:   TrimFormSpace(r.Message),
		IPAddress: r.IPAddress,
	}
}

// ContactResult communicates how the submission was processed.
type ContactResult struct {
	ReferenceID string          `json:"reference_id"`
	Outcome     DeliveryOutcome `json:"outcome"`
}

// TrimFormSpace trims the whitespace a browser form would trim: ASCII
// whitespace, the Unicode separators and the byte order mark.
func TrimFormSpace(value string) string {
	return strings.TrimFunc(value, isFormSpace)
}

func isFormSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\uFEFF':
		return true
	}
	return unicode.In(r, unicode.Z)
}

func stringField(raw map[string]interface{}, key string) string {
	if raw == nil {
		return ""
	}
	if value, ok := raw[key].(string); ok {
		return value
	}
	return ""
}
