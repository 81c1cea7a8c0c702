package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/greanworld/grean-contact-api/internal/config"
	"github.com/greanworld/grean-contact-api/internal/dto"
	"github.com/greanworld/grean-contact-api/internal/observability"
	"github.com/greanworld/grean-contact-api/pkg/mailer"
)

// ContactService exposes the contact submission workflow.
type ContactService interface {
	Submit(ctx context.Context, req dto.ContactRequest) (dto.ContactResult, error)
}

const contactReferenceHeader = "X-Contact-Reference"

type contactService struct {
	validator *validator.Validate
	dialer    mailer.Dialer
	settings  config.ContactSettings
	messages  ContactMessages
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewContactService constructs a contact submission service. The contact
// validation tags are registered on validate; a nil validate gets a fresh
// validator.
func NewContactService(dialer mailer.Dialer, validate *validator.Validate, settings config.ContactSettings, logger zerolog.Logger) ContactService {
	if validate == nil {
		validate = NewContactValidator()
	} else {
		mustRegisterContactValidations(validate)
	}

	return &contactService{
		validator: validate,
		dialer:    dialer,
		settings:  settings,
		messages:  NewContactMessages(settings.Company),
		logger:    logger.With().Str("component", "contact_service").Logger(),
		tracer:    otel.Tracer("github.com/greanworld/grean-contact-api/internal/service/contact"),
		now:       time.Now,
	}
}

func (s *contactService) Submit(ctx context.Context, req dto.ContactRequest) (result dto.ContactResult, err error) {
	ctx, span := s.tracer.Start(ctx, "contact.submit")
	defer span.End()

	defer func() {
		outcome := result.Outcome
		if err != nil || outcome == "" {
			outcome = dto.OutcomeUnhandledError
			var contactErr *ContactError
			if errors.As(err, &contactErr) {
				outcome = contactErr.Outcome()
			}
		}
		span.SetAttributes(attribute.String("contact.outcome", string(outcome)))
		observability.ContactSubmissions().WithLabelValues(string(outcome)).Inc()
	}()

	violations, err := contactViolations(s.validator, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validator failure")
		return dto.ContactResult{}, fmt.Errorf("validate contact submission: %w", err)
	}
	if len(violations) > 0 {
		span.SetStatus(codes.Error, "validation failed")
		return dto.ContactResult{}, &ContactError{
			Kind:       ErrContactInvalid,
			Message:    s.messages.Validation(violations),
			Violations: violations,
		}
	}

	if isSuspiciousContact(req) {
		span.SetStatus(codes.Error, "suspicious content")
		s.logger.Warn().
			Str("email", req.Email).
			Str("name", req.Name).
			Str("subject", req.Subject).
			Str("ip", req.IPAddress).
			Msg("suspicious contact submission detected")
		return dto.ContactResult{}, &ContactError{Kind: ErrContactSuspicious, Message: s.messages.Suspicious()}
	}

	if s.dialer == nil || !s.dialer.Configured() {
		span.SetStatus(codes.Error, "mail not configured")
		s.logger.Error().Msg("email configuration missing")
		return dto.ContactResult{}, &ContactError{Kind: ErrMailNotConfigured, Message: s.messages.ServiceUnavailable()}
	}

	transport, err := s.openTransport(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport verification failed")
		s.logger.Error().Err(err).Msg("email transport verification failed")
		return dto.ContactResult{}, &ContactError{Kind: ErrMailUnavailable, Message: s.messages.ServiceMisconfigured(), Err: err}
	}
	defer transport.Close()

	clean := req.Sanitized()
	referenceID := uuid.NewString()
	submittedAt := s.now()
	span.SetAttributes(attribute.String("contact.reference_id", referenceID))

	logger := s.logger.With().
		Str("reference_id", referenceID).
		Str("email", maskEmailAddress(clean.Email)).
		Logger()

	notification, err := renderOperatorNotification(s.settings, clean, submittedAt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		return dto.ContactResult{}, err
	}
	notification.Headers = referenceHeaders(referenceID)

	if err := transport.Send(ctx, notification); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "operator delivery failed")
		logger.Error().Err(err).Msg("failed to send contact notification to team")
		return dto.ContactResult{}, &ContactError{Kind: ErrOperatorDelivery, Message: s.messages.OperatorDeliveryFailed(), Err: err}
	}
	result = dto.ContactResult{ReferenceID: referenceID, Outcome: dto.OutcomeDelivered}

	autoReply, err := renderAutoReply(s.settings, clean, submittedAt)
	if err != nil {
		result.Outcome = dto.OutcomePartiallyDelivered
		logger.Warn().Err(err).Msg("failed to render auto-reply email")
	} else {
		autoReply.Headers = referenceHeaders(referenceID)
		if err := transport.Send(ctx, autoReply); err != nil {
			result.Outcome = dto.OutcomePartiallyDelivered
			logger.Warn().Err(err).Msg("failed to send auto-reply email")
		}
	}

	logger.Info().Str("outcome", string(result.Outcome)).Str("interest", clean.Interest).Msg("contact submission processed")
	span.SetStatus(codes.Ok, string(result.Outcome))

	return result, nil
}

// referenceHeaders lets the team match both emails of one submission to its
// log lines.
func referenceHeaders(referenceID string) map[string]string {
	return map[string]string{contactReferenceHeader: referenceID}
}

// openTransport acquires a fresh handle and verifies it before any message is
// composed. The handle is closed when verification fails.
func (s *contactService) openTransport(ctx context.Context) (mailer.Transport, error) {
	transport, err := s.dialer.Dial(ctx)
	if err != nil {
		return nil, err
	}
	if transport == nil {
		return nil, errors.New("mail dialer returned no transport")
	}
	if err := transport.Verify(ctx); err != nil {
		_ = transport.Close()
		return nil, err
	}
	return transport, nil
}

func maskEmailAddress(email string) string {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return ""
	}
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return "***"
	}
	runes := []rune(local)
	masked := string(runes[0]) + "***"
	if len(runes) > 2 {
		masked += string(runes[len(runes)-1])
	}
	return masked + "@" + domain
}
