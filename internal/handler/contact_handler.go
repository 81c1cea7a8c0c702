package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/greanworld/grean-contact-api/internal/dto"
	"github.com/greanworld/grean-contact-api/internal/service"
	"github.com/greanworld/grean-contact-api/internal/utils"
)

// ContactHandler handles contact submissions.
type ContactHandler struct {
	service       service.ContactService
	messages      service.ContactMessages
	exposeDetails bool
	logger        zerolog.Logger
}

// NewContactHandler constructs a contact handler. When exposeDetails is set,
// unexpected failures echo the raw error back to the caller.
func NewContactHandler(service service.ContactService, messages service.ContactMessages, exposeDetails bool, logger zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		service:       service,
		messages:      messages,
		exposeDetails: exposeDetails,
		logger:        logger.With().Str("component", "contact_handler").Logger(),
	}
}

// Register wires contact routes.
func (h *ContactHandler) Register(router fiber.Router) {
	router.Post("", h.submit)
}

func (h *ContactHandler) submit(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)

	var raw map[string]interface{}
	if err := c.App().Config().JSONDecoder(c.Body(), &raw); err != nil || raw == nil {
		logger.Debug().Err(err).Msg("contact payload is not a json object")
		return utils.SendError(c, fiber.StatusBadRequest, h.messages.InvalidFormat())
	}

	payload := dto.NewContactRequest(raw)
	payload.IPAddress = c.IP()

	if _, err := h.service.Submit(c.UserContext(), payload); err != nil {
		var contactErr *service.ContactError
		if errors.As(err, &contactErr) {
			return utils.SendError(c, contactStatus(contactErr), contactErr.Message)
		}

		logger.Error().Err(err).Msg("contact form error")
		details := ""
		if h.exposeDetails {
			details = err.Error()
		}
		return utils.SendErrorWithDetails(c, fiber.StatusInternalServerError, h.messages.Unexpected(err), details)
	}

	return utils.SendSuccess(c, h.messages.Success(), nil)
}

func contactStatus(err *service.ContactError) int {
	switch {
	case errors.Is(err.Kind, service.ErrContactInvalid), errors.Is(err.Kind, service.ErrContactSuspicious):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
