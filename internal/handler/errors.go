package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/greanworld/grean-contact-api/internal/service"
	"github.com/greanworld/grean-contact-api/internal/utils"
)

// ErrorHandler is the application-wide fallback for errors and recovered
// panics that no handler turned into a response.
func ErrorHandler(messages service.ContactMessages, exposeDetails bool, logger zerolog.Logger) fiber.ErrorHandler {
	base := logger.With().Str("component", "error_handler").Logger()

	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
			return utils.SendError(c, fiberErr.Code, fiberErr.Message)
		}

		requestLogger(base, c).Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("unhandled request error")

		details := ""
		if exposeDetails {
			details = err.Error()
		}
		return utils.SendErrorWithDetails(c, fiber.StatusInternalServerError, messages.Unexpected(err), details)
	}
}
