package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/greanworld/grean-contact-api/internal/config"
	"github.com/greanworld/grean-contact-api/internal/utils"
	"github.com/greanworld/grean-contact-api/pkg/mailer"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	Service        string    `json:"service"`
	Environment    string    `json:"environment"`
	MailDriver     string    `json:"mail_driver"`
	MailConfigured bool      `json:"mail_configured"`
}

// HealthCheck returns a handler that reports application health information.
// It never contacts the mail relay.
func HealthCheck(cfg config.Config, dialer mailer.Dialer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:         "ok",
			Timestamp:      time.Now().UTC(),
			Service:        cfg.AppName,
			Environment:    cfg.AppEnv,
			MailDriver:     cfg.Mail.Driver,
			MailConfigured: dialer != nil && dialer.Configured(),
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
