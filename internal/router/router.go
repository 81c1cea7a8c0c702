package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/greanworld/grean-contact-api/internal/config"
	"github.com/greanworld/grean-contact-api/internal/handler"
	"github.com/greanworld/grean-contact-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ContactHandler *handler.ContactHandler
	HealthHandler  fiber.Handler
	// ContactRateLimit guards the submission route; nil disables limiting.
	ContactRateLimit fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	if deps.HealthHandler != nil {
		api.Get("/health", deps.HealthHandler)
	}

	if deps.ContactHandler != nil {
		rateLimit := deps.ContactRateLimit
		if rateLimit == nil {
			rateLimit = func(c *fiber.Ctx) error { return c.Next() }
		}
		deps.ContactHandler.Register(api.Group("/contact", rateLimit))
	}

	app.Get("/metrics", observability.MetricsHandler())
}
