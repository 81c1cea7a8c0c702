package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/greanworld/grean-contact-api/internal/config"
	"github.com/greanworld/grean-contact-api/internal/database"
	"github.com/greanworld/grean-contact-api/internal/handler"
	"github.com/greanworld/grean-contact-api/internal/middleware"
	"github.com/greanworld/grean-contact-api/internal/router"
	"github.com/greanworld/grean-contact-api/internal/service"
	"github.com/greanworld/grean-contact-api/internal/utils"
	"github.com/greanworld/grean-contact-api/pkg/mailer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.AppName).Logger()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && cfg.LogLevel != "" {
		logger = logger.Level(level)
	}

	var limiterStorage fiber.Storage
	if cfg.RedisURL != "" {
		redisClient, err := database.ConnectRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer func(client *redis.Client) {
			_ = client.Close()
		}(redisClient)
		limiterStorage = database.NewRedisStorage(redisClient, "grean:contact:")
	} else {
		logger.Info().Msg("REDIS_URL not set, contact rate limit is kept in memory")
	}

	dialer, err := mailer.New(cfg.Mail, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure mail transport")
	}
	if !dialer.Configured() {
		logger.Warn().Msg("email credentials missing, contact submissions will be rejected")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	exposeDetails := !cfg.IsProduction()
	messages := service.NewContactMessages(cfg.Contact.Company)
	contactService := service.NewContactService(dialer, validate, cfg.Contact, logger)
	contactHandler := handler.NewContactHandler(contactService, messages, exposeDetails, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		ErrorHandler: handler.ErrorHandler(messages, exposeDetails, logger),

		// client IPs key the contact rate limit; behind a proxy they come from its header
		ProxyHeader:        cfg.ProxyHeader,
		EnableIPValidation: cfg.ProxyHeader != "",
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AllowOrigins: cfg.CORSAllowOrigins,
		AccessLog:    !cfg.IsProduction(),
	})
	router.Register(app, cfg, router.Dependencies{
		ContactHandler: contactHandler,
		HealthHandler:  handler.HealthCheck(cfg, dialer),
		ContactRateLimit: middleware.RateLimit(
			"contact",
			cfg.ContactRateLimit.Max,
			cfg.ContactRateLimit.Window,
			limiterStorage,
			func(c *fiber.Ctx) error {
				return utils.SendError(c, fiber.StatusTooManyRequests, messages.TooManyRequests())
			},
		),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	waitForShutdown(app, logger)
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	// in-flight submissions may still be waiting on the relay
	ctx, cancel := context.WithTimeout(context.Background(), 35*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
