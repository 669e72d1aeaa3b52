package cmd

import (
	"context"
	"fmt"
	"time"

	"bootcamp/api"
	"bootcamp/bot"
	"bootcamp/config"
	"bootcamp/events"
	"bootcamp/infrastructure"
	"bootcamp/infrastructure/observability"
	"bootcamp/service"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()
	configureLogging(cfg)

	log.Info("Starting bootcamp points service...")

	// Everything pushed here is released on every return path
	shutdown := &shutdownStack{}
	defer func() {
		log.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		shutdown.run(shutdownCtx)
		log.Info("Shutdown completed")
	}()

	// Initialize event bus
	eventBus := events.NewBus()

	uowFactory, closeStore, err := openStore(ctx, cfg, eventBus)
	if err != nil {
		return err
	}
	shutdown.push("store", func(context.Context) error {
		closeStore()
		return nil
	})

	// Initialize metrics
	metricsProvider := observability.NewMetricsProvider(cfg)
	if err := metricsProvider.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	shutdown.push("metrics", metricsProvider.Shutdown)
	metricsProvider.Subscribe(eventBus)

	// Forward committed events to NATS
	if cfg.NATSEnabled {
		natsClient := infrastructure.NewNATSClient(cfg.NATSServers)
		if err := natsClient.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		shutdown.push("nats", func(context.Context) error {
			return natsClient.Close()
		})

		subjectMapper := infrastructure.NewEventSubjectMapper()
		if err := infrastructure.EnsureDomainEventStream(natsClient, subjectMapper); err != nil {
			return fmt.Errorf("failed to ensure event stream: %w", err)
		}

		publisher := infrastructure.NewNATSEventPublisher(natsClient, subjectMapper)
		publisher.OnPublished(metricsProvider.RecordNATSMessagePublished)
		publisher.Subscribe(eventBus)
		log.Info("Forwarding domain events to NATS")
	}

	// In-flight handlers finish before their sinks close
	shutdown.push("event handlers", func(context.Context) error {
		eventBus.Wait()
		return nil
	})

	// Initialize services
	pointsService := service.NewPointsService(uowFactory, cfg.MaxAwardRetries)
	auditService := service.NewAuditService(uowFactory)
	userService := service.NewUserService(uowFactory, cfg.LeaderboardSize)

	// Discord is optional
	if cfg.DiscordToken != "" {
		log.Info("Initializing Discord bot...")
		discordBot, err := bot.New(bot.Config{
			Token:     cfg.DiscordToken,
			ChannelID: cfg.DiscordChannelID,
		}, userService, auditService, eventBus)
		if err != nil {
			return fmt.Errorf("failed to initialize Discord bot: %w", err)
		}
		shutdown.push("discord", func(context.Context) error {
			return discordBot.Close()
		})
		log.Info("Discord bot initialized successfully")
	}

	server := api.NewServer(cfg.HTTPAddr, api.NewHandler(pointsService, auditService, userService))
	shutdown.push("http", server.Shutdown)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	log.Infof("Service is running in %s mode...", cfg.Environment)

	select {
	case <-ctx.Done():
		return nil
	case err := <-serverErr:
		return err
	}
}
