// Package main provides the entry point for the S.A community bot.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sa-community/sabot/internal/bot"
	"github.com/sa-community/sabot/internal/config"
	"github.com/sa-community/sabot/internal/conversation"
	"github.com/sa-community/sabot/internal/discord"
	"github.com/sa-community/sabot/internal/gemini"
	"github.com/sa-community/sabot/internal/health"
	"github.com/sa-community/sabot/internal/scheduler"
)

const (
	// shutdownTimeout is the maximum time to wait for graceful shutdown.
	shutdownTimeout = 15 * time.Second

	// startupTimeout bounds backend and gateway initialization.
	startupTimeout = 60 * time.Second
)

func main() {
	os.Exit(runMain())
}

func runMain() int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if os.Getenv("DEBUG") == "1" {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("shutting down gracefully")
		cancel()
	}()

	if err := run(ctx, logger); err != nil {
		logger.Error("bot exited with error", "error", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, logger *slog.Logger) error {
	logger.Info("sabot starting")

	// A local .env is a development convenience; production sets real env vars.
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded environment from .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	c, err := initializeComponents(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if err := startComponents(ctx, c, logger); err != nil {
		shutdownComponents(c, logger)
		return err
	}

	logger.Info("sabot started, listening for events", "model", cfg.ModelName)

	<-ctx.Done()

	shutdownComponents(c, logger)
	return nil
}

// components holds everything run wires together.
type components struct {
	generator *gemini.Client
	registry  *conversation.Registry
	scheduler *scheduler.Scheduler
	client    *discord.Client
	health    *health.Server
}

func initializeComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*components, error) {
	startupCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	generator, err := gemini.NewClient(startupCtx, cfg.GenerativeAPIKey, cfg.ModelName, cfg.Generation)
	if err != nil {
		return nil, fmt.Errorf("failed to create generative client: %w", err)
	}

	registry := conversation.NewRegistry()

	sched := scheduler.New(
		scheduler.WithLogger(logger.With("component", "scheduler")),
	)

	client, err := discord.NewClient(cfg.BotToken, logger.With("component", "discord"))
	if err != nil {
		return nil, fmt.Errorf("failed to create discord client: %w", err)
	}

	router, err := bot.NewRouter(client, generator, registry, sched,
		bot.WithLogger(logger.With("component", "router")),
		bot.WithRoleNames(cfg.MuteRoleName, cfg.IsolateRoleName),
		bot.WithAllowedChannels(cfg.AllowedChannelIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}
	client.BindRouter(router)

	return &components{
		generator: generator,
		registry:  registry,
		scheduler: sched,
		client:    client,
		health:    health.NewServer(cfg.Port, logger.With("component", "health")),
	}, nil
}

func startComponents(ctx context.Context, c *components, logger *slog.Logger) error {
	startupCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	if err := c.client.Open(startupCtx); err != nil {
		return fmt.Errorf("failed to connect to discord: %w", err)
	}

	if err := c.client.RegisterCommands(); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	go func() {
		if err := c.health.Start(); err != nil {
			logger.Error("health server error", "error", err)
		}
	}()

	return nil
}

func shutdownComponents(c *components, logger *slog.Logger) {
	logger.Info("shutting down components")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := c.client.Close(); err != nil {
		logger.Error("failed to close discord session", "error", err)
	}

	if pending := c.scheduler.Pending(); pending > 0 {
		logger.Info("canceling pending reminders", "count", pending)
	}
	c.scheduler.Stop()

	if err := c.health.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to stop health server", "error", err)
	}

	if err := c.generator.Close(); err != nil {
		logger.Error("failed to close generative client", "error", err)
	}

	logger.Info("shutdown complete")
}
