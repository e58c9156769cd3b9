package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"trackerbot/internal/adapters/handler"
	"trackerbot/internal/adapters/sender"
	"trackerbot/internal/adapters/tracker"
	"trackerbot/internal/config"
	"trackerbot/internal/core/domain"
	"trackerbot/internal/core/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Info().Msg("starting trackerbot...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load configuration")
	}

	var logLevel zerolog.Level

	switch cfg.LogLevel {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	registry := &domain.Registry{}
	for _, command := range cfg.Commands {
		registry.Register(domain.CommandDefinition{
			Token:       command.Token,
			Query:       command.Query,
			Description: command.Description,
			Kind:        domain.KindQuery,
		})
	}
	registry.Register(domain.CommandDefinition{
		Token:       "comandos",
		Description: "List available commands",
		Kind:        domain.KindHelp,
	})
	registry.Register(domain.CommandDefinition{
		Token:       "help",
		Description: "List available commands",
		Kind:        domain.KindHelp,
	})

	executor := tracker.NewJira(cfg.JiraBaseURL, cfg.JiraUser, cfg.JiraAPIToken)
	authorizer := service.NewChannelAuthorizer(cfg.AllowedChannels)
	dispatcher := service.NewDispatcher(registry, executor, authorizer, cfg.QueryTimeout)
	verifier := service.NewVerifier(cfg.SigningSecret)

	webhook := handler.NewWebhook(verifier, dispatcher, sender.NewSlack(cfg.BotToken), sender.NewCallback())

	server := handler.NewServer(cfg.Port, webhook.Router())
	if err := server.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("webhook server terminated")
	}

	log.Info().Msg("shutdown complete")
}
