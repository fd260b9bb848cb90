package main

import (
	"context"
	"os/signal"
	"syscall"

	"sportsassist/config"
	"sportsassist/di"
	"sportsassist/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := di.InitializeWorker()

	log.Info().Msg("Starting event worker.")

	if err := consumer.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Event worker stopped with error")
	}

	if err := consumer.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Kafka client")
	}

	log.Info().Msg("Event worker stopped.")
}
