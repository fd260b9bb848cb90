package main

import (
	"sportsassist/config"
	"sportsassist/di"
	"sportsassist/helper"
	"sportsassist/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Sportsassist API
// @version 1.0
// @description Multi-tenant sports camp registration backend.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
