// Package handler is the serverless entrypoint. The first request builds
// the same router cmd/app serves; later requests reuse it.
package handler

import (
	"net/http"
	"sync"

	"sportsassist/config"
	"sportsassist/di"
	"sportsassist/shared/failure"
	"sportsassist/shared/logger"
	"sportsassist/transport/http/response"

	"github.com/rs/zerolog/log"
)

var (
	mux     http.Handler
	initErr error
	once    sync.Once
)

func setup() {
	cfg := config.Get()

	logger.InitLogger()
	logger.Configure(cfg)

	if initErr = cfg.Validate(); initErr != nil {
		log.Error().Err(initErr).Msg("invalid configuration")

		return
	}

	mux = di.InitializeService()
}

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(setup)

	if initErr != nil {
		response.WithError(w, failure.ServiceUnavailable("service is misconfigured"))

		return
	}

	mux.ServeHTTP(w, r)
}
