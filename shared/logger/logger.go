package logger

import (
	"io"
	"os"
	"time"

	"sportsassist/config"
	"sportsassist/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// InitLogger installs a verbose console logger used until the configuration
// is loaded.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
}

// Configure applies the configured level and, outside development, swaps the
// console writer for structured JSON tagged with the application name.
func Configure(cfg *config.Config) {
	Apply(cfg, os.Stdout)
}

func Apply(cfg *config.Config, out io.Writer) {
	SetLogLevel(cfg)

	if cfg.Server.Env == constant.ServerEnvProduction {
		zerolog.TimeFieldFormat = time.RFC3339
		log.Logger = zerolog.New(out).With().Timestamp().Str("app", cfg.App.Name).Logger()

		return
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
		With().Str("app", cfg.App.Name).Logger()
}

// ErrorWithStack logs err with the stack of the caller attached.
func ErrorWithStack(err error) {
	log.Error().Stack().Err(errors.WithStack(err)).Msg("unexpected error")
}

// SetLogLevel applies LOG_LEVEL. Without one, production logs at info and
// every other environment at debug.
func SetLogLevel(cfg *config.Config) {
	fallback := zerolog.DebugLevel
	if cfg.Server.Env == constant.ServerEnvProduction {
		fallback = zerolog.InfoLevel
	}

	if cfg.Server.LogLevel == constant.Empty {
		zerolog.SetGlobalLevel(fallback)

		return
	}

	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		log.Warn().Str("log_level", cfg.Server.LogLevel).Msg("unknown log level, using default")

		level = fallback
	}

	zerolog.SetGlobalLevel(level)
}
