package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
		ReadTimeoutSeconds  int `envconfig:"READ_TIMEOUT_SECONDS"  default:"15"`
		WriteTimeoutSeconds int `envconfig:"WRITE_TIMEOUT_SECONDS" default:"30"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME" default:"sportsassist"`
		Timezone string `envconfig:"TIMEZONE"`
		WebURL   string `envconfig:"WEB_URL"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable          bool `envconfig:"ENABLE"`
			MaxRequests     int  `envconfig:"MAX_REQUESTS"      default:"120"`
			AuthMaxRequests int  `envconfig:"AUTH_MAX_REQUESTS" default:"10"`
			WindowSeconds   int  `envconfig:"WINDOW_SECONDS"    default:"60"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME"`
			MigrationTable string `envconfig:"MIGRATION_TABLE"`
			MigrationPath  string `envconfig:"MIGRATION_PATH" default:"file://migrations/postgres"`
			AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`
			Prefix         string `envconfig:"PREFIX"`
			Read           struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"READ"`
			Write struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Upload struct {
		MaxFileSizeMB float64       `envconfig:"MAX_FILE_SIZE_MB" default:"5"`
		PresignExpiry time.Duration `envconfig:"PRESIGN_EXPIRY"   default:"15m"`
	} `envconfig:"UPLOAD"`

	Metrics struct {
		Enable bool   `envconfig:"ENABLE" default:"true"`
		Path   string `envconfig:"PATH"   default:"/metrics"`
	} `envconfig:"METRICS"`

	External struct {
		Otel struct {
			Exporter   string  `envconfig:"EXPORTER"    default:"none"`
			Endpoint   string  `envconfig:"ENDPOINT"`
			SampleRate float64 `envconfig:"SAMPLE_RATE" default:"1"`
		} `envconfig:"OTEL"`
		S3 struct {
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
		} `envconfig:"S3"`
		Kafka struct {
			Enable        bool     `envconfig:"ENABLE"`
			Brokers       []string `envconfig:"BROKERS"`
			ConsumerGroup string   `envconfig:"CONSUMER_GROUP"`
			SASL          struct {
				Username string `envconfig:"USERNAME"`
				Password string `envconfig:"PASSWORD"`
			} `envconfig:"SASL"`
			Topics struct {
				Registration string `envconfig:"REGISTRATION" default:"sportsassist.registrations"`
				CampMessage  string `envconfig:"CAMP_MESSAGE" default:"sportsassist.camp-messages"`
				SlotBooking  string `envconfig:"SLOT_BOOKING" default:"sportsassist.slot-bookings"`
			} `envconfig:"TOPICS"`
		} `envconfig:"KAFKA"`
		Email struct {
			Enable      bool   `envconfig:"ENABLE"`
			APIKey      string `envconfig:"API_KEY"`
			From        string `envconfig:"FROM"`
			Concurrency int    `envconfig:"CONCURRENCY" default:"5"`
		} `envconfig:"EMAIL"`
	} `envconfig:"EXTERNAL"`
}

var (
	conf Config
	once sync.Once
	err  error
)

// Validate rejects configurations the API server cannot start with. Init does
// not call it so tools and tests can load a partial environment.
func (c *Config) Validate() error {
	var problems []string

	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		problems = append(problems, "JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required")
	}

	if c.JWT.AccessExpireMin <= 0 || c.JWT.RefreshExpireMin <= 0 {
		problems = append(problems, "JWT expiries must be positive")
	}

	if c.App.Timezone != "" {
		if _, loadErr := time.LoadLocation(c.App.Timezone); loadErr != nil {
			problems = append(problems, fmt.Sprintf("APP_TIMEZONE %q is not a known zone", c.App.Timezone))
		}
	}

	if c.External.Kafka.Enable && len(c.External.Kafka.Brokers) == 0 {
		problems = append(problems, "EXTERNAL_KAFKA_BROKERS is required when kafka is enabled")
	}

	if c.External.Email.Enable && (c.External.Email.APIKey == "" || c.External.Email.From == "") {
		problems = append(problems, "EXTERNAL_EMAIL_API_KEY and EXTERNAL_EMAIL_FROM are required when email is enabled")
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}

	return nil
}

// Timezone resolves APP_TIMEZONE, defaulting to UTC.
func (c *Config) Timezone() *time.Location {
	if c.App.Timezone == "" {
		return time.UTC
	}

	loc, loadErr := time.LoadLocation(c.App.Timezone)
	if loadErr != nil {
		return time.UTC
	}

	return loc
}

// Init reads .env (when present) and the environment once.
func Init() error {
	once.Do(func() {
		if loadErr := godotenv.Load(".env"); loadErr != nil {
			log.Debug().Err(loadErr).Msg("no .env file, using process environment")
		}

		if err = envconfig.Process("", &conf); err != nil {
			err = fmt.Errorf("processing environment: %w", err)

			return
		}

		log.Info().Str("env", conf.Server.Env).Str("app", conf.App.Name).Msg("configuration loaded")
	})

	return err
}

// Get returns the process configuration, exiting when it cannot be loaded.
func Get() *Config {
	if initErr := Init(); initErr != nil {
		log.Fatal().Err(initErr).Msg("failed to initialize configuration")
	}

	return &conf
}
