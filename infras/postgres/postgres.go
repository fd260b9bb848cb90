package postgres

//nolint:revive
import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"sportsassist/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresMaxIdleTime       = 5 * time.Minute
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// New opens the read and write pools, exiting when either stays unreachable
// after DB_POSTGRES_MAX_RETRY attempts.
func New(cfg *config.Config) *Connection {
	retries, wait := cfg.DB.Postgres.MaxRetry, cfg.DB.Postgres.RetryWaitTime

	conn := &Connection{
		Write: connect("write", WriteEndpoint(cfg), retries, wait),
		Read:  connect("read", ReadEndpoint(cfg), retries, wait),
	}

	if conn.Read == nil || conn.Write == nil {
		log.Fatal().Int("maxRetry", retries).Msg("Could not connect to database")
	}

	return conn
}

// NewFromDB uses a single pool for both reads and writes.
func NewFromDB(db *sqlx.DB) *Connection {
	return &Connection{
		Read:  db,
		Write: db,
	}
}

func (c *Connection) Ping(ctx context.Context) error {
	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping write database: %w", err)
	}

	if err := c.Read.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping read database: %w", err)
	}

	return nil
}

func (c *Connection) Close() {
	if err := c.Write.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close write database")
	}

	if c.Read != c.Write {
		if err := c.Read.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close read database")
		}
	}
}

// Endpoint is one of the read or write database settings.
type Endpoint struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	Timezone string
	SSLMode  string
}

// WriteEndpoint and ReadEndpoint apply DB_POSTGRES_PREFIX to the database name.
func WriteEndpoint(cfg *config.Config) Endpoint {
	endpoint := Endpoint(cfg.DB.Postgres.Write)
	endpoint.Name = cfg.DB.Postgres.Prefix + endpoint.Name

	return endpoint
}

func ReadEndpoint(cfg *config.Config) Endpoint {
	endpoint := Endpoint(cfg.DB.Postgres.Read)
	endpoint.Name = cfg.DB.Postgres.Prefix + endpoint.Name

	return endpoint
}

// DSN renders the endpoint as a postgres URL. Credentials are escaped, sslmode
// defaults to disable and a configured timezone becomes the session TimeZone.
// extra is merged into the query string.
func (e Endpoint) DSN(extra url.Values) string {
	query := url.Values{}
	query.Set("sslmode", e.SSLMode)

	if e.SSLMode == "" {
		query.Set("sslmode", "disable")
	}

	if e.Timezone != "" {
		query.Set("TimeZone", e.Timezone)
	}

	for key, values := range extra {
		query[key] = values
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.Username, e.Password),
		Host:     net.JoinHostPort(e.Host, e.Port),
		Path:     "/" + e.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func connect(name string, endpoint Endpoint, maxRetry, waitSeconds int) *sqlx.DB {
	logger := log.With().Str("name", name).Str("host", endpoint.Host).Str("db", endpoint.Name).Logger()

	for attempt := 1; attempt <= max(maxRetry, 1); attempt++ {
		db, err := sqlx.Connect("postgres", endpoint.DSN(nil))
		if err == nil {
			db.SetMaxIdleConns(postgresMaxIdleConnection)
			db.SetMaxOpenConns(postgresMaxOpenConnection)
			db.SetConnMaxIdleTime(postgresMaxIdleTime)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	return nil
}
