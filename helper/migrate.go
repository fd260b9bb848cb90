package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"sportsassist/config"
	"sportsassist/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const defaultMigrationTable = "schema_migrations"

// DatabaseURL builds the migrate connection string for the write database.
func DatabaseURL(cfg *config.Config) string {
	table := cfg.DB.Postgres.MigrationTable
	if table == "" {
		table = defaultMigrationTable
	}

	return postgres.WriteEndpoint(cfg).DSN(url.Values{"x-migrations-table": {table}})
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	mig, err := migrate.New(config.DB.Postgres.MigrationPath, DatabaseURL(config))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func run(config *config.Config, action string, fn func(*migrate.Migrate) error) error {
	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err := fn(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running migration %s: %w", action, err)
	}

	log.Info().Str("action", action).Msg("Database migration completed successfully")

	return nil
}

func Up(config *config.Config) error {
	return run(config, "up", (*migrate.Migrate).Up)
}

// Down rolls back the latest migration only.
func Down(config *config.Config) error {
	return Steps(config, -1)
}

func Steps(config *config.Config, n int) error {
	return run(config, fmt.Sprintf("steps(%d)", n), func(mig *migrate.Migrate) error {
		return mig.Steps(n)
	})
}

// Drop rolls back every migration.
func Drop(config *config.Config) error {
	return run(config, "drop", (*migrate.Migrate).Down)
}

func Force(config *config.Config, version int) error {
	return run(config, fmt.Sprintf("force(%d)", version), func(mig *migrate.Migrate) error {
		return mig.Force(version)
	})
}

func Version(config *config.Config) (uint, bool, error) {
	mig, err := getConnection(config)
	if err != nil {
		return 0, false, err
	}

	defer mig.Close()

	version, dirty, err := mig.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}

	if err != nil {
		return 0, false, fmt.Errorf("error reading migration version: %w", err)
	}

	return version, dirty, nil
}
