package postgres_test

import (
	"net/url"
	"testing"

	"sportsassist/config"
	"sportsassist/infras/postgres"

	"github.com/stretchr/testify/assert"
)

func TestEndpoint_DSN(t *testing.T) {
	tests := []struct {
		name     string
		endpoint postgres.Endpoint
		extra    url.Values
		want     string
	}{
		{
			name:     "sslmode defaults to disable",
			endpoint: postgres.Endpoint{Host: "db", Port: "5432", Username: "app", Password: "pw", Name: "camps"},
			want:     "postgres://app:pw@db:5432/camps?sslmode=disable",
		},
		{
			name:     "credentials are escaped",
			endpoint: postgres.Endpoint{Host: "db", Port: "5432", Username: "app", Password: "p@ss/word", Name: "camps", SSLMode: "require"},
			want:     "postgres://app:p%40ss%2Fword@db:5432/camps?sslmode=require",
		},
		{
			name:     "timezone and extra parameters",
			endpoint: postgres.Endpoint{Host: "db", Port: "5432", Username: "app", Password: "pw", Name: "camps", Timezone: "UTC"},
			extra:    url.Values{"x-migrations-table": {"schema_migrations"}},
			want:     "postgres://app:pw@db:5432/camps?TimeZone=UTC&sslmode=disable&x-migrations-table=schema_migrations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.endpoint.DSN(tt.extra))
		})
	}
}

func TestWriteEndpoint_AppliesPrefix(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "test_"
	cfg.DB.Postgres.Write.Name = "sportsassist"
	cfg.DB.Postgres.Read.Name = "sportsassist_replica"

	assert.Equal(t, "test_sportsassist", postgres.WriteEndpoint(cfg).Name)
	assert.Equal(t, "test_sportsassist_replica", postgres.ReadEndpoint(cfg).Name)
}
