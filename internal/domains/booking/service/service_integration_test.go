//go:build integration

package service_test

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"sportsassist/config"
	"sportsassist/helper"
	"sportsassist/infras/kafka"
	"sportsassist/infras/metrics"
	"sportsassist/infras/otel/mocks"
	"sportsassist/infras/postgres"
	"sportsassist/internal/domains/booking/model/dto"
	bookingRepository "sportsassist/internal/domains/booking/repository"
	"sportsassist/internal/domains/booking/service"
	childRepository "sportsassist/internal/domains/child/repository"
	slotRepository "sportsassist/internal/domains/slot/repository"
	"sportsassist/shared/constant"
	"sportsassist/shared/failure"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	testDatabase = "sportsassist"
	testUser     = "sportsassist"
	testPassword = "sportsassist"
)

func migrationsPath(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)

	return "file://" + filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations", "postgres")
}

func startPostgres(t *testing.T) *sqlx.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase(testDatabase),
		tcpostgres.WithUsername(testUser),
		tcpostgres.WithPassword(testPassword),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.DB.Postgres.MigrationPath = migrationsPath(t)
	cfg.DB.Postgres.Write.Host = host
	cfg.DB.Postgres.Write.Port = port.Port()
	cfg.DB.Postgres.Write.Username = testUser
	cfg.DB.Postgres.Write.Password = testPassword
	cfg.DB.Postgres.Write.Name = testDatabase

	require.NoError(t, helper.Up(cfg))

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	return db
}

type seed struct {
	parentID string
	slotID   string
	children []string
}

func seedSlot(t *testing.T, db *sqlx.DB, maxBookings, children int) seed {
	t.Helper()

	now := time.Now().UTC()
	orgID := uuid.NewString()
	staffID := uuid.NewString()
	s := seed{parentID: uuid.NewString(), slotID: uuid.NewString()}

	db.MustExec(`INSERT INTO organizations (id, name, slug) VALUES ($1, 'Riverside FC', $2)`, orgID, "riverside-"+orgID[:8])
	db.MustExec(`INSERT INTO users (id, organization_id, email, password, full_name, role) VALUES ($1, $2, $3, 'x', 'Coach Kim', 'staff')`,
		staffID, orgID, staffID+"@example.com")
	db.MustExec(`INSERT INTO users (id, email, password, full_name, role) VALUES ($1, $2, 'x', 'Dana Parent', 'parent')`,
		s.parentID, s.parentID+"@example.com")
	db.MustExec(`INSERT INTO availability_slots (id, organization_id, staff_id, title, start_time, end_time, max_bookings, status)
		VALUES ($1, $2, $3, 'Goalkeeper session', $4, $5, $6, 'open')`,
		s.slotID, orgID, staffID, now.Add(48*time.Hour), now.Add(49*time.Hour), maxBookings)

	for i := range children {
		childID := uuid.NewString()
		db.MustExec(`INSERT INTO children (id, parent_id, full_name, date_of_birth) VALUES ($1, $2, $3, '2016-04-01')`,
			childID, s.parentID, fmt.Sprintf("Child %d", i))
		s.children = append(s.children, childID)
	}

	return s
}

func newBookingService(db *sqlx.DB) service.Booking {
	conn := postgres.NewFromDB(db)
	otel := mocks.NewOtel()
	cfg := &config.Config{}

	return service.New(
		bookingRepository.New(conn, otel),
		slotRepository.New(conn, otel),
		childRepository.New(conn, otel),
		postgres.NewTransactor(conn),
		cfg,
		kafka.New(cfg, otel),
		metrics.New(cfg),
		otel,
	)
}

func parentContext(parentID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, parentID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleParent)
}

func TestBookingService_Create_ConcurrentBookingsRespectCapacity(t *testing.T) {
	db := startPostgres(t)

	const capacity = 3

	s := seedSlot(t, db, capacity, 10)
	svc := newBookingService(db)
	ctx := parentContext(s.parentID)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		booked    int
		conflicts int
	)

	for _, childID := range s.children {
		wg.Add(1)

		go func(childID string) {
			defer wg.Done()

			_, err := svc.Create(ctx, dto.CreateBookingRequest{ChildID: childID}, s.slotID)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				booked++
			case failure.GetCode(err) == http.StatusConflict:
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(childID)
	}

	wg.Wait()

	assert.Equal(t, capacity, booked)
	assert.Equal(t, len(s.children)-capacity, conflicts)

	var stored int
	require.NoError(t, db.Get(&stored,
		`SELECT COUNT(*) FROM slot_bookings WHERE slot_id = $1 AND status = 'confirmed'`, s.slotID))
	assert.Equal(t, capacity, stored)
}

func TestBookingService_CancelFreesSeat(t *testing.T) {
	db := startPostgres(t)

	s := seedSlot(t, db, 1, 2)
	svc := newBookingService(db)
	ctx := parentContext(s.parentID)

	first, err := svc.Create(ctx, dto.CreateBookingRequest{ChildID: s.children[0]}, s.slotID)
	require.NoError(t, err)

	_, err = svc.Create(ctx, dto.CreateBookingRequest{ChildID: s.children[0]}, s.slotID)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	_, err = svc.Create(ctx, dto.CreateBookingRequest{ChildID: s.children[1]}, s.slotID)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	cancelled, err := svc.Cancel(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, constant.BookingStatusCancelled, cancelled.Status)

	second, err := svc.Create(ctx, dto.CreateBookingRequest{ChildID: s.children[1]}, s.slotID)
	require.NoError(t, err)
	assert.Equal(t, constant.BookingStatusConfirmed, second.Status)
}
