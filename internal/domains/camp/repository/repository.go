package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"sportsassist/infras/otel"
	"sportsassist/infras/postgres"
	"sportsassist/internal/domains/camp/model"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/logger"
	gRepo "sportsassist/shared/repository"

	"github.com/jmoiron/sqlx"
)

const queryCountConfirmed = `SELECT COUNT(id) FROM registrations WHERE camp_id = $1 AND status = $2`

type Camp interface {
	Insert(ctx context.Context, model model.Camp) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Camp, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (model.Camp, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Camp, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	CountConfirmed(ctx context.Context, campID string) (int, error)
	CountConfirmedTx(ctx context.Context, sqltx *sqlx.Tx, campID string) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Camp]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Camp {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Camp](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// CountConfirmed returns the number of seats taken in the camp.
func (r *repositoryImpl) CountConfirmed(ctx context.Context, campID string) (int, error) {
	return r.countConfirmed(ctx, r.db.Read, "CountConfirmed", campID)
}

// CountConfirmedTx counts inside tx, so the result holds for as long as the
// camp row stays locked.
func (r *repositoryImpl) CountConfirmedTx(ctx context.Context, sqltx *sqlx.Tx, campID string) (int, error) {
	return r.countConfirmed(ctx, sqltx, "CountConfirmedTx", campID)
}

func (r *repositoryImpl) countConfirmed(ctx context.Context, q sqlx.QueryerContext, op, campID string) (int, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".camp."+op)
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryCountConfirmed)

	var count int

	if err := sqlx.GetContext(ctx, q, &count, queryCountConfirmed, campID, constant.RegistrationStatusConfirmed); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count confirmed registrations: %w", err)
	}

	return count, nil
}
