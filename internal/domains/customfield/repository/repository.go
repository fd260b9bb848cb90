package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"sportsassist/infras/otel"
	"sportsassist/infras/postgres"
	"sportsassist/internal/domains/customfield/model"
	gDto "sportsassist/shared/dto"
	gRepo "sportsassist/shared/repository"

	"github.com/jmoiron/sqlx"
)

type CustomField interface {
	Insert(ctx context.Context, model model.CustomField) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.CustomField, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.CustomField, error)
	GetAllTx(ctx context.Context, sqltx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.CustomField, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

// Answer stores registration responses. Reads return AnswerDetail rows joined
// with their field.
type Answer interface {
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.Answer) error
	GetDetails(ctx context.Context, filter gDto.FilterGroup) ([]model.AnswerDetail, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.CustomField]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) CustomField {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.CustomField](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type answerRepositoryImpl struct {
	gRepo.Repository[model.Answer]
	details gRepo.Repository[model.AnswerDetail]
}

func NewAnswer(db *postgres.Connection, otel otel.Otel) Answer {
	return &answerRepositoryImpl{
		Repository: gRepo.NewRepository[model.Answer](model.AnswerEntityName, model.AnswerTableName, model.AnswerFieldID, db, otel),
		details:    gRepo.NewRepository[model.AnswerDetail](model.AnswerEntityName, model.AnswerTableName, model.AnswerFieldID, db, otel),
	}
}

func (r *answerRepositoryImpl) GetDetails(ctx context.Context, filter gDto.FilterGroup) ([]model.AnswerDetail, error) {
	return r.details.GetAll(ctx, gDto.QueryParams{SortBy: model.TableName + "." + model.FieldDisplayOrder, SortDir: gDto.SortDirAsc}, filter) //nolint:wrapcheck
}
