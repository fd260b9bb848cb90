package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"sportsassist/infras/otel"
	"sportsassist/infras/postgres"
	"sportsassist/internal/domains/child/model"
	gDto "sportsassist/shared/dto"
	gRepo "sportsassist/shared/repository"
)

type Child interface {
	Insert(ctx context.Context, model model.Child) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Child, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Child, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Child]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Child {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Child](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
