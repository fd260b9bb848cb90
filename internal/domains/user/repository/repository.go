package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sportsassist/infras/otel"
	"sportsassist/infras/postgres"
	"sportsassist/internal/domains/user/model"
	"sportsassist/shared"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	gRepo "sportsassist/shared/repository"
)

type User interface {
	Insert(ctx context.Context, model model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	RecordLogin(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

// NormalizeEmail is the stored form of an email address. The unique index is
// on LOWER(email), so lookups must use the same form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func byEmail(email string) gDto.FilterGroup {
	return shared.FilterByID(NormalizeEmail(email), model.FieldEmail, model.TableName)
}

// GetByEmail returns the zero User when no account has the address.
func (r *repositoryImpl) GetByEmail(ctx context.Context, email string) (model.User, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.GetByEmail")
	defer scope.End()

	return r.Get(ctx, byEmail(email))
}

func (r *repositoryImpl) EmailTaken(ctx context.Context, email string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.EmailTaken")
	defer scope.End()

	return r.Exist(ctx, byEmail(email))
}

// RecordLogin stamps last_login. The user is recorded as the modifier.
func (r *repositoryImpl) RecordLogin(ctx context.Context, id string, at time.Time) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.RecordLogin")
	defer scope.End()

	fields := map[string]any{
		model.FieldLastLogin:     at,
		constant.FieldModifiedAt: at,
		constant.FieldModifiedBy: id,
	}

	if err := r.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to record login: %w", err)
	}

	return nil
}
