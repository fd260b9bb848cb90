package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"sportsassist/config"
	"sportsassist/infras/otel"
	"sportsassist/infras/postgres"
	"sportsassist/internal/domains/customfield/model"
	"sportsassist/internal/domains/customfield/model/dto"
	"sportsassist/internal/domains/customfield/repository"
	"sportsassist/shared"
	"sportsassist/shared/cache"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetCustomField    = "customfield:get"
	cacheGetAllCustomField = "customfield:gets"

	scopeAll    = "all"
	scopeActive = "active"
)

type CustomField interface {
	Create(ctx context.Context, req dto.CreateCustomFieldRequest, organizationID string) (dto.CustomFieldResponse, error)
	GetAll(ctx context.Context, organizationID string) (dto.GetCustomFieldsResponse, error)
	GetActive(ctx context.Context, organizationID string) (dto.GetCustomFieldsResponse, error)
	Get(ctx context.Context, id string) (dto.CustomFieldResponse, error)
	Update(ctx context.Context, req dto.UpdateCustomFieldRequest, id string) error
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, req dto.ReorderCustomFieldsRequest, organizationID string) error
}

type serviceImpl struct {
	repo       repository.CustomField
	transactor postgres.Transactor
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(repo repository.CustomField, transactor postgres.Transactor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) CustomField {
	return &serviceImpl{
		repo:       repo,
		transactor: transactor,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCustomFieldRequest, organizationID string) (res dto.CustomFieldResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)

	if err = actor.RequireOrganizationAdmin(organizationID); err != nil {
		return res, err
	}

	if err = req.CheckOptions(); err != nil {
		return res, err
	}

	displayOrder := 0
	if req.DisplayOrder != nil {
		displayOrder = *req.DisplayOrder
	} else {
		displayOrder, err = s.repo.Count(ctx, shared.FilterByID(organizationID, model.FieldOrganizationID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to count custom fields")

			return res, fmt.Errorf("failed to count custom fields: %w", err)
		}
	}

	field := req.ToModel(actor.UserID, organizationID, displayOrder)

	if err = s.repo.Insert(ctx, field); err != nil {
		if shared.IsForeignKeyViolation(err) {
			return res, failure.NotFound("organization not found")
		}

		log.Error().Err(err).Msg("failed to create custom field")

		return res, fmt.Errorf("failed to create custom field: %w", err)
	}

	s.invalidate(ctx, organizationID)

	res.FromModel(field)

	return res, nil
}

// GetAll lists every field of an organization, including inactive ones, for
// the form builder. Callers outside the organization get the active fields.
func (s *serviceImpl) GetAll(ctx context.Context, organizationID string) (res dto.GetCustomFieldsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !shared.ActorFromContext(ctx).IsOrganizationMember(organizationID) {
		return s.list(ctx, organizationID, true)
	}

	return s.list(ctx, organizationID, false)
}

// GetActive lists the fields shown on a registration form, in display order.
func (s *serviceImpl) GetActive(ctx context.Context, organizationID string) (res dto.GetCustomFieldsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetActive")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, organizationID, true)
}

func (s *serviceImpl) list(ctx context.Context, organizationID string, activeOnly bool) (res dto.GetCustomFieldsResponse, err error) {
	listScope := scopeAll
	filter := shared.FilterByID(organizationID, model.FieldOrganizationID, model.TableName)

	if activeOnly {
		listScope = scopeActive
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Value:    true,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	cacheKey := shared.BuildCacheKey(cacheGetAllCustomField, organizationID, listScope)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for custom fields")

		return res, nil
	}

	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldDisplayOrder, SortDir: gDto.SortDirAsc}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get custom fields")

		return res, fmt.Errorf("failed to get custom fields: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save custom fields to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CustomFieldResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)
	cacheKey := shared.BuildCacheKey(cacheGetCustomField, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr != nil {
		field, err := s.find(ctx, id)
		if err != nil {
			return res, err
		}

		res.FromModel(field)

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save custom field to cache")
			}
		}()
	}

	if !res.Active && !actor.IsOrganizationMember(res.OrganizationID) {
		return dto.CustomFieldResponse{}, failure.NotFound("custom field not found")
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateCustomFieldRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	actor := shared.ActorFromContext(ctx)

	field, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = actor.RequireOrganizationAdmin(field.OrganizationID); err != nil {
		return err
	}

	if err = req.Normalize(field.FieldType); err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, actor.UserID)

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update custom field")

		return fmt.Errorf("failed to update custom field: %w", err)
	}

	s.invalidate(ctx, field.OrganizationID, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	field, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = shared.ActorFromContext(ctx).RequireOrganizationAdmin(field.OrganizationID); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if shared.IsForeignKeyViolation(err) {
			return failure.Conflict("custom field already has answers, deactivate it instead")
		}

		log.Error().Err(err).Msg("failed to delete custom field")

		return fmt.Errorf("failed to delete custom field: %w", err)
	}

	s.invalidate(ctx, field.OrganizationID, id)

	return nil
}

// Reorder sets display_order to the position of each id in the request. Every
// id must belong to the organization; fields left out keep their order.
func (s *serviceImpl) Reorder(ctx context.Context, req dto.ReorderCustomFieldsRequest, organizationID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reorder")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)

	if err = actor.RequireOrganizationAdmin(organizationID); err != nil {
		return err
	}

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		existing, err := s.repo.GetAllTx(ctx, tx, gDto.QueryParams{}, shared.FilterByID(organizationID, model.FieldOrganizationID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to get custom fields: %w", err)
		}

		owned := make(map[string]bool, len(existing))
		for _, field := range existing {
			owned[field.ID] = true
		}

		for position, id := range req.FieldIDs {
			if !owned[id] {
				return failure.BadRequestFromString(fmt.Sprintf("custom field %s does not belong to this organization", id))
			}

			updatedFields := shared.TransformFields(struct {
				DisplayOrder *int `db:"display_order"`
			}{&position}, actor.UserID)

			if err := s.repo.UpdateTx(ctx, tx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
				return fmt.Errorf("failed to update display order: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to reorder custom fields")

		return err
	}

	s.invalidate(ctx, organizationID, req.FieldIDs...)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.CustomField, error) {
	field, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get custom field")

		return field, fmt.Errorf("failed to get custom field: %w", err)
	}

	if field.ID == constant.Empty {
		return field, failure.NotFound("custom field not found")
	}

	return field, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, organizationID string, ids ...string) {
	go func() {
		c := context.WithoutCancel(ctx)

		for _, id := range ids {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCustomField, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete custom field from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetAllCustomField, organizationID))
	}()
}
