package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"sportsassist/config"
	"sportsassist/infras/otel"
	"sportsassist/infras/postgres"
	"sportsassist/infras/s3"
	"sportsassist/internal/domains/camp/model"
	"sportsassist/internal/domains/camp/model/dto"
	"sportsassist/internal/domains/camp/repository"
	customFieldService "sportsassist/internal/domains/customfield/service"
	"sportsassist/shared"
	"sportsassist/shared/cache"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetCamp    = "camp:get"
	cacheGetAllCamp = "camp:gets"
	cacheCountCamp  = "camp:count"

	argVisibleOrganization = "visible_organization_id"
	argVisibleStatus       = "visible_status"
)

type Camp interface {
	Create(ctx context.Context, req dto.CreateCampRequest) (dto.CampResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCampsResponse, error)
	GetByOrganization(ctx context.Context, req gDto.QueryParams, organizationID string) (dto.GetCampsResponse, error)
	Get(ctx context.Context, id string) (dto.CampResponse, error)
	Update(ctx context.Context, req dto.UpdateCampRequest, id string) error
	Delete(ctx context.Context, id string) error
	RegistrationForm(ctx context.Context, id string) (dto.RegistrationFormResponse, error)
}

type serviceImpl struct {
	repo         repository.Camp
	customFields customFieldService.CustomField
	transactor   postgres.Transactor
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	s3           s3.S3
}

func New(
	repo repository.Camp,
	customFields customFieldService.CustomField,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) Camp {
	return &serviceImpl{
		repo:         repo,
		customFields: customFields,
		transactor:   transactor,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		s3:           s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCampRequest) (res dto.CampResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)

	organizationID := actor.OrganizationID
	if actor.IsSuperAdmin() {
		organizationID = req.OrganizationID
	}

	if organizationID == constant.Empty {
		return res, failure.BadRequestFromString("organization_id is required")
	}

	if err = actor.RequireOrganizationMember(organizationID); err != nil {
		return res, err
	}

	schedule, err := req.Schedule()
	if err != nil {
		return res, err
	}

	imageURL, imageKey, err := s.uploadImage(ctx, req.Image != nil, func() (string, error) {
		return s.s3.UploadFile(ctx, model.EntityName, shared.ObjectFileName(req.Image.Filename), req.ImageFile, req.Image)
	})
	if err != nil {
		return res, err
	}

	camp := req.ToModel(actor.UserID, organizationID, imageURL, schedule)

	if err = s.repo.Insert(ctx, camp); err != nil {
		s.deleteObject(ctx, imageKey)

		if shared.IsForeignKeyViolation(err) {
			return res, failure.NotFound("organization not found")
		}

		log.Error().Err(err).Msg("failed to create camp")

		return res, fmt.Errorf("failed to create camp: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllCamp)
		shared.InvalidateCaches(c, s.cache, cacheCountCamp)
	}()

	res.FromModel(camp)
	res.WithAvailability(0)

	return res, nil
}

// GetAll lists camps matching filter. Callers only see published camps plus
// every camp of their own organization.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCampsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter = visible(shared.ActorFromContext(ctx), filter)
	req.RestrictSort(model.TableName, constant.DefaultValueSortBy, model.FieldStartDate, model.FieldName, model.FieldPrice)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCamp, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for camps")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get camps")

		return res, fmt.Errorf("failed to get camps: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save camps to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByOrganization(ctx context.Context, req gDto.QueryParams, organizationID string) (dto.GetCampsResponse, error) {
	filter := gDto.FilterGroup{}
	filter.AddEq(model.TableName, model.FieldOrganizationID, organizationID)
	filter.AddEq(model.TableName, model.FieldStatus, constant.CampStatusPublished)

	return s.GetAll(ctx, req, filter)
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountCamp, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count camps")

		return res, fmt.Errorf("failed to count camps: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save camp count to cache")
		}
	}()

	return res, nil
}

// Get returns the camp with its live seat count. Unpublished camps are only
// visible to their organization.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CampResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.cached(ctx, id)
	if err != nil {
		return res, err
	}

	if res.Status != constant.CampStatusPublished && !shared.ActorFromContext(ctx).IsOrganizationMember(res.OrganizationID) {
		return dto.CampResponse{}, failure.NotFound("camp not found")
	}

	confirmed, err := s.repo.CountConfirmed(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to count camp registrations")

		return dto.CampResponse{}, fmt.Errorf("failed to count camp registrations: %w", err)
	}

	res.WithAvailability(confirmed)

	return res, nil
}

func (s *serviceImpl) cached(ctx context.Context, id string) (res dto.CampResponse, err error) {
	cacheKey := shared.BuildCacheKey(cacheGetCamp, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for camp")

		return res, nil
	}

	camp, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(camp)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save camp to cache")
		}
	}()

	return res, nil
}

// Update rechecks the request against the locked camp row, so capacity never
// drops below the registrations confirmed at commit time.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateCampRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return failure.BadRequestFromString("nothing to update")
	}

	actor := shared.ActorFromContext(ctx)

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = actor.RequireOrganizationMember(current.OrganizationID); err != nil {
		return err
	}

	if err = req.Apply(current); err != nil {
		return err
	}

	imageURL, imageKey, err := s.uploadImage(ctx, req.Image != nil, func() (string, error) {
		return s.s3.UploadFile(ctx, model.EntityName, shared.ObjectFileName(req.Image.Filename), req.ImageFile, req.Image)
	})
	if err != nil {
		return err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		locked, err := s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to lock camp: %w", err)
		}

		if locked.ID == constant.Empty {
			return failure.NotFound("camp not found")
		}

		if err = actor.RequireOrganizationMember(locked.OrganizationID); err != nil {
			return err
		}

		if err = req.Apply(locked); err != nil {
			return err
		}

		if req.Capacity != nil && *req.Capacity < locked.Capacity {
			confirmed, err := s.repo.CountConfirmedTx(ctx, tx, id)
			if err != nil {
				return fmt.Errorf("failed to count camp registrations: %w", err)
			}

			if *req.Capacity < confirmed {
				return failure.Conflict(fmt.Sprintf("capacity cannot be lower than the %d confirmed registrations", confirmed))
			}
		}

		fields := shared.TransformFields(req, actor.UserID)
		if imageURL != constant.Empty {
			fields[model.FieldImageURL] = imageURL
		}

		if err = s.repo.UpdateTx(ctx, tx, fields, filter); err != nil {
			return fmt.Errorf("failed to update camp: %w", err)
		}

		return nil
	})
	if err != nil {
		s.deleteObject(ctx, imageKey)

		log.Error().Err(err).Msg("failed to update camp")

		return err //nolint:wrapcheck
	}

	if imageURL != constant.Empty && current.ImageURL != constant.Empty {
		s.deleteObject(ctx, s.s3.GetObjectNameFromURL(current.ImageURL))
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = shared.ActorFromContext(ctx).RequireOrganizationAdmin(current.OrganizationID); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if shared.IsForeignKeyViolation(err) {
			return failure.Conflict("camp still has registrations, cancel it instead")
		}

		log.Error().Err(err).Msg("failed to delete camp")

		return fmt.Errorf("failed to delete camp: %w", err)
	}

	if current.ImageURL != constant.Empty {
		s.deleteObject(ctx, s.s3.GetObjectNameFromURL(current.ImageURL))
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) RegistrationForm(ctx context.Context, id string) (res dto.RegistrationFormResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RegistrationForm")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	camp, err := s.Get(ctx, id)
	if err != nil {
		return res, err
	}

	fields, err := s.customFields.GetActive(ctx, camp.OrganizationID)
	if err != nil {
		return res, fmt.Errorf("failed to get registration fields: %w", err)
	}

	res.Camp = camp
	res.CustomFields = fields.CustomFields

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Camp, error) {
	camp, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get camp")

		return camp, fmt.Errorf("failed to get camp: %w", err)
	}

	if camp.ID == constant.Empty {
		return camp, failure.NotFound("camp not found")
	}

	return camp, nil
}

// visible narrows filter to what actor may list.
func visible(actor shared.Actor, filter gDto.FilterGroup) gDto.FilterGroup {
	if actor.IsSuperAdmin() {
		return filter
	}

	scope := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorOr}
	scope.Add(gDto.Filter{
		ArgName:  argVisibleStatus,
		Field:    model.FieldStatus,
		Value:    constant.CampStatusPublished,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	})

	if actor.IsOrganizationMember(actor.OrganizationID) {
		scope.Add(gDto.Filter{
			ArgName:  argVisibleOrganization,
			Field:    model.FieldOrganizationID,
			Value:    actor.OrganizationID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	return gDto.FilterGroup{Filters: []any{filter, scope}}
}

// uploadImage runs upload when an image was sent and returns its public URL
// together with the object key for cleanup.
func (s *serviceImpl) uploadImage(ctx context.Context, hasImage bool, upload func() (string, error)) (string, string, error) {
	if !hasImage {
		return constant.Empty, constant.Empty, nil
	}

	if !s.s3.Enabled() {
		return constant.Empty, constant.Empty, failure.ServiceUnavailable("file storage is not configured")
	}

	key, err := upload()
	if err != nil {
		log.Error().Err(err).Msg("failed to upload camp image")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return s.s3.PublicURL(key), key, nil
}

func (s *serviceImpl) deleteObject(ctx context.Context, key string) {
	if key == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to delete camp image")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCamp, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete camp from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllCamp)
		shared.InvalidateCaches(c, s.cache, cacheCountCamp)
	}()
}
