package service

import (
	"context"
	"fmt"

	"sportsassist/config"
	"sportsassist/infras/otel"
	"sportsassist/infras/s3"
	"sportsassist/internal/domains/organization/model"
	"sportsassist/internal/domains/organization/model/dto"
	"sportsassist/internal/domains/organization/repository"
	"sportsassist/shared"
	"sportsassist/shared/cache"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetOrganization    = "organization:get"
	cacheGetAllOrganization = "organization:gets"
	cacheCountOrganization  = "organization:count"
)

type Organization interface {
	Create(ctx context.Context, req dto.CreateOrganizationRequest) (dto.OrganizationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetOrganizationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.OrganizationResponse, error)
	Update(ctx context.Context, req dto.UpdateOrganizationRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Organization
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Organization, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Organization {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateOrganizationRequest) (res dto.OrganizationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	logoURL, logoKey, err := s.uploadLogo(ctx, req.Logo != nil, func() (string, error) {
		return s.s3.UploadFile(ctx, model.EntityName, shared.ObjectFileName(req.Logo.Filename), req.LogoFile, req.Logo)
	})
	if err != nil {
		return res, err
	}

	organization := req.ToModel(user, logoURL)

	if err = s.ensureSlugAvailable(ctx, organization.Slug, constant.Empty); err != nil {
		s.deleteObject(ctx, logoKey)

		return res, err
	}

	if err = s.repo.Insert(ctx, organization); err != nil {
		s.deleteObject(ctx, logoKey)

		if shared.IsUniqueViolation(err) {
			return res, failure.Conflict("organization slug already in use")
		}

		log.Error().Err(err).Msg("failed to create organization")

		return res, fmt.Errorf("failed to create organization: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllOrganization)
		shared.InvalidateCaches(c, s.cache, cacheCountOrganization)
	}()

	res.FromModel(organization)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetOrganizationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !shared.ActorFromContext(ctx).IsSuperAdmin() {
		filter = gDto.FilterGroup{Filters: []any{filter, gDto.Filter{
			Field:    model.FieldActive,
			Value:    true,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		}}}
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllOrganization, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for organizations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count organizations")

		return res, fmt.Errorf("failed to count organizations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get organizations")

		return res, fmt.Errorf("failed to get organizations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save organizations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountOrganization, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count organizations")

		return res, fmt.Errorf("failed to count organizations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save organization count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.OrganizationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetOrganization, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for organization")

		return res, nil
	}

	organization, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get organization")

		return res, fmt.Errorf("failed to get organization: %w", err)
	}

	if organization.ID == constant.Empty {
		return res, failure.NotFound("organization not found") // nolint:wrapcheck
	}

	res.FromModel(organization)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save organization to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateOrganizationRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = shared.ActorFromContext(ctx).RequireOrganizationAdmin(id); err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check organization existence")

		return fmt.Errorf("failed to get organization: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("organization not found")
	}

	req.Normalize()

	if req.Slug != constant.Empty && req.Slug != current.Slug {
		if err = s.ensureSlugAvailable(ctx, req.Slug, id); err != nil {
			return err
		}
	}

	logoURL, logoKey, err := s.uploadLogo(ctx, req.Logo != nil, func() (string, error) {
		return s.s3.UploadFile(ctx, model.EntityName, shared.ObjectFileName(req.Logo.Filename), req.LogoFile, req.Logo)
	})
	if err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, user)
	if logoURL != constant.Empty {
		updatedFields[model.FieldLogoURL] = logoURL
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		s.deleteObject(ctx, logoKey)

		if shared.IsUniqueViolation(err) {
			return failure.Conflict("organization slug already in use")
		}

		log.Error().Err(err).Msg("failed to update organization")

		return fmt.Errorf("failed to update organization: %w", err)
	}

	if logoURL != constant.Empty && current.LogoURL != constant.Empty {
		s.deleteObject(ctx, s.s3.GetObjectNameFromURL(current.LogoURL))
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check organization existence")

		return fmt.Errorf("failed to get organization: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("organization not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		if shared.IsForeignKeyViolation(err) {
			return failure.Conflict("organization still has users or camps")
		}

		log.Error().Err(err).Msg("failed to delete organization")

		return fmt.Errorf("failed to delete organization: %w", err)
	}

	if current.LogoURL != constant.Empty {
		s.deleteObject(ctx, s.s3.GetObjectNameFromURL(current.LogoURL))
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) ensureSlugAvailable(ctx context.Context, slug, exceptID string) error {
	filter := gDto.FilterGroup{}
	filter.AddEq(model.TableName, model.FieldSlug, slug)

	if exceptID != constant.Empty {
		filter.Add(gDto.Filter{
			Field:    model.FieldID,
			Value:    exceptID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
	}

	exists, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check organization slug")

		return fmt.Errorf("failed to check organization slug: %w", err)
	}

	if exists {
		return failure.Conflict("organization slug already in use")
	}

	return nil
}

// uploadLogo runs upload when a logo was sent and returns its public URL
// together with the object key for cleanup.
func (s *serviceImpl) uploadLogo(ctx context.Context, hasLogo bool, upload func() (string, error)) (string, string, error) {
	if !hasLogo {
		return constant.Empty, constant.Empty, nil
	}

	if !s.s3.Enabled() {
		return constant.Empty, constant.Empty, failure.ServiceUnavailable("file storage is not configured")
	}

	key, err := upload()
	if err != nil {
		log.Error().Err(err).Msg("failed to upload organization logo")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload logo: %w", err)
	}

	return s.s3.PublicURL(key), key, nil
}

func (s *serviceImpl) deleteObject(ctx context.Context, key string) {
	if key == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to delete organization logo")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetOrganization, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete organization from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllOrganization)
		shared.InvalidateCaches(c, s.cache, cacheCountOrganization)
	}()
}
