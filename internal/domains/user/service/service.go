package service

import (
	"context"
	"fmt"

	"sportsassist/config"
	"sportsassist/infras/otel"
	"sportsassist/internal/domains/user/model"
	"sportsassist/internal/domains/user/model/dto"
	"sportsassist/internal/domains/user/repository"
	"sportsassist/shared"
	"sportsassist/shared/cache"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/failure"
	"sportsassist/shared/password"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser    = "user:get"
	cacheGetAllUser = "user:gets"
	cacheCountUser  = "user:count"
)

type User interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	Update(ctx context.Context, req dto.UpdateUserRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) User {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUserRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)

	if err = authorizeCreate(actor, &req); err != nil {
		return res, err
	}

	req.Email = repository.NormalizeEmail(req.Email)

	exists, err := s.repo.EmailTaken(ctx, req.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.Conflict("email already registered")
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToModel(actor.UserID, hashedPassword)

	if err = s.repo.Insert(ctx, user); err != nil {
		if shared.IsUniqueViolation(err) {
			return res, failure.Conflict("email already registered")
		}

		if shared.IsForeignKeyViolation(err) {
			return res, failure.NotFound("organization not found")
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
		shared.InvalidateCaches(c, s.cache, cacheCountUser)
	}()

	res.FromModel(user)

	return res, nil
}

// authorizeCreate lets superadmins create any account and admins create
// staff or admins inside their own organization only.
func authorizeCreate(actor shared.Actor, req *dto.CreateUserRequest) error {
	switch {
	case actor.IsSuperAdmin():
	case actor.Role == constant.RoleAdmin:
		if req.Role != constant.RoleAdmin && req.Role != constant.RoleStaff {
			return failure.Forbidden("admins can only create admin or staff accounts")
		}

		if req.OrganizationID != constant.Empty && req.OrganizationID != actor.OrganizationID {
			return failure.ResourceRestrictedError
		}

		req.OrganizationID = actor.OrganizationID
	default:
		return failure.ForbiddenError
	}

	needsOrganization := req.Role == constant.RoleAdmin || req.Role == constant.RoleStaff

	if needsOrganization && req.OrganizationID == constant.Empty {
		return failure.BadRequestFromString("organization_id is required for admin and staff accounts")
	}

	if !needsOrganization {
		req.OrganizationID = constant.Empty
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)

	if !actor.IsSuperAdmin() {
		if err = actor.RequireOrganizationMember(actor.OrganizationID); err != nil {
			return res, err
		}

		scoped := gDto.FilterGroup{Filters: []any{filter}}
		scoped.AddEq(model.TableName, model.FieldOrganizationID, actor.OrganizationID)
		filter = scoped
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUser, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for users")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save users to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountUser, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)
	cacheKey := shared.BuildCacheKey(cacheGetUser, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user")

		if err = canView(actor, res.ID, res.OrganizationID); err != nil {
			return dto.UserResponse{}, err
		}

		return res, nil
	}

	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound("user not found")
	}

	if err = canView(actor, user.ID, user.Organization()); err != nil {
		return res, err
	}

	res.FromModel(user)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user to cache")
		}
	}()

	return res, nil
}

func canView(actor shared.Actor, userID, organizationID string) error {
	if actor.UserID == userID || actor.IsSuperAdmin() {
		return nil
	}

	if organizationID == constant.Empty {
		return failure.ResourceRestrictedError
	}

	return actor.RequireOrganizationMember(organizationID)
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateUserRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateUserRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	actor := shared.ActorFromContext(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	target, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if target.ID == constant.Empty {
		return failure.NotFound("user not found")
	}

	if err = authorizeUpdate(actor, target, req); err != nil {
		return err
	}

	req.Normalize()

	updatedFields := shared.TransformFields(req, actor.UserID)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update user")

		return fmt.Errorf("failed to update user: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func authorizeUpdate(actor shared.Actor, target model.User, req dto.UpdateUserRequest) error {
	if actor.IsSuperAdmin() {
		return nil
	}

	if !req.IsAdministrative() {
		if actor.UserID == target.ID {
			return nil
		}

		return actor.RequireOrganizationAdmin(target.Organization())
	}

	if actor.UserID == target.ID {
		return failure.Forbidden("you cannot change your own role or status")
	}

	if target.Organization() == constant.Empty {
		return failure.ResourceRestrictedError
	}

	if err := actor.RequireOrganizationAdmin(target.Organization()); err != nil {
		return err
	}

	if req.Role != constant.Empty && req.Role != constant.RoleAdmin && req.Role != constant.RoleStaff {
		return failure.Forbidden("admins can only assign admin or staff roles")
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	target, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if target.ID == constant.Empty {
		return failure.NotFound("user not found")
	}

	if target.ID == actor.UserID {
		return failure.Forbidden("you cannot delete your own account")
	}

	if !actor.IsSuperAdmin() {
		if target.Organization() == constant.Empty {
			return failure.ResourceRestrictedError
		}

		if err = actor.RequireOrganizationAdmin(target.Organization()); err != nil {
			return err
		}
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		if shared.IsForeignKeyViolation(err) {
			return failure.Conflict("user still owns children, registrations or slots")
		}

		log.Error().Err(err).Msg("failed to delete user")

		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete user from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
		shared.InvalidateCaches(c, s.cache, cacheCountUser)
	}()
}
