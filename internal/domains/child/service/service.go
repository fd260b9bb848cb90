package service

import (
	"context"
	"fmt"

	"sportsassist/infras/otel"
	"sportsassist/internal/domains/child/model"
	"sportsassist/internal/domains/child/model/dto"
	"sportsassist/internal/domains/child/repository"
	"sportsassist/shared"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/failure"

	"github.com/rs/zerolog/log"
)

// Child manages the children a parent registers for camps. Parents only see
// their own children; staff reach child details through camp rosters.
type Child interface {
	Create(ctx context.Context, req dto.CreateChildRequest) (dto.ChildResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetChildrenResponse, error)
	Get(ctx context.Context, id string) (dto.ChildResponse, error)
	Update(ctx context.Context, req dto.UpdateChildRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo repository.Child
	otel otel.Otel
}

func New(repo repository.Child, otel otel.Otel) Child {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateChildRequest) (res dto.ChildResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)

	switch {
	case actor.IsParent():
		req.ParentID = actor.UserID
	case actor.IsSuperAdmin():
		if req.ParentID == constant.Empty {
			return res, failure.BadRequestFromString("parent_id is required")
		}
	default:
		return res, failure.Forbidden("only parents can add children")
	}

	dateOfBirth, err := dto.ParseDateOfBirth(req.DateOfBirth)
	if err != nil {
		return res, err
	}

	child := req.ToModel(actor.UserID, dateOfBirth)

	if err = s.repo.Insert(ctx, child); err != nil {
		if shared.IsForeignKeyViolation(err) {
			return res, failure.NotFound("parent not found")
		}

		log.Error().Err(err).Msg("failed to create child")

		return res, fmt.Errorf("failed to create child: %w", err)
	}

	res.FromModel(child)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetChildrenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)

	switch {
	case actor.IsParent():
		scoped := gDto.FilterGroup{Filters: []any{filter}}
		scoped.AddEq(model.TableName, model.FieldParentID, actor.UserID)
		filter = scoped
	case !actor.IsSuperAdmin():
		return res, failure.ResourceRestrictedError
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count children")

		return res, fmt.Errorf("failed to count children: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get children")

		return res, fmt.Errorf("failed to get children: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ChildResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	child, err := s.owned(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(child)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateChildRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	if _, err = s.owned(ctx, id); err != nil {
		return err
	}

	if err = req.Normalize(); err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, shared.ActorFromContext(ctx).UserID)

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update child")

		return fmt.Errorf("failed to update child: %w", err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.owned(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if shared.IsForeignKeyViolation(err) {
			return failure.Conflict("child has registrations or bookings")
		}

		log.Error().Err(err).Msg("failed to delete child")

		return fmt.Errorf("failed to delete child: %w", err)
	}

	return nil
}

// owned loads a child and checks the caller is its parent or a superadmin.
func (s *serviceImpl) owned(ctx context.Context, id string) (model.Child, error) {
	child, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get child")

		return child, fmt.Errorf("failed to get child: %w", err)
	}

	if child.ID == constant.Empty {
		return child, failure.NotFound("child not found")
	}

	if !shared.ActorFromContext(ctx).CanAccessParentData(child.ParentID) {
		return child, failure.ResourceRestrictedError
	}

	return child, nil
}
