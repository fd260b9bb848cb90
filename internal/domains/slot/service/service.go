package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"sportsassist/infras/otel"
	"sportsassist/infras/postgres"
	bookingModel "sportsassist/internal/domains/booking/model"
	bookingRepository "sportsassist/internal/domains/booking/repository"
	campModel "sportsassist/internal/domains/camp/model"
	campRepository "sportsassist/internal/domains/camp/repository"
	"sportsassist/internal/domains/slot/model"
	"sportsassist/internal/domains/slot/model/dto"
	"sportsassist/internal/domains/slot/repository"
	userModel "sportsassist/internal/domains/user/model"
	userRepository "sportsassist/internal/domains/user/repository"
	"sportsassist/shared"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	argVisibleStatus       = "visible_status"
	argVisibleOrganization = "visible_organization_id"
)

type Slot interface {
	Create(ctx context.Context, req dto.CreateSlotRequest) (dto.SlotResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSlotsResponse, error)
	Get(ctx context.Context, id string) (dto.SlotResponse, error)
	Update(ctx context.Context, req dto.UpdateSlotRequest, id string) (dto.SlotResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Slot
	bookings   bookingRepository.Booking
	camps      campRepository.Camp
	users      userRepository.User
	transactor postgres.Transactor
	otel       otel.Otel
}

func New(
	repo repository.Slot,
	bookings bookingRepository.Booking,
	camps campRepository.Camp,
	users userRepository.User,
	transactor postgres.Transactor,
	otel otel.Otel,
) Slot {
	return &serviceImpl{
		repo:       repo,
		bookings:   bookings,
		camps:      camps,
		users:      users,
		transactor: transactor,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateSlotRequest) (res dto.SlotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)

	organizationID := actor.OrganizationID
	if actor.IsSuperAdmin() {
		organizationID = req.OrganizationID
	}

	if err = actor.RequireOrganizationMember(organizationID); err != nil {
		return res, err
	}

	if organizationID == constant.Empty {
		return res, failure.BadRequestFromString("organization_id is required")
	}

	start, end, err := req.Window()
	if err != nil {
		return res, err
	}

	if req.CampID != constant.Empty {
		if err = s.checkCamp(ctx, req.CampID, organizationID); err != nil {
			return res, err
		}
	}

	staffID := req.StaffID
	if staffID == constant.Empty {
		staffID = actor.UserID
	} else if err = s.checkStaff(ctx, staffID, organizationID); err != nil {
		return res, err
	}

	slot := req.ToModel(actor.UserID, organizationID, staffID, start, end)

	if err = s.repo.Insert(ctx, slot); err != nil {
		if shared.IsForeignKeyViolation(err) {
			return res, failure.NotFound("organization not found")
		}

		log.Error().Err(err).Msg("failed to create slot")

		return res, fmt.Errorf("failed to create slot: %w", err)
	}

	res.FromModel(slot)
	res.WithAvailability(0)

	return res, nil
}

// GetAll lists open slots of every organization plus all slots of the
// caller's own organization.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter = visible(shared.ActorFromContext(ctx), filter)
	req.RestrictSort(model.TableName, constant.DefaultValueSortBy, model.FieldStartTime)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count slots")

		return res, fmt.Errorf("failed to count slots: %w", err)
	}

	slots, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get slots")

		return res, fmt.Errorf("failed to get slots: %w", err)
	}

	res.FromModels(slots, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.SlotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	slot, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if slot.Status != constant.SlotStatusOpen && !shared.ActorFromContext(ctx).IsOrganizationMember(slot.OrganizationID) {
		return res, failure.NotFound("slot not found")
	}

	confirmed, err := s.repo.CountConfirmed(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to count slot bookings")

		return res, fmt.Errorf("failed to count slot bookings: %w", err)
	}

	res.FromModel(slot)
	res.WithAvailability(confirmed)

	return res, nil
}

// Update locks the slot so max_bookings is never set below the bookings
// confirmed at commit time.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateSlotRequest, id string) (res dto.SlotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("update request cannot be empty")
	}

	actor := shared.ActorFromContext(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	var (
		slot      model.Slot
		confirmed int
	)

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		slot, err = s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to lock slot: %w", err)
		}

		if slot.ID == constant.Empty {
			return failure.NotFound("slot not found")
		}

		if err = actor.RequireOrganizationMember(slot.OrganizationID); err != nil {
			return err
		}

		if err = req.Apply(slot); err != nil {
			return err
		}

		confirmed, err = s.bookings.CountTx(ctx, tx, confirmedBookings(id))
		if err != nil {
			return fmt.Errorf("failed to count slot bookings: %w", err)
		}

		if req.MaxBookings != nil && *req.MaxBookings < confirmed {
			return failure.Conflict(fmt.Sprintf("max_bookings cannot be lower than the %d confirmed bookings", confirmed))
		}

		if err = s.repo.UpdateTx(ctx, tx, shared.TransformFields(req, actor.UserID), filter); err != nil {
			return fmt.Errorf("failed to update slot: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update slot")

		return res, err //nolint:wrapcheck
	}

	res.FromModel(merge(slot, req))
	res.WithAvailability(confirmed)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	slot, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = shared.ActorFromContext(ctx).RequireOrganizationMember(slot.OrganizationID); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if shared.IsForeignKeyViolation(err) {
			return failure.Conflict("slot has bookings, cancel it instead")
		}

		log.Error().Err(err).Msg("failed to delete slot")

		return fmt.Errorf("failed to delete slot: %w", err)
	}

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Slot, error) {
	slot, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get slot")

		return slot, fmt.Errorf("failed to get slot: %w", err)
	}

	if slot.ID == constant.Empty {
		return slot, failure.NotFound("slot not found")
	}

	return slot, nil
}

func (s *serviceImpl) checkCamp(ctx context.Context, campID, organizationID string) error {
	camp, err := s.camps.Get(ctx, shared.FilterByID(campID, campModel.FieldID, campModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get camp")

		return fmt.Errorf("failed to get camp: %w", err)
	}

	if camp.ID == constant.Empty || camp.OrganizationID != organizationID {
		return failure.BadRequestFromString("camp_id does not belong to the organization")
	}

	return nil
}

func (s *serviceImpl) checkStaff(ctx context.Context, staffID, organizationID string) error {
	user, err := s.users.Get(ctx, shared.FilterByID(staffID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff user")

		return fmt.Errorf("failed to get staff user: %w", err)
	}

	if user.ID == constant.Empty || user.Organization() != organizationID || user.Role == constant.RoleParent {
		return failure.BadRequestFromString("staff_id must be a staff member of the organization")
	}

	return nil
}

func confirmedBookings(slotID string) gDto.FilterGroup {
	return shared.FilterEq(bookingModel.TableName, map[string]any{
		bookingModel.FieldSlotID: slotID,
		bookingModel.FieldStatus: constant.BookingStatusConfirmed,
	})
}

func merge(slot model.Slot, req dto.UpdateSlotRequest) model.Slot {
	if req.Title != constant.Empty {
		slot.Title = req.Title
	}

	if req.StartTimeValue != nil {
		slot.StartTime = *req.StartTimeValue
	}

	if req.EndTimeValue != nil {
		slot.EndTime = *req.EndTimeValue
	}

	if req.Location != constant.Empty {
		slot.Location = req.Location
	}

	if req.MaxBookings != nil {
		slot.MaxBookings = *req.MaxBookings
	}

	if req.Status != constant.Empty {
		slot.Status = req.Status
	}

	if req.Notes != constant.Empty {
		slot.Notes = req.Notes
	}

	return slot
}

func visible(actor shared.Actor, filter gDto.FilterGroup) gDto.FilterGroup {
	if actor.IsSuperAdmin() {
		return filter
	}

	scope := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorOr}
	scope.Add(gDto.Filter{
		ArgName:  argVisibleStatus,
		Field:    model.FieldStatus,
		Value:    constant.SlotStatusOpen,
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
