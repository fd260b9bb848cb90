package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sportsassist/config"
	"sportsassist/infras/kafka"
	"sportsassist/infras/metrics"
	"sportsassist/infras/otel"
	"sportsassist/infras/postgres"
	"sportsassist/internal/domains/booking/model"
	"sportsassist/internal/domains/booking/model/dto"
	"sportsassist/internal/domains/booking/repository"
	childModel "sportsassist/internal/domains/child/model"
	childRepository "sportsassist/internal/domains/child/repository"
	slotModel "sportsassist/internal/domains/slot/model"
	slotRepository "sportsassist/internal/domains/slot/repository"
	"sportsassist/shared"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/failure"
	"sportsassist/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var (
	errSlotClosed       = failure.WithReason(failure.BadRequestFromString("slot is not open for booking"), constant.ReasonSlotClosed)
	errSlotFull         = failure.WithReason(failure.Conflict("slot is fully booked"), constant.ReasonSlotFull)
	errDuplicateBooking = failure.WithReason(failure.Conflict("child already holds a booking for this slot"), constant.ReasonDuplicateBooking)
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest, slotID string) (dto.BookingResponse, error)
	GetBySlot(ctx context.Context, req gDto.QueryParams, slotID string) (dto.GetBookingsResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	Cancel(ctx context.Context, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo       repository.Booking
	slots      slotRepository.Slot
	children   childRepository.Child
	transactor postgres.Transactor
	cfg        *config.Config
	kafka      kafka.Client
	metrics    metrics.Metrics
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	slots slotRepository.Slot,
	children childRepository.Child,
	transactor postgres.Transactor,
	cfg *config.Config,
	kafka kafka.Client,
	metrics metrics.Metrics,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		slots:      slots,
		children:   children,
		transactor: transactor,
		cfg:        cfg,
		kafka:      kafka,
		metrics:    metrics,
		otel:       otel,
	}
}

// Create books a child into a slot. The slot row stays locked until commit,
// so concurrent bookings see each other's confirmed rows.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest, slotID string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)

	child, err := s.children.Get(ctx, shared.FilterByID(req.ChildID, childModel.FieldID, childModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get child")

		return res, fmt.Errorf("failed to get child: %w", err)
	}

	if child.ID == constant.Empty || !actor.CanAccessParentData(child.ParentID) {
		return res, failure.NotFound("child not found")
	}

	var booking model.Booking

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		slot, err := s.lockSlot(ctx, tx, slotID)
		if err != nil {
			return err
		}

		if !slot.Bookable(timezone.Now()) {
			return errSlotClosed
		}

		held, err := s.repo.CountTx(ctx, tx, shared.FilterEq(model.TableName, map[string]any{
			model.FieldSlotID:  slotID,
			model.FieldChildID: req.ChildID,
			model.FieldStatus:  constant.BookingStatusConfirmed,
		}))
		if err != nil {
			return fmt.Errorf("failed to check existing booking: %w", err)
		}

		if held > 0 {
			return errDuplicateBooking
		}

		confirmed, err := s.repo.CountTx(ctx, tx, confirmedBookings(slotID))
		if err != nil {
			return fmt.Errorf("failed to count slot bookings: %w", err)
		}

		if confirmed >= slot.MaxBookings {
			return errSlotFull
		}

		booking = req.ToModel(actor.UserID, slotID, child.ParentID)

		if err = s.repo.InsertTx(ctx, tx, booking); err != nil {
			if shared.IsUniqueViolation(err) {
				return errDuplicateBooking
			}

			return fmt.Errorf("failed to insert booking: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, errSlotFull) {
			s.metrics.Booking(metrics.OutcomeRejected)
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, err //nolint:wrapcheck
	}

	s.metrics.Booking(metrics.OutcomeConfirmed)
	s.publish(ctx, kafka.EventSlotBookingCreated, booking, actor.UserID)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetBySlot(ctx context.Context, req gDto.QueryParams, slotID string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBySlot")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	slot, err := s.slots.Get(ctx, shared.FilterByID(slotID, slotModel.FieldID, slotModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get slot")

		return res, fmt.Errorf("failed to get slot: %w", err)
	}

	if slot.ID == constant.Empty {
		return res, failure.NotFound("slot not found")
	}

	if err = shared.ActorFromContext(ctx).RequireOrganizationMember(slot.OrganizationID); err != nil {
		return res, err
	}

	return s.list(ctx, req, shared.FilterByID(slotID, model.FieldSlotID, model.TableName))
}

// GetAll lists the caller's bookings: parents see their own, staff see their
// organization's.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)

	var filter gDto.FilterGroup

	switch {
	case actor.IsSuperAdmin():
	case actor.IsParent():
		filter.AddEq(model.TableName, model.FieldParentID, actor.UserID)
	case actor.IsOrganizationMember(actor.OrganizationID):
		filter.AddEq(model.SlotTableName, model.SlotFieldOrganization, actor.OrganizationID)
	default:
		return res, failure.ResourceRestrictedError
	}

	return s.list(ctx, req, filter)
}

// Cancel releases the seat held by a confirmed booking.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if current.ID == constant.Empty {
		return res, failure.NotFound("booking not found")
	}

	var booking model.Booking

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		slot, err := s.lockSlot(ctx, tx, current.SlotID)
		if err != nil {
			return err
		}

		booking, err = s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if !actor.CanAccessParentData(booking.ParentID) && !actor.IsOrganizationMember(slot.OrganizationID) {
			return failure.NotFound("booking not found")
		}

		if !booking.Confirmed() {
			return failure.Conflict("booking is already cancelled")
		}

		fields := shared.TransformFields(dto.CancelBookingRequest{Status: constant.BookingStatusCancelled}, actor.UserID)

		if err = s.repo.UpdateTx(ctx, tx, fields, filter); err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}

		booking.Status = constant.BookingStatusCancelled
		modifiedAt, _ := fields[constant.FieldModifiedAt].(time.Time)
		booking.Touch(actor.UserID, modifiedAt)

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return res, err //nolint:wrapcheck
	}

	s.metrics.Booking(metrics.OutcomeCancelled)
	s.publish(ctx, kafka.EventSlotBookingCancelled, booking, actor.UserID)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	req.RestrictSort(model.TableName, constant.DefaultValueSortBy)

	total, err := s.repo.CountDetails(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	details, err := s.repo.GetDetails(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(details, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) lockSlot(ctx context.Context, tx *sqlx.Tx, slotID string) (slotModel.Slot, error) {
	slot, err := s.slots.GetForUpdateTx(ctx, tx, shared.FilterByID(slotID, slotModel.FieldID, slotModel.TableName))
	if err != nil {
		return slot, fmt.Errorf("failed to lock slot: %w", err)
	}

	if slot.ID == constant.Empty {
		return slot, failure.NotFound("slot not found")
	}

	return slot, nil
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, booking model.Booking, by string) {
	event := dto.NewEvent(booking, by)

	go kafka.Publish(context.WithoutCancel(ctx), s.kafka, s.cfg.External.Kafka.Topics.SlotBooking, booking.SlotID, eventType, event.ChangedAt, event)
}

func confirmedBookings(slotID string) gDto.FilterGroup {
	return shared.FilterEq(model.TableName, map[string]any{
		model.FieldSlotID: slotID,
		model.FieldStatus: constant.BookingStatusConfirmed,
	})
}
