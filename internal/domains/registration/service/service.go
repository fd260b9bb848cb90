package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"sportsassist/config"
	"sportsassist/infras/kafka"
	"sportsassist/infras/metrics"
	"sportsassist/infras/otel"
	"sportsassist/infras/postgres"
	campModel "sportsassist/internal/domains/camp/model"
	campRepository "sportsassist/internal/domains/camp/repository"
	childModel "sportsassist/internal/domains/child/model"
	childRepository "sportsassist/internal/domains/child/repository"
	customFieldModel "sportsassist/internal/domains/customfield/model"
	customFieldDto "sportsassist/internal/domains/customfield/model/dto"
	customFieldRepository "sportsassist/internal/domains/customfield/repository"
	"sportsassist/internal/domains/registration/model"
	"sportsassist/internal/domains/registration/model/dto"
	"sportsassist/internal/domains/registration/repository"
	"sportsassist/shared"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/failure"
	gModel "sportsassist/shared/model"
	"sportsassist/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var (
	errCampClosed      = failure.WithReason(failure.BadRequestFromString("camp is not accepting registrations"), constant.ReasonRegistrationClosed)
	errCampFull        = failure.WithReason(failure.Conflict("camp is full"), constant.ReasonCampFull)
	errDuplicate       = failure.WithReason(failure.Conflict("child is already registered for this camp"), constant.ReasonDuplicateRegistration)
	errReopenCancelled = failure.Conflict("cancelled registrations cannot be reopened")
)

type Registration interface {
	Create(ctx context.Context, req dto.CreateRegistrationRequest) (dto.RegistrationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRegistrationsResponse, error)
	Get(ctx context.Context, id string) (dto.RegistrationResponse, error)
	Roster(ctx context.Context, campID string) (dto.RosterResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateRegistrationStatusRequest, id string) (dto.RegistrationResponse, error)
	Cancel(ctx context.Context, id string) (dto.RegistrationResponse, error)
}

type serviceImpl struct {
	repo         repository.Registration
	camps        campRepository.Camp
	children     childRepository.Child
	customFields customFieldRepository.CustomField
	answers      customFieldRepository.Answer
	transactor   postgres.Transactor
	cfg          *config.Config
	kafka        kafka.Client
	metrics      metrics.Metrics
	otel         otel.Otel
}

func New(
	repo repository.Registration,
	camps campRepository.Camp,
	children childRepository.Child,
	customFields customFieldRepository.CustomField,
	answers customFieldRepository.Answer,
	transactor postgres.Transactor,
	cfg *config.Config,
	kafka kafka.Client,
	metrics metrics.Metrics,
	otel otel.Otel,
) Registration {
	return &serviceImpl{
		repo:         repo,
		camps:        camps,
		children:     children,
		customFields: customFields,
		answers:      answers,
		transactor:   transactor,
		cfg:          cfg,
		kafka:        kafka,
		metrics:      metrics,
		otel:         otel,
	}
}

// Create registers a child while holding a lock on the camp row, so the
// confirmed count it reads cannot change before the insert commits.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRegistrationRequest) (res dto.RegistrationResponse, err error) {
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

	var registration model.Registration

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		camp, err := s.lockCamp(ctx, tx, req.CampID)
		if err != nil {
			return err
		}

		if err = checkEligibility(camp, child); err != nil {
			return err
		}

		active, err := s.repo.CountTx(ctx, tx, activeRegistration(req.CampID, req.ChildID))
		if err != nil {
			return fmt.Errorf("failed to check existing registration: %w", err)
		}

		if active > 0 {
			return errDuplicate
		}

		values, err := s.validateAnswers(ctx, tx, camp.OrganizationID, req.Answers)
		if err != nil {
			return err
		}

		status, err := s.seatStatus(ctx, tx, camp)
		if err != nil {
			return err
		}

		registration = req.ToModel(actor.UserID, child.ParentID, status)

		if err = s.repo.InsertTx(ctx, tx, registration); err != nil {
			if shared.IsUniqueViolation(err) {
				return errDuplicate
			}

			return fmt.Errorf("failed to insert registration: %w", err)
		}

		if len(values) == 0 {
			return nil
		}

		if err = s.answers.InsertBulkTx(ctx, tx, answerModels(registration, values)); err != nil {
			return fmt.Errorf("failed to insert registration answers: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, errCampFull) {
			s.metrics.Registration(metrics.OutcomeRejected)
		}

		log.Error().Err(err).Msg("failed to create registration")

		return res, err //nolint:wrapcheck
	}

	s.metrics.Registration(registration.Status)
	s.publish(ctx, kafka.EventRegistrationCreated, dto.NewEvent(registration, constant.Empty, actor.UserID))

	res.FromModel(registration)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRegistrationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)

	scoped := gDto.FilterGroup{Filters: []any{filter}}

	switch {
	case actor.IsSuperAdmin():
	case actor.IsParent():
		scoped.AddEq(model.TableName, model.FieldParentID, actor.UserID)
	case actor.IsOrganizationMember(actor.OrganizationID):
		scoped.AddEq(model.CampTableName, model.CampFieldOrganization, actor.OrganizationID)
	default:
		return res, failure.ResourceRestrictedError
	}

	req.RestrictSort(model.TableName, constant.DefaultValueSortBy, model.FieldStatus)

	total, err := s.repo.CountDetails(ctx, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to count registrations")

		return res, fmt.Errorf("failed to count registrations: %w", err)
	}

	details, err := s.repo.GetDetails(ctx, req, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to get registrations")

		return res, fmt.Errorf("failed to get registrations: %w", err)
	}

	res.FromModels(details, total, req.Limit)

	return res, nil
}

// Get returns the registration with its custom field answers.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RegistrationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	detail, err := s.repo.GetDetail(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get registration")

		return res, fmt.Errorf("failed to get registration: %w", err)
	}

	actor := shared.ActorFromContext(ctx)

	if detail.ID == constant.Empty || (!actor.CanAccessParentData(detail.ParentID) && !actor.IsOrganizationMember(detail.OrganizationID)) {
		return res, failure.NotFound("registration not found")
	}

	answers, err := s.answers.GetDetails(ctx, shared.FilterByID(id, customFieldModel.AnswerFieldRegistrationID, customFieldModel.AnswerTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get registration answers")

		return res, fmt.Errorf("failed to get registration answers: %w", err)
	}

	res.FromDetail(detail)

	res.Answers = make([]customFieldDto.AnswerResponse, len(answers))
	for i, answer := range answers {
		res.Answers[i].FromModel(answer)
	}

	return res, nil
}

// Roster lists every non-cancelled registration of a camp for its staff.
func (s *serviceImpl) Roster(ctx context.Context, campID string) (res dto.RosterResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Roster")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	camp, err := s.camps.Get(ctx, shared.FilterByID(campID, campModel.FieldID, campModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get camp")

		return res, fmt.Errorf("failed to get camp: %w", err)
	}

	if camp.ID == constant.Empty {
		return res, failure.NotFound("camp not found")
	}

	if err = shared.ActorFromContext(ctx).RequireOrganizationMember(camp.OrganizationID); err != nil {
		return res, err
	}

	filter := shared.FilterByID(campID, model.FieldCampID, model.TableName)
	filter.Add(gDto.Filter{
		Field:    model.FieldStatus,
		Value:    constant.RegistrationStatusCancelled,
		Operator: gDto.FilterOperatorNotEq,
		Table:    model.TableName,
	})

	details, err := s.repo.GetDetails(ctx, gDto.QueryParams{
		SortBy:  model.TableName + "." + model.FieldCreatedAt,
		SortDir: gDto.SortDirAsc,
	}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get camp roster")

		return res, fmt.Errorf("failed to get camp roster: %w", err)
	}

	res.FromModels(campID, details)

	return res, nil
}

// UpdateStatus lets camp staff move a registration between statuses and
// record payment. Confirming respects capacity, cancelling a confirmed
// registration promotes the oldest waitlisted one.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateRegistrationStatusRequest, id string) (res dto.RegistrationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = req.Check(); err != nil {
		return res, err
	}

	actor := shared.ActorFromContext(ctx)

	var (
		updated  model.Registration
		previous string
		promoted *model.Registration
	)

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		current, camp, err := s.lockRegistration(ctx, tx, id)
		if err != nil {
			return err
		}

		if err = actor.RequireOrganizationMember(camp.OrganizationID); err != nil {
			return err
		}

		previous = current.Status

		if req.Status != constant.Empty && req.Status != current.Status {
			if current.Status == constant.RegistrationStatusCancelled {
				return errReopenCancelled
			}

			if req.Status == constant.RegistrationStatusConfirmed {
				if err = s.ensureSeat(ctx, tx, camp); err != nil {
					return err
				}
			}
		}

		fields := shared.TransformFields(req, actor.UserID)
		if err = s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update registration: %w", err)
		}

		updated = apply(current, req)

		if previous == constant.RegistrationStatusConfirmed && updated.Status != constant.RegistrationStatusConfirmed {
			promoted, err = s.promote(ctx, tx, camp, actor.UserID)
		}

		return err
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update registration status")

		return res, err //nolint:wrapcheck
	}

	s.afterStatusChange(ctx, updated, previous, promoted, actor.UserID)

	res.FromModel(updated)

	return res, nil
}

// Cancel is the parent facing cancellation of their own registration.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.RegistrationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)

	var (
		updated  model.Registration
		previous string
		promoted *model.Registration
	)

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		current, camp, err := s.lockRegistration(ctx, tx, id)
		if err != nil {
			return err
		}

		if !actor.CanAccessParentData(current.ParentID) && !actor.IsOrganizationMember(camp.OrganizationID) {
			return failure.NotFound("registration not found")
		}

		if current.Status == constant.RegistrationStatusCancelled {
			return failure.Conflict("registration is already cancelled")
		}

		previous = current.Status

		req := dto.UpdateRegistrationStatusRequest{Status: constant.RegistrationStatusCancelled}
		fields := shared.TransformFields(req, actor.UserID)

		if err = s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to cancel registration: %w", err)
		}

		updated = apply(current, req)

		if previous == constant.RegistrationStatusConfirmed {
			promoted, err = s.promote(ctx, tx, camp, actor.UserID)
		}

		return err
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to cancel registration")

		return res, err //nolint:wrapcheck
	}

	s.afterStatusChange(ctx, updated, previous, promoted, actor.UserID)

	res.FromModel(updated)

	return res, nil
}

// lockRegistration locks the camp before the registration so every writer
// takes the locks in the same order as Create.
func (s *serviceImpl) lockRegistration(ctx context.Context, tx *sqlx.Tx, id string) (model.Registration, campModel.Camp, error) {
	current, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return current, campModel.Camp{}, fmt.Errorf("failed to get registration: %w", err)
	}

	if current.ID == constant.Empty {
		return current, campModel.Camp{}, failure.NotFound("registration not found")
	}

	camp, err := s.lockCamp(ctx, tx, current.CampID)
	if err != nil {
		return current, camp, err
	}

	current, err = s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return current, camp, fmt.Errorf("failed to lock registration: %w", err)
	}

	if current.ID == constant.Empty {
		return current, camp, failure.NotFound("registration not found")
	}

	return current, camp, nil
}

func (s *serviceImpl) lockCamp(ctx context.Context, tx *sqlx.Tx, campID string) (campModel.Camp, error) {
	camp, err := s.camps.GetForUpdateTx(ctx, tx, shared.FilterByID(campID, campModel.FieldID, campModel.TableName))
	if err != nil {
		return camp, fmt.Errorf("failed to lock camp: %w", err)
	}

	if camp.ID == constant.Empty {
		return camp, failure.NotFound("camp not found")
	}

	return camp, nil
}

func (s *serviceImpl) confirmedCount(ctx context.Context, tx *sqlx.Tx, campID string) (int, error) {
	count, err := s.repo.CountTx(ctx, tx, shared.FilterEq(model.TableName, map[string]any{
		model.FieldCampID: campID,
		model.FieldStatus: constant.RegistrationStatusConfirmed,
	}))
	if err != nil {
		return 0, fmt.Errorf("failed to count confirmed registrations: %w", err)
	}

	return count, nil
}

// seatStatus decides the status of a new registration.
func (s *serviceImpl) seatStatus(ctx context.Context, tx *sqlx.Tx, camp campModel.Camp) (string, error) {
	confirmed, err := s.confirmedCount(ctx, tx, camp.ID)
	if err != nil {
		return constant.Empty, err
	}

	switch {
	case confirmed < camp.Capacity:
		return constant.RegistrationStatusConfirmed, nil
	case camp.WaitlistEnabled:
		return constant.RegistrationStatusWaitlisted, nil
	default:
		return constant.Empty, errCampFull
	}
}

func (s *serviceImpl) ensureSeat(ctx context.Context, tx *sqlx.Tx, camp campModel.Camp) error {
	confirmed, err := s.confirmedCount(ctx, tx, camp.ID)
	if err != nil {
		return err
	}

	if confirmed >= camp.Capacity {
		return errCampFull
	}

	return nil
}

// promote confirms the oldest waitlisted registration of camp, if any.
func (s *serviceImpl) promote(ctx context.Context, tx *sqlx.Tx, camp campModel.Camp, user string) (*model.Registration, error) {
	if camp.Status == constant.CampStatusCancelled {
		return nil, nil //nolint:nilnil
	}

	waiting, err := s.repo.GetAllTx(ctx, tx, gDto.QueryParams{
		Limit:   1,
		SortBy:  model.TableName + "." + model.FieldCreatedAt,
		SortDir: gDto.SortDirAsc,
	}, shared.FilterEq(model.TableName, map[string]any{
		model.FieldCampID: camp.ID,
		model.FieldStatus: constant.RegistrationStatusWaitlisted,
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to get waitlist: %w", err)
	}

	if len(waiting) == 0 {
		return nil, nil //nolint:nilnil
	}

	if err = s.ensureSeat(ctx, tx, camp); err != nil {
		if errors.Is(err, errCampFull) {
			return nil, nil //nolint:nilnil
		}

		return nil, err
	}

	next := waiting[0]
	req := dto.UpdateRegistrationStatusRequest{Status: constant.RegistrationStatusConfirmed}

	if err = s.repo.UpdateTx(ctx, tx, shared.TransformFields(req, user), shared.FilterByID(next.ID, model.FieldID, model.TableName)); err != nil {
		return nil, fmt.Errorf("failed to promote waitlisted registration: %w", err)
	}

	promoted := apply(next, req)

	return &promoted, nil
}

func (s *serviceImpl) validateAnswers(ctx context.Context, tx *sqlx.Tx, organizationID string, answers map[string]any) (map[string]string, error) {
	fields, err := s.customFields.GetAllTx(ctx, tx, gDto.QueryParams{}, shared.FilterByID(organizationID, customFieldModel.FieldOrganizationID, customFieldModel.TableName))
	if err != nil {
		return nil, fmt.Errorf("failed to get custom fields: %w", err)
	}

	values, err := customFieldDto.ValidateAnswers(fields, answers)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return values, nil
}

func (s *serviceImpl) afterStatusChange(ctx context.Context, updated model.Registration, previous string, promoted *model.Registration, user string) {
	if updated.Status != previous {
		if updated.Status == constant.RegistrationStatusCancelled {
			s.metrics.Registration(metrics.OutcomeCancelled)
		}

		s.publish(ctx, kafka.EventRegistrationStatusChanged, dto.NewEvent(updated, previous, user))
	}

	if promoted != nil {
		s.metrics.Registration(metrics.OutcomePromoted)
		s.publish(ctx, kafka.EventRegistrationStatusChanged, dto.NewEvent(*promoted, constant.RegistrationStatusWaitlisted, user))
	}
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, event dto.Event) {
	go kafka.Publish(context.WithoutCancel(ctx), s.kafka, s.cfg.External.Kafka.Topics.Registration, event.CampID, eventType, event.ChangedAt, event)
}

func checkEligibility(camp campModel.Camp, child childModel.Child) error {
	if camp.Status != constant.CampStatusPublished || !camp.RegistrationOpen(timezone.Now()) {
		return errCampClosed
	}

	age := timezone.AgeOn(child.DateOfBirth, camp.StartDate)
	if !camp.AcceptsAge(age) {
		return failure.BadRequestFromString(fmt.Sprintf("%s will be %d at camp start, outside the camp age range", child.FullName, age))
	}

	return nil
}

func activeRegistration(campID, childID string) gDto.FilterGroup {
	filter := shared.FilterEq(model.TableName, map[string]any{
		model.FieldCampID:  campID,
		model.FieldChildID: childID,
	})

	filter.Add(gDto.Filter{
		Field:    model.FieldStatus,
		Value:    constant.RegistrationStatusCancelled,
		Operator: gDto.FilterOperatorNotEq,
		Table:    model.TableName,
	})

	return filter
}

func apply(current model.Registration, req dto.UpdateRegistrationStatusRequest) model.Registration {
	if req.Status != constant.Empty {
		current.Status = req.Status
	}

	if req.PaymentStatus != constant.Empty {
		current.PaymentStatus = req.PaymentStatus
	}

	if req.Notes != constant.Empty {
		current.Notes = req.Notes
	}

	return current
}

func answerModels(registration model.Registration, values map[string]string) []customFieldModel.Answer {
	answers := make([]customFieldModel.Answer, 0, len(values))

	for fieldID, value := range values {
		answers = append(answers, customFieldModel.Answer{
			ID:             uuid.NewString(),
			RegistrationID: registration.ID,
			CustomFieldID:  fieldID,
			Value:          value,
			Metadata:       gModel.NewMetadata(registration.CreatedBy, registration.CreatedAt),
		})
	}

	return answers
}
