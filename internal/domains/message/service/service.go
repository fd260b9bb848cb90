package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"html/template"

	"sportsassist/config"
	"sportsassist/infras/email"
	"sportsassist/infras/kafka"
	"sportsassist/infras/metrics"
	"sportsassist/infras/otel"
	"sportsassist/infras/postgres"
	campModel "sportsassist/internal/domains/camp/model"
	campRepository "sportsassist/internal/domains/camp/repository"
	"sportsassist/internal/domains/message/model"
	"sportsassist/internal/domains/message/model/dto"
	"sportsassist/internal/domains/message/repository"
	organizationModel "sportsassist/internal/domains/organization/model"
	organizationRepository "sportsassist/internal/domains/organization/repository"
	"sportsassist/shared"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/failure"
	"sportsassist/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const defaultEmailConcurrency = 5

type Message interface {
	Create(ctx context.Context, req dto.CreateMessageRequest, campID string) (dto.MessageResponse, error)
	GetByCamp(ctx context.Context, req gDto.QueryParams, campID string) (dto.GetMessagesResponse, error)
	GetForParent(ctx context.Context, req gDto.QueryParams, parentID string) (dto.GetInboxResponse, error)
	UnreadCount(ctx context.Context, parentID string) (dto.UnreadCountResponse, error)
	MarkRead(ctx context.Context, parentID, messageID string) error
}

type serviceImpl struct {
	repo          repository.Message
	recipients    repository.Recipient
	camps         campRepository.Camp
	organizations organizationRepository.Organization
	transactor    postgres.Transactor
	cfg           *config.Config
	email         email.Email
	kafka         kafka.Client
	metrics       metrics.Metrics
	otel          otel.Otel
}

func New(
	repo repository.Message,
	recipients repository.Recipient,
	camps campRepository.Camp,
	organizations organizationRepository.Organization,
	transactor postgres.Transactor,
	cfg *config.Config,
	email email.Email,
	kafka kafka.Client,
	metrics metrics.Metrics,
	otel otel.Otel,
) Message {
	return &serviceImpl{
		repo:          repo,
		recipients:    recipients,
		camps:         camps,
		organizations: organizations,
		transactor:    transactor,
		cfg:           cfg,
		email:         email,
		kafka:         kafka,
		metrics:       metrics,
		otel:          otel,
	}
}

// Create stores the message together with one recipient row per addressed
// parent. Emails go out after commit and never fail the request.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateMessageRequest, campID string) (res dto.MessageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)

	camp, err := s.findCamp(ctx, campID)
	if err != nil {
		return res, err
	}

	if err = actor.RequireOrganizationMember(camp.OrganizationID); err != nil {
		return res, err
	}

	emailing := req.SendEmail && s.email.Enabled()

	var (
		message  model.Message
		contacts []model.Contact
	)

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		contacts, err = s.repo.ContactsTx(ctx, tx, campID, req.Statuses())
		if err != nil {
			return err //nolint:wrapcheck
		}

		if len(contacts) == 0 {
			return failure.BadRequestFromString("no registered parents match the selected statuses")
		}

		message = req.ToModel(actor.UserID, campID, camp.OrganizationID, len(contacts))

		if err = s.repo.InsertTx(ctx, tx, message); err != nil {
			return fmt.Errorf("failed to insert camp message: %w", err)
		}

		if err = s.recipients.InsertBulkTx(ctx, tx, dto.ToRecipients(message, contacts, emailing)); err != nil {
			return fmt.Errorf("failed to insert camp message recipients: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create camp message")

		return res, err //nolint:wrapcheck
	}

	s.metrics.MessageSent(len(contacts))

	go func() {
		c := context.WithoutCancel(ctx)

		kafka.Publish(c, s.kafka, s.cfg.External.Kafka.Topics.CampMessage, campID, kafka.EventCampMessageSent, message.CreatedAt, dto.NewEvent(message))

		if emailing {
			s.deliver(c, message, camp, contacts)
		}
	}()

	res.FromModel(message)

	return res, nil
}

// deliver emails every contact with bounded concurrency and records the
// outcome on each recipient row.
func (s *serviceImpl) deliver(ctx context.Context, message model.Message, camp campModel.Camp, contacts []model.Contact) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".deliver")
	defer scope.End()

	organizationName := camp.OrganizationID

	organization, err := s.organizations.Get(ctx, shared.FilterByID(camp.OrganizationID, organizationModel.FieldID, organizationModel.TableName))
	if err != nil {
		log.Warn().Err(err).Msg("failed to get organization for camp message email")
	} else if organization.Name != constant.Empty {
		organizationName = organization.Name
	}

	html, err := s.email.Render(email.TemplateCampMessage, email.CampMessageData{
		OrganizationName: organizationName,
		CampName:         camp.Name,
		Subject:          message.Subject,
		Body:             template.HTML(message.Body), //nolint:gosec
		Link:             s.cfg.App.WebURL,
	})
	if err != nil {
		log.Error().Err(err).Str("message_id", message.ID).Msg("failed to render camp message email")

		for _, contact := range contacts {
			s.recordDelivery(ctx, message.ID, contact.ParentID, constant.EmailStatusFailed)
		}

		return
	}

	limit := s.cfg.External.Email.Concurrency
	if limit <= 0 {
		limit = defaultEmailConcurrency
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(limit)

	for _, contact := range contacts {
		group.Go(func() error {
			status := constant.EmailStatusSent

			if contact.Email == constant.Empty {
				status = constant.EmailStatusSkipped
			} else if _, err := s.email.Send(groupCtx, email.Message{
				To:      []string{contact.Email},
				Subject: message.Subject,
				HTML:    html,
				Tags:    map[string]string{"camp_id": message.CampID, "message_id": message.ID},
			}); err != nil {
				log.Error().Err(err).Str("parent_id", contact.ParentID).Msg("failed to email camp message")

				status = constant.EmailStatusFailed
			}

			s.recordDelivery(groupCtx, message.ID, contact.ParentID, status)

			return nil
		})
	}

	_ = group.Wait()
}

func (s *serviceImpl) recordDelivery(ctx context.Context, messageID, parentID, status string) {
	s.metrics.EmailDelivery(status)

	fields := shared.TransformFields(dto.UpdateEmailStatusRequest{EmailStatus: status}, constant.ContextSystem)

	if err := s.recipients.Update(ctx, fields, recipientFilter(messageID, parentID)); err != nil {
		log.Error().Err(err).Str("message_id", messageID).Str("parent_id", parentID).Msg("failed to record email status")
	}
}

func (s *serviceImpl) GetByCamp(ctx context.Context, req gDto.QueryParams, campID string) (res dto.GetMessagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByCamp")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	camp, err := s.findCamp(ctx, campID)
	if err != nil {
		return res, err
	}

	if err = shared.ActorFromContext(ctx).RequireOrganizationMember(camp.OrganizationID); err != nil {
		return res, err
	}

	filter := shared.FilterByID(campID, model.FieldCampID, model.TableName)
	req.RestrictSort(model.TableName, constant.DefaultValueSortBy)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count camp messages")

		return res, fmt.Errorf("failed to count camp messages: %w", err)
	}

	messages, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get camp messages")

		return res, fmt.Errorf("failed to get camp messages: %w", err)
	}

	res.FromModels(messages, total, req.Limit)

	return res, nil
}

// GetForParent is the parent inbox, newest first.
func (s *serviceImpl) GetForParent(ctx context.Context, req gDto.QueryParams, parentID string) (res dto.GetInboxResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetForParent")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !shared.ActorFromContext(ctx).CanAccessParentData(parentID) {
		return res, failure.ResourceRestrictedError
	}

	filter := shared.FilterByID(parentID, model.RecipientFieldParentID, model.RecipientTableName)

	total, err := s.recipients.CountInbox(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count parent messages")

		return res, fmt.Errorf("failed to count parent messages: %w", err)
	}

	unread, err := s.countUnread(ctx, parentID)
	if err != nil {
		return res, err
	}

	req.SortBy = model.TableName + "." + model.FieldCreatedAt
	req.SortDir = gDto.SortDirDesc

	items, err := s.recipients.GetInbox(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get parent messages")

		return res, fmt.Errorf("failed to get parent messages: %w", err)
	}

	res.FromModels(items, total, unread, req.Limit)

	return res, nil
}

func (s *serviceImpl) UnreadCount(ctx context.Context, parentID string) (res dto.UnreadCountResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UnreadCount")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !shared.ActorFromContext(ctx).CanAccessParentData(parentID) {
		return res, failure.ResourceRestrictedError
	}

	res.Unread, err = s.countUnread(ctx, parentID)

	return res, err
}

// MarkRead stamps read_at once. Marking an already read message succeeds
// without changing it.
func (s *serviceImpl) MarkRead(ctx context.Context, parentID, messageID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkRead")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !shared.ActorFromContext(ctx).CanAccessParentData(parentID) {
		return failure.ResourceRestrictedError
	}

	filter := recipientFilter(messageID, parentID)

	recipient, err := s.recipients.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get message recipient")

		return fmt.Errorf("failed to get message recipient: %w", err)
	}

	if recipient.ID == constant.Empty {
		return failure.NotFound("message not found")
	}

	if recipient.ReadAt != nil {
		return nil
	}

	filter.Add(gDto.Filter{Field: model.RecipientFieldReadAt, Operator: gDto.FilterIsNull, Table: model.RecipientTableName})

	fields := shared.TransformFields(dto.MarkReadRequest{ReadAt: timezone.Now()}, parentID)

	if err = s.recipients.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to mark message as read")

		return fmt.Errorf("failed to mark message as read: %w", err)
	}

	return nil
}

func (s *serviceImpl) countUnread(ctx context.Context, parentID string) (int, error) {
	filter := shared.FilterByID(parentID, model.RecipientFieldParentID, model.RecipientTableName)
	filter.Add(gDto.Filter{Field: model.RecipientFieldReadAt, Operator: gDto.FilterIsNull, Table: model.RecipientTableName})

	count, err := s.recipients.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count unread messages")

		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}

	return count, nil
}

func (s *serviceImpl) findCamp(ctx context.Context, campID string) (campModel.Camp, error) {
	camp, err := s.camps.Get(ctx, shared.FilterByID(campID, campModel.FieldID, campModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get camp")

		return camp, fmt.Errorf("failed to get camp: %w", err)
	}

	if camp.ID == constant.Empty {
		return camp, failure.NotFound("camp not found")
	}

	return camp, nil
}

func recipientFilter(messageID, parentID string) gDto.FilterGroup {
	return shared.FilterEq(model.RecipientTableName, map[string]any{
		model.RecipientFieldMessageID: messageID,
		model.RecipientFieldParentID:  parentID,
	})
}
