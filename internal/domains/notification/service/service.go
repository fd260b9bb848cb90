package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"sportsassist/config"
	"sportsassist/infras/email"
	"sportsassist/infras/metrics"
	"sportsassist/infras/otel"
	campModel "sportsassist/internal/domains/camp/model"
	campRepository "sportsassist/internal/domains/camp/repository"
	registrationDto "sportsassist/internal/domains/registration/model/dto"
	userModel "sportsassist/internal/domains/user/model"
	userRepository "sportsassist/internal/domains/user/repository"
	"sportsassist/shared"
	"sportsassist/shared/constant"

	"github.com/rs/zerolog/log"
)

type Notification interface {
	RegistrationStatusChanged(ctx context.Context, event registrationDto.Event) error
}

type serviceImpl struct {
	users   userRepository.User
	camps   campRepository.Camp
	cfg     *config.Config
	email   email.Email
	metrics metrics.Metrics
	otel    otel.Otel
}

func New(
	users userRepository.User,
	camps campRepository.Camp,
	cfg *config.Config,
	email email.Email,
	metrics metrics.Metrics,
	otel otel.Otel,
) Notification {
	return &serviceImpl{
		users:   users,
		camps:   camps,
		cfg:     cfg,
		email:   email,
		metrics: metrics,
		otel:    otel,
	}
}

type update struct {
	subject  string
	headline string
	detail   string
}

// updateFor picks the email for a status change. Parents are only told about
// changes they did not make themselves, except waitlist promotions, which are
// triggered by whoever freed the seat.
func updateFor(event registrationDto.Event, campName string) (update, bool) {
	if event.PreviousStatus == constant.RegistrationStatusWaitlisted && event.Status == constant.RegistrationStatusConfirmed {
		return update{
			subject:  "A spot opened up at " + campName,
			headline: "Your registration is confirmed",
			detail:   "A seat became available and your child has been moved off the waitlist.",
		}, true
	}

	if event.ChangedBy == event.ParentID {
		return update{}, false
	}

	switch {
	case event.Status == constant.RegistrationStatusCancelled && event.PreviousStatus != constant.Empty:
		return update{
			subject:  "Registration cancelled for " + campName,
			headline: "Your registration was cancelled",
			detail:   "The camp staff cancelled this registration. Contact the organization if you have questions.",
		}, true
	case event.Status == constant.RegistrationStatusWaitlisted && event.PreviousStatus == constant.RegistrationStatusConfirmed:
		return update{
			subject:  "Registration moved to the waitlist for " + campName,
			headline: "Your registration is on the waitlist",
			detail:   "The camp staff moved this registration to the waitlist. You will be emailed if a seat opens up.",
		}, true
	}

	return update{}, false
}

func (s *serviceImpl) RegistrationStatusChanged(ctx context.Context, event registrationDto.Event) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RegistrationStatusChanged")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	camp, err := s.camps.Get(ctx, shared.FilterByID(event.CampID, campModel.FieldID, campModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to get camp: %w", err)
	}

	if camp.ID == constant.Empty {
		log.Warn().Str("camp_id", event.CampID).Msg("camp of registration event no longer exists")

		return nil
	}

	message, ok := updateFor(event, camp.Name)
	if !ok {
		return nil
	}

	parent, err := s.users.Get(ctx, shared.FilterByID(event.ParentID, userModel.FieldID, userModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to get parent: %w", err)
	}

	if parent.ID == constant.Empty || parent.Email == constant.Empty {
		s.metrics.EmailDelivery(constant.EmailStatusSkipped)

		return nil
	}

	if !s.email.Enabled() {
		s.metrics.EmailDelivery(constant.EmailStatusSkipped)

		return nil
	}

	html, err := s.email.Render(email.TemplateRegistrationUpdate, email.RegistrationUpdateData{
		ParentName: parent.FullName,
		Headline:   message.headline,
		Detail:     message.detail,
		CampName:   camp.Name,
		StartDate:  camp.StartDate.Format(constant.DateOnlyFormat),
		EndDate:    camp.EndDate.Format(constant.DateOnlyFormat),
		Location:   camp.Location,
		Link:       s.cfg.App.WebURL,
	})
	if err != nil {
		return err
	}

	_, err = s.email.Send(ctx, email.Message{
		To:      []string{parent.Email},
		Subject: message.subject,
		HTML:    html,
		Tags:    map[string]string{"camp_id": event.CampID, "registration_id": event.RegistrationID},
	})
	if err != nil {
		s.metrics.EmailDelivery(constant.EmailStatusFailed)

		if errors.Is(err, email.ErrDisabled) {
			return nil
		}

		return fmt.Errorf("failed to email registration update: %w", err)
	}

	s.metrics.EmailDelivery(constant.EmailStatusSent)

	log.Info().Str("registration_id", event.RegistrationID).Str("status", event.Status).Msg("registration update emailed")

	return nil
}
