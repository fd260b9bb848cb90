package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"sportsassist/config"
	"sportsassist/infras/email"
	emailMocks "sportsassist/infras/email/mocks"
	"sportsassist/infras/metrics"
	"sportsassist/infras/otel/mocks"
	campMocks "sportsassist/internal/domains/camp/mocks"
	campModel "sportsassist/internal/domains/camp/model"
	"sportsassist/internal/domains/notification/service"
	registrationDto "sportsassist/internal/domains/registration/model/dto"
	userMocks "sportsassist/internal/domains/user/mocks"
	userModel "sportsassist/internal/domains/user/model"
	"sportsassist/shared/constant"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	users *userMocks.MockUser
	camps *campMocks.MockCamp
	email *emailMocks.MockEmail
	svc   service.Notification
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		users: userMocks.NewMockUser(ctrl),
		camps: campMocks.NewMockCamp(ctrl),
		email: emailMocks.NewMockEmail(ctrl),
	}

	cfg := &config.Config{}
	cfg.App.WebURL = "https://app.example.com"

	f.svc = service.New(f.users, f.camps, cfg, f.email, metrics.New(cfg), mocks.NewOtel())

	return f
}

var (
	camp = campModel.Camp{
		ID:        "camp-1",
		Name:      "Summer Soccer",
		StartDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC),
	}
	parent = userModel.User{ID: "parent-1", Email: "parent@example.com", FullName: "Dana"}
)

func event(previous, status, changedBy string) registrationDto.Event {
	return registrationDto.Event{
		RegistrationID: "reg-1",
		CampID:         "camp-1",
		ChildID:        "child-1",
		ParentID:       "parent-1",
		Status:         status,
		PreviousStatus: previous,
		ChangedBy:      changedBy,
	}
}

func TestNotificationService_RegistrationStatusChanged(t *testing.T) {
	tests := []struct {
		name      string
		event     registrationDto.Event
		setupMock func(f fixture)
		wantErr   bool
	}{
		{
			name:  "emails parent on waitlist promotion",
			event: event(constant.RegistrationStatusWaitlisted, constant.RegistrationStatusConfirmed, "staff-1"),
			setupMock: func(f fixture) {
				f.camps.EXPECT().Get(gomock.Any(), gomock.Any()).Return(camp, nil)
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(parent, nil)
				f.email.EXPECT().Enabled().Return(true)
				f.email.EXPECT().Render(email.TemplateRegistrationUpdate, gomock.Any()).
					DoAndReturn(func(_ string, data any) (string, error) {
						update, ok := data.(email.RegistrationUpdateData)
						assert.True(t, ok)
						assert.Equal(t, "Dana", update.ParentName)
						assert.Equal(t, "2026-07-01", update.StartDate)
						assert.Equal(t, "https://app.example.com", update.Link)

						return "<p>confirmed</p>", nil
					})
				f.email.EXPECT().Send(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, message email.Message) (string, error) {
						assert.Equal(t, []string{"parent@example.com"}, message.To)
						assert.Equal(t, "A spot opened up at Summer Soccer", message.Subject)
						assert.Equal(t, "reg-1", message.Tags["registration_id"])

						return "email-1", nil
					})
			},
		},
		{
			name:  "emails parent when staff cancel",
			event: event(constant.RegistrationStatusConfirmed, constant.RegistrationStatusCancelled, "admin-1"),
			setupMock: func(f fixture) {
				f.camps.EXPECT().Get(gomock.Any(), gomock.Any()).Return(camp, nil)
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(parent, nil)
				f.email.EXPECT().Enabled().Return(true)
				f.email.EXPECT().Render(gomock.Any(), gomock.Any()).Return("<p>cancelled</p>", nil)
				f.email.EXPECT().Send(gomock.Any(), gomock.Any()).Return("email-2", nil)
			},
		},
		{
			name:  "skips changes made by the parent",
			event: event(constant.RegistrationStatusConfirmed, constant.RegistrationStatusCancelled, "parent-1"),
			setupMock: func(f fixture) {
				f.camps.EXPECT().Get(gomock.Any(), gomock.Any()).Return(camp, nil)
			},
		},
		{
			name:  "emails promotion freed by the same parent",
			event: event(constant.RegistrationStatusWaitlisted, constant.RegistrationStatusConfirmed, "parent-1"),
			setupMock: func(f fixture) {
				f.camps.EXPECT().Get(gomock.Any(), gomock.Any()).Return(camp, nil)
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(parent, nil)
				f.email.EXPECT().Enabled().Return(true)
				f.email.EXPECT().Render(gomock.Any(), gomock.Any()).Return("<p>confirmed</p>", nil)
				f.email.EXPECT().Send(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, message email.Message) (string, error) {
						assert.Equal(t, "A spot opened up at Summer Soccer", message.Subject)

						return "email-3", nil
					})
			},
		},
		{
			name:  "skips new registrations",
			event: event(constant.Empty, constant.RegistrationStatusConfirmed, "staff-1"),
			setupMock: func(f fixture) {
				f.camps.EXPECT().Get(gomock.Any(), gomock.Any()).Return(camp, nil)
			},
		},
		{
			name:  "skips missing camp",
			event: event(constant.RegistrationStatusWaitlisted, constant.RegistrationStatusConfirmed, "staff-1"),
			setupMock: func(f fixture) {
				f.camps.EXPECT().Get(gomock.Any(), gomock.Any()).Return(campModel.Camp{}, nil)
			},
		},
		{
			name:  "skips when email is disabled",
			event: event(constant.RegistrationStatusWaitlisted, constant.RegistrationStatusConfirmed, "staff-1"),
			setupMock: func(f fixture) {
				f.camps.EXPECT().Get(gomock.Any(), gomock.Any()).Return(camp, nil)
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(parent, nil)
				f.email.EXPECT().Enabled().Return(false)
			},
		},
		{
			name:  "returns send failure",
			event: event(constant.RegistrationStatusWaitlisted, constant.RegistrationStatusConfirmed, "staff-1"),
			setupMock: func(f fixture) {
				f.camps.EXPECT().Get(gomock.Any(), gomock.Any()).Return(camp, nil)
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(parent, nil)
				f.email.EXPECT().Enabled().Return(true)
				f.email.EXPECT().Render(gomock.Any(), gomock.Any()).Return("<p>confirmed</p>", nil)
				f.email.EXPECT().Send(gomock.Any(), gomock.Any()).Return(constant.Empty, errors.New("boom"))
			},
			wantErr: true,
		},
		{
			name:  "returns camp lookup failure",
			event: event(constant.RegistrationStatusWaitlisted, constant.RegistrationStatusConfirmed, "staff-1"),
			setupMock: func(f fixture) {
				f.camps.EXPECT().Get(gomock.Any(), gomock.Any()).Return(campModel.Camp{}, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.RegistrationStatusChanged(context.Background(), tt.event)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}
