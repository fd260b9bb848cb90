package service_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"sportsassist/config"
	"sportsassist/infras/email"
	emailMocks "sportsassist/infras/email/mocks"
	kafkaMocks "sportsassist/infras/kafka/mocks"
	"sportsassist/infras/metrics"
	"sportsassist/infras/otel/mocks"
	pgMocks "sportsassist/infras/postgres/mocks"
	campMocks "sportsassist/internal/domains/camp/mocks"
	campModel "sportsassist/internal/domains/camp/model"
	messageMocks "sportsassist/internal/domains/message/mocks"
	"sportsassist/internal/domains/message/model"
	"sportsassist/internal/domains/message/model/dto"
	"sportsassist/internal/domains/message/service"
	organizationMocks "sportsassist/internal/domains/organization/mocks"
	organizationModel "sportsassist/internal/domains/organization/model"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/failure"
	"sportsassist/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo          *messageMocks.MockMessage
	recipients    *messageMocks.MockRecipient
	camps         *campMocks.MockCamp
	organizations *organizationMocks.MockOrganization
	email         *emailMocks.MockEmail
	svc           service.Message
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:          messageMocks.NewMockMessage(ctrl),
		recipients:    messageMocks.NewMockRecipient(ctrl),
		camps:         campMocks.NewMockCamp(ctrl),
		organizations: organizationMocks.NewMockOrganization(ctrl),
		email:         emailMocks.NewMockEmail(ctrl),
	}

	transactor := pgMocks.NewMockTransactor(ctrl)
	transactor.EXPECT().
		WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
			return fn(nil)
		}).
		AnyTimes()

	kafkaClient := kafkaMocks.NewMockClient(ctrl)
	kafkaClient.EXPECT().Enabled().Return(false).AnyTimes()

	cfg := &config.Config{}
	cfg.External.Email.Concurrency = 2

	f.svc = service.New(f.repo, f.recipients, f.camps, f.organizations, transactor, cfg, f.email, kafkaClient, metrics.New(cfg), mocks.NewOtel())

	return f
}

func actorContext(userID, role, orgID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, role)

	return context.WithValue(ctx, constant.ContextKeyOrganizationID, orgID)
}

var camp = campModel.Camp{ID: "camp-1", OrganizationID: "org-1", Name: "Summer Soccer"}

var contacts = []model.Contact{
	{ParentID: "parent-1", Email: "one@example.com", FullName: "One"},
	{ParentID: "parent-2", Email: "two@example.com", FullName: "Two"},
}

func TestMessageService_Create(t *testing.T) {
	staff := actorContext("staff-1", constant.RoleStaff, "org-1")
	req := dto.CreateMessageRequest{Subject: "Kit reminder", Body: "<p>Bring boots</p>"}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.CreateMessageRequest
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "stores message and recipients without email",
			ctx:  staff,
			req:  req,
			setupMock: func(f fixture) {
				f.camps.EXPECT().Get(gomock.Any(), gomock.Any()).Return(camp, nil)
				f.repo.EXPECT().ContactsTx(gomock.Any(), gomock.Any(), "camp-1", dto.DefaultRecipientStatuses).Return(contacts, nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, message model.Message) error {
						assert.Equal(t, 2, message.RecipientCount)
						assert.Equal(t, "org-1", message.OrganizationID)

						return nil
					})
				f.recipients.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, rows []model.Recipient) error {
						require.Len(t, rows, 2)
						assert.Equal(t, constant.EmailStatusSkipped, rows[0].EmailStatus)

						return nil
					})
			},
		},
		{
			name: "selected statuses are passed through",
			ctx:  staff,
			req:  dto.CreateMessageRequest{Subject: "Waitlist", Body: "hi", RecipientStatuses: []string{constant.RegistrationStatusWaitlisted}},
			setupMock: func(f fixture) {
				f.camps.EXPECT().Get(gomock.Any(), gomock.Any()).Return(camp, nil)
				f.repo.EXPECT().ContactsTx(gomock.Any(), gomock.Any(), "camp-1", []string{constant.RegistrationStatusWaitlisted}).Return(contacts[:1], nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.recipients.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "no matching parents",
			ctx:  staff,
			req:  req,
			setupMock: func(f fixture) {
				f.camps.EXPECT().Get(gomock.Any(), gomock.Any()).Return(camp, nil)
				f.repo.EXPECT().ContactsTx(gomock.Any(), gomock.Any(), "camp-1", gomock.Any()).Return(nil, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "staff of another organization",
			ctx:  actorContext("staff-2", constant.RoleStaff, "org-2"),
			req:  req,
			setupMock: func(f fixture) {
				f.camps.EXPECT().Get(gomock.Any(), gomock.Any()).Return(camp, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "parent cannot send",
			ctx:  actorContext("parent-1", constant.RoleParent, ""),
			req:  req,
			setupMock: func(f fixture) {
				f.camps.EXPECT().Get(gomock.Any(), gomock.Any()).Return(camp, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "camp not found",
			ctx:  staff,
			req:  req,
			setupMock: func(f fixture) {
				f.camps.EXPECT().Get(gomock.Any(), gomock.Any()).Return(campModel.Camp{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "recipient insert fails",
			ctx:  staff,
			req:  req,
			setupMock: func(f fixture) {
				f.camps.EXPECT().Get(gomock.Any(), gomock.Any()).Return(camp, nil)
				f.repo.EXPECT().ContactsTx(gomock.Any(), gomock.Any(), "camp-1", gomock.Any()).Return(contacts, nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.recipients.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.email.EXPECT().Enabled().Return(false).AnyTimes()
			tt.setupMock(f)

			res, err := f.svc.Create(tt.ctx, tt.req, "camp-1")

			switch {
			case tt.wantCode != 0:
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			case tt.wantErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.NotEmpty(t, res.ID)
				assert.Equal(t, "camp-1", res.CampID)
			}

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestMessageService_Create_DeliversEmail(t *testing.T) {
	f := newFixture(t)

	var (
		mu       sync.Mutex
		statuses = map[string]any{}
	)

	f.email.EXPECT().Enabled().Return(true).AnyTimes()
	f.camps.EXPECT().Get(gomock.Any(), gomock.Any()).Return(camp, nil)
	f.repo.EXPECT().ContactsTx(gomock.Any(), gomock.Any(), "camp-1", gomock.Any()).Return(contacts, nil)
	f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.recipients.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, rows []model.Recipient) error {
			for _, row := range rows {
				assert.Equal(t, constant.EmailStatusPending, row.EmailStatus)
			}

			return nil
		})
	f.organizations.EXPECT().Get(gomock.Any(), gomock.Any()).Return(organizationModel.Organization{ID: "org-1", Name: "Riverside FC"}, nil)
	f.email.EXPECT().Render(email.TemplateCampMessage, gomock.Any()).
		DoAndReturn(func(_ string, data any) (string, error) {
			assert.Equal(t, "Riverside FC", data.(email.CampMessageData).OrganizationName)

			return "<html></html>", nil
		})
	f.email.EXPECT().Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, message email.Message) (string, error) {
			if message.To[0] == "two@example.com" {
				return "", email.ErrRateLimited
			}

			return "email-1", nil
		}).
		Times(2)
	f.recipients.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
			_, args := filter.GetWhereClause()

			mu.Lock()
			statuses[args[model.RecipientFieldParentID].(string)] = fields[model.RecipientFieldEmailStatus]
			mu.Unlock()

			return nil
		}).
		Times(2)

	_, err := f.svc.Create(actorContext("admin-1", constant.RoleAdmin, "org-1"), dto.CreateMessageRequest{Subject: "Hi", Body: "Body", SendEmail: true}, "camp-1")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()

		return len(statuses) == 2
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()

	assert.Equal(t, constant.EmailStatusSent, statuses["parent-1"])
	assert.Equal(t, constant.EmailStatusFailed, statuses["parent-2"])
}

func TestMessageService_GetByCamp(t *testing.T) {
	f := newFixture(t)

	f.camps.EXPECT().Get(gomock.Any(), gomock.Any()).Return(camp, nil)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Message, error) {
			assert.Equal(t, "camp_messages.created_at", params.SortBy)

			return []model.Message{{ID: "msg-1", CampID: "camp-1", Subject: "Hi"}}, nil
		})

	res, err := f.svc.GetByCamp(actorContext("staff-1", constant.RoleStaff, "org-1"), gDto.QueryParams{Page: 1, Limit: 10, SortBy: "subject"}, "camp-1")
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, 1, res.TotalData)

	f.camps.EXPECT().Get(gomock.Any(), gomock.Any()).Return(camp, nil)

	_, err = f.svc.GetByCamp(actorContext("parent-1", constant.RoleParent, ""), gDto.QueryParams{Page: 1, Limit: 10}, "camp-1")
	assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
}

func TestMessageService_GetForParent(t *testing.T) {
	f := newFixture(t)
	readAt := timezone.Now()

	f.recipients.EXPECT().CountInbox(gomock.Any(), gomock.Any()).Return(2, nil)
	f.recipients.EXPECT().Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			where, _ := filter.GetWhereClause()
			assert.Contains(t, where, "camp_message_recipients.read_at IS NULL")

			return 1, nil
		})
	f.recipients.EXPECT().GetInbox(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.InboxItem{
		{ID: "r-1", MessageID: "msg-2", Subject: "New"},
		{ID: "r-2", MessageID: "msg-1", Subject: "Old", ReadAt: &readAt},
	}, nil)

	res, err := f.svc.GetForParent(actorContext("parent-1", constant.RoleParent, ""), gDto.QueryParams{Page: 1, Limit: 10}, "parent-1")
	require.NoError(t, err)
	require.Len(t, res.Messages, 2)
	assert.Equal(t, 1, res.Unread)
	assert.False(t, res.Messages[0].Read)
	assert.True(t, res.Messages[1].Read)

	_, err = f.svc.GetForParent(actorContext("parent-2", constant.RoleParent, ""), gDto.QueryParams{Page: 1, Limit: 10}, "parent-1")
	assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
}

func TestMessageService_UnreadCount(t *testing.T) {
	f := newFixture(t)

	f.recipients.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)

	res, err := f.svc.UnreadCount(actorContext("parent-1", constant.RoleParent, ""), "parent-1")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Unread)
}

func TestMessageService_MarkRead(t *testing.T) {
	parent := actorContext("parent-1", constant.RoleParent, "")
	readAt := timezone.Now()

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "stamps unread message",
			ctx:  parent,
			setupMock: func(f fixture) {
				f.recipients.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Recipient{ID: "r-1"}, nil)
				f.recipients.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Contains(t, fields, model.RecipientFieldReadAt)

						return nil
					})
			},
		},
		{
			name: "already read is a no-op",
			ctx:  parent,
			setupMock: func(f fixture) {
				f.recipients.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Recipient{ID: "r-1", ReadAt: &readAt}, nil)
			},
		},
		{
			name: "message not addressed to parent",
			ctx:  parent,
			setupMock: func(f fixture) {
				f.recipients.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Recipient{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:      "another parent",
			ctx:       actorContext("parent-2", constant.RoleParent, ""),
			setupMock: func(fixture) {},
			wantCode:  http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.MarkRead(tt.ctx, "parent-1", "msg-1")

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
