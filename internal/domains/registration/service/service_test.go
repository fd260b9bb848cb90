package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"sportsassist/config"
	kafkaMocks "sportsassist/infras/kafka/mocks"
	"sportsassist/infras/metrics"
	"sportsassist/infras/otel/mocks"
	pgMocks "sportsassist/infras/postgres/mocks"
	campMocks "sportsassist/internal/domains/camp/mocks"
	campModel "sportsassist/internal/domains/camp/model"
	childMocks "sportsassist/internal/domains/child/mocks"
	childModel "sportsassist/internal/domains/child/model"
	customFieldMocks "sportsassist/internal/domains/customfield/mocks"
	customFieldModel "sportsassist/internal/domains/customfield/model"
	registrationMocks "sportsassist/internal/domains/registration/mocks"
	"sportsassist/internal/domains/registration/model"
	"sportsassist/internal/domains/registration/model/dto"
	"sportsassist/internal/domains/registration/service"
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
	repo         *registrationMocks.MockRegistration
	camps        *campMocks.MockCamp
	children     *childMocks.MockChild
	customFields *customFieldMocks.MockCustomField
	answers      *customFieldMocks.MockAnswer
	transactor   *pgMocks.MockTransactor
	svc          service.Registration
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:         registrationMocks.NewMockRegistration(ctrl),
		camps:        campMocks.NewMockCamp(ctrl),
		children:     childMocks.NewMockChild(ctrl),
		customFields: customFieldMocks.NewMockCustomField(ctrl),
		answers:      customFieldMocks.NewMockAnswer(ctrl),
		transactor:   pgMocks.NewMockTransactor(ctrl),
	}

	kafkaClient := kafkaMocks.NewMockClient(ctrl)
	kafkaClient.EXPECT().Enabled().Return(false).AnyTimes()

	cfg := &config.Config{}

	f.svc = service.New(f.repo, f.camps, f.children, f.customFields, f.answers, f.transactor, cfg, kafkaClient, metrics.New(cfg), mocks.NewOtel())

	f.transactor.EXPECT().
		WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
			return fn(nil)
		}).
		AnyTimes()

	return f
}

func actorContext(userID, role, orgID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, role)

	return context.WithValue(ctx, constant.ContextKeyOrganizationID, orgID)
}

func intPtr(v int) *int {
	return &v
}

func openCamp() campModel.Camp {
	return campModel.Camp{
		ID:             "camp-1",
		OrganizationID: "org-1",
		StartDate:      timezone.Now().AddDate(0, 1, 0),
		EndDate:        timezone.Now().AddDate(0, 1, 5),
		MinAge:         intPtr(8),
		MaxAge:         intPtr(12),
		Capacity:       20,
		Status:         constant.CampStatusPublished,
	}
}

func tenYearOld() childModel.Child {
	return childModel.Child{
		ID:          "child-1",
		ParentID:    "parent-1",
		FullName:    "Sam",
		DateOfBirth: timezone.Now().AddDate(-10, 0, 0),
	}
}

var allergiesField = customFieldModel.CustomField{
	ID:        "field-1",
	Label:     "Allergies",
	FieldType: "text",
	Required:  true,
	Active:    true,
}

func TestRegistrationService_Create(t *testing.T) {
	parent := actorContext("parent-1", constant.RoleParent, "")
	req := dto.CreateRegistrationRequest{
		CampID:  "camp-1",
		ChildID: "child-1",
		Answers: map[string]any{"field-1": "peanuts"},
	}

	tests := []struct {
		name       string
		ctx        context.Context
		req        dto.CreateRegistrationRequest
		setupMock  func(f fixture)
		wantStatus string
		wantCode   int
	}{
		{
			name: "confirmed while seats remain",
			ctx:  parent,
			req:  req,
			setupMock: func(f fixture) {
				f.children.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tenYearOld(), nil)
				f.camps.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(openCamp(), nil)
				f.repo.EXPECT().CountTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)
				f.customFields.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]customFieldModel.CustomField{allergiesField}, nil)
				f.repo.EXPECT().CountTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(19, nil)
				f.repo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, registration model.Registration) error {
						assert.Equal(t, "parent-1", registration.ParentID)
						assert.Equal(t, constant.PaymentStatusUnpaid, registration.PaymentStatus)

						return nil
					})
				f.answers.EXPECT().
					InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, answers []customFieldModel.Answer) error {
						require.Len(t, answers, 1)
						assert.Equal(t, "field-1", answers[0].CustomFieldID)
						assert.Equal(t, "peanuts", answers[0].Value)

						return nil
					})
			},
			wantStatus: constant.RegistrationStatusConfirmed,
		},
		{
			name: "waitlisted when full",
			ctx:  parent,
			req:  dto.CreateRegistrationRequest{CampID: "camp-1", ChildID: "child-1"},
			setupMock: func(f fixture) {
				camp := openCamp()
				camp.WaitlistEnabled = true

				f.children.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tenYearOld(), nil)
				f.camps.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(camp, nil)
				f.repo.EXPECT().CountTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)
				f.customFields.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				f.repo.EXPECT().CountTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(20, nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: constant.RegistrationStatusWaitlisted,
		},
		{
			name: "rejected when full without waitlist",
			ctx:  parent,
			req:  dto.CreateRegistrationRequest{CampID: "camp-1", ChildID: "child-1"},
			setupMock: func(f fixture) {
				f.children.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tenYearOld(), nil)
				f.camps.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(openCamp(), nil)
				f.repo.EXPECT().CountTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)
				f.customFields.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				f.repo.EXPECT().CountTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(20, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "duplicate registration",
			ctx:  parent,
			req:  req,
			setupMock: func(f fixture) {
				f.children.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tenYearOld(), nil)
				f.camps.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(openCamp(), nil)
				f.repo.EXPECT().CountTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(1, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "required answer missing",
			ctx:  parent,
			req:  dto.CreateRegistrationRequest{CampID: "camp-1", ChildID: "child-1"},
			setupMock: func(f fixture) {
				f.children.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tenYearOld(), nil)
				f.camps.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(openCamp(), nil)
				f.repo.EXPECT().CountTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)
				f.customFields.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]customFieldModel.CustomField{allergiesField}, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "draft camp",
			ctx:  parent,
			req:  req,
			setupMock: func(f fixture) {
				camp := openCamp()
				camp.Status = constant.CampStatusDraft

				f.children.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tenYearOld(), nil)
				f.camps.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(camp, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "camp already started",
			ctx:  parent,
			req:  req,
			setupMock: func(f fixture) {
				camp := openCamp()
				camp.StartDate = timezone.Now().AddDate(0, 0, -1)

				f.children.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tenYearOld(), nil)
				f.camps.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(camp, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "child too old",
			ctx:  parent,
			req:  req,
			setupMock: func(f fixture) {
				camp := openCamp()
				camp.MaxAge = intPtr(9)

				f.children.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tenYearOld(), nil)
				f.camps.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(camp, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "another parent's child",
			ctx:  actorContext("parent-2", constant.RoleParent, ""),
			req:  req,
			setupMock: func(f fixture) {
				f.children.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tenYearOld(), nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "unknown camp",
			ctx:  parent,
			req:  req,
			setupMock: func(f fixture) {
				f.children.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tenYearOld(), nil)
				f.camps.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(campModel.Camp{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(tt.ctx, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.NotEmpty(t, res.ID)
		})
	}
}

func TestRegistrationService_Cancel(t *testing.T) {
	registration := func(status string) model.Registration {
		return model.Registration{ID: "reg-1", CampID: "camp-1", ChildID: "child-1", ParentID: "parent-1", Status: status}
	}

	t.Run("confirmed cancellation promotes the oldest waitlisted", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(registration(constant.RegistrationStatusConfirmed), nil)
		f.camps.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(openCamp(), nil)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(registration(constant.RegistrationStatusConfirmed), nil)

		var updated []string

		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) error {
				_, args := filter.GetWhereClause()
				updated = append(updated, args["id"].(string)+"="+fields["status"].(string))

				return nil
			}).
			Times(2)
		f.repo.EXPECT().
			GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Registration, error) {
				_, args := filter.GetWhereClause()

				assert.Equal(t, 1, params.Limit)
				assert.Equal(t, gDto.SortDirAsc, params.SortDir)
				assert.Equal(t, constant.RegistrationStatusWaitlisted, args["status"])

				return []model.Registration{{ID: "reg-2", CampID: "camp-1", Status: constant.RegistrationStatusWaitlisted}}, nil
			})
		f.repo.EXPECT().CountTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(19, nil)

		res, err := f.svc.Cancel(actorContext("parent-1", constant.RoleParent, ""), "reg-1")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, constant.RegistrationStatusCancelled, res.Status)
		assert.Equal(t, []string{"reg-1=cancelled", "reg-2=confirmed"}, updated)
	})

	t.Run("waitlisted cancellation frees no seat", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(registration(constant.RegistrationStatusWaitlisted), nil)
		f.camps.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(openCamp(), nil)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(registration(constant.RegistrationStatusWaitlisted), nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.Cancel(actorContext("parent-1", constant.RoleParent, ""), "reg-1")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
	})

	t.Run("empty waitlist", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(registration(constant.RegistrationStatusConfirmed), nil)
		f.camps.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(openCamp(), nil)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(registration(constant.RegistrationStatusConfirmed), nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := f.svc.Cancel(actorContext("parent-1", constant.RoleParent, ""), "reg-1")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
	})

	t.Run("already cancelled", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(registration(constant.RegistrationStatusCancelled), nil)
		f.camps.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(openCamp(), nil)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(registration(constant.RegistrationStatusCancelled), nil)

		_, err := f.svc.Cancel(actorContext("parent-1", constant.RoleParent, ""), "reg-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("someone else's registration", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(registration(constant.RegistrationStatusConfirmed), nil)
		f.camps.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(openCamp(), nil)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(registration(constant.RegistrationStatusConfirmed), nil)

		_, err := f.svc.Cancel(actorContext("parent-2", constant.RoleParent, ""), "reg-1")

		assert.True(t, failure.IsNotFound(err))
	})
}

func TestRegistrationService_UpdateStatus(t *testing.T) {
	waitlisted := model.Registration{ID: "reg-1", CampID: "camp-1", Status: constant.RegistrationStatusWaitlisted, PaymentStatus: constant.PaymentStatusUnpaid}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.UpdateRegistrationStatusRequest
		current   model.Registration
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name:    "staff confirms a waitlisted registration with a free seat",
			ctx:     actorContext("staff-1", constant.RoleStaff, "org-1"),
			req:     dto.UpdateRegistrationStatusRequest{Status: constant.RegistrationStatusConfirmed},
			current: waitlisted,
			setupMock: func(f fixture) {
				f.repo.EXPECT().CountTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(19, nil)
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:    "confirm rejected when full",
			ctx:     actorContext("staff-1", constant.RoleStaff, "org-1"),
			req:     dto.UpdateRegistrationStatusRequest{Status: constant.RegistrationStatusConfirmed},
			current: waitlisted,
			setupMock: func(f fixture) {
				f.repo.EXPECT().CountTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(20, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:    "record payment only",
			ctx:     actorContext("admin-1", constant.RoleAdmin, "org-1"),
			req:     dto.UpdateRegistrationStatusRequest{PaymentStatus: constant.PaymentStatusPaid},
			current: waitlisted,
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, constant.PaymentStatusPaid, fields["payment_status"])
						assert.NotContains(t, fields, "status")

						return nil
					})
			},
		},
		{
			name:     "cancelled cannot be reopened",
			ctx:      actorContext("staff-1", constant.RoleStaff, "org-1"),
			req:      dto.UpdateRegistrationStatusRequest{Status: constant.RegistrationStatusConfirmed},
			current:  model.Registration{ID: "reg-1", CampID: "camp-1", Status: constant.RegistrationStatusCancelled},
			wantCode: http.StatusConflict,
		},
		{
			name:     "staff of another organization",
			ctx:      actorContext("staff-2", constant.RoleStaff, "org-2"),
			req:      dto.UpdateRegistrationStatusRequest{PaymentStatus: constant.PaymentStatusPaid},
			current:  waitlisted,
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.current, nil)
			f.camps.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(openCamp(), nil)
			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.current, nil)

			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			res, err := f.svc.UpdateStatus(tt.ctx, tt.req, "reg-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "reg-1", res.ID)
		})
	}
}

func TestRegistrationService_UpdateStatus_EmptyRequest(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateStatus(actorContext("staff-1", constant.RoleStaff, "org-1"), dto.UpdateRegistrationStatusRequest{}, "reg-1")

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestRegistrationService_GetAll(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		want     string
		wantCode int
	}{
		{name: "parent scope", ctx: actorContext("parent-1", constant.RoleParent, ""), want: "registrations.parent_id = :parent_id"},
		{name: "staff scope", ctx: actorContext("staff-1", constant.RoleStaff, "org-1"), want: "camps.organization_id = :organization_id"},
		{name: "superadmin unscoped", ctx: actorContext("root", constant.RoleSuperAdmin, "")},
		{name: "staff without organization", ctx: actorContext("staff-1", constant.RoleStaff, ""), wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			if tt.wantCode == 0 {
				f.repo.EXPECT().CountDetails(gomock.Any(), gomock.Any()).Return(1, nil)
				f.repo.EXPECT().
					GetDetails(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) ([]model.Detail, error) {
						where, _ := filter.GetWhereClause()

						if tt.want != "" {
							assert.Contains(t, where, tt.want)
						} else {
							assert.Empty(t, where)
						}

						return []model.Detail{{ID: "reg-1", CampName: "Summer Soccer", ChildName: "Sam"}}, nil
					})
			}

			res, err := f.svc.GetAll(tt.ctx, gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			require.Len(t, res.Registrations, 1)
			assert.Equal(t, "Summer Soccer", res.Registrations[0].CampName)
		})
	}
}

func TestRegistrationService_Get(t *testing.T) {
	detail := model.Detail{ID: "reg-1", ParentID: "parent-1", OrganizationID: "org-1", Status: constant.RegistrationStatusConfirmed}

	t.Run("owner sees answers", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(detail, nil)
		f.answers.EXPECT().GetDetails(gomock.Any(), gomock.Any()).Return([]customFieldModel.AnswerDetail{
			{CustomFieldID: "field-1", Label: "Allergies", FieldType: "text", Value: "peanuts"},
		}, nil)

		res, err := f.svc.Get(actorContext("parent-1", constant.RoleParent, ""), "reg-1")

		require.NoError(t, err)
		require.Len(t, res.Answers, 1)
		assert.Equal(t, "peanuts", res.Answers[0].Value)
	})

	t.Run("staff of the camp organization", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(detail, nil)
		f.answers.EXPECT().GetDetails(gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := f.svc.Get(actorContext("staff-1", constant.RoleStaff, "org-1"), "reg-1")

		require.NoError(t, err)
	})

	t.Run("hidden from other parents", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(detail, nil)

		_, err := f.svc.Get(actorContext("parent-2", constant.RoleParent, ""), "reg-1")

		assert.True(t, failure.IsNotFound(err))
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(model.Detail{}, errors.New("db down"))

		_, err := f.svc.Get(actorContext("parent-1", constant.RoleParent, ""), "reg-1")

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestRegistrationService_Roster(t *testing.T) {
	f := newFixture(t)

	start := time.Date(2030, 7, 1, 0, 0, 0, 0, time.UTC)

	f.camps.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openCamp(), nil)
	f.repo.EXPECT().
		GetDetails(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) ([]model.Detail, error) {
			where, _ := filter.GetWhereClause()
			assert.Contains(t, where, "registrations.status != :status")

			return []model.Detail{
				{ID: "reg-1", Status: constant.RegistrationStatusConfirmed, CampStartDate: start, ChildDateOfBirth: time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)},
				{ID: "reg-2", Status: constant.RegistrationStatusWaitlisted, CampStartDate: start, ChildDateOfBirth: time.Date(2019, 8, 1, 0, 0, 0, 0, time.UTC)},
			}, nil
		})

	res, err := f.svc.Roster(actorContext("staff-1", constant.RoleStaff, "org-1"), "camp-1")

	require.NoError(t, err)
	assert.Equal(t, 1, res.Confirmed)
	assert.Equal(t, 1, res.Waitlisted)
	assert.Equal(t, 10, res.Entries[0].AgeAtStart)
	assert.Equal(t, 10, res.Entries[1].AgeAtStart)

	parent := newFixture(t)
	parent.camps.EXPECT().Get(gomock.Any(), gomock.Any()).Return(openCamp(), nil)

	_, err = parent.svc.Roster(actorContext("parent-1", constant.RoleParent, ""), "camp-1")
	assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
}
