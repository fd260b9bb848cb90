package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"sportsassist/config"
	otelMocks "sportsassist/infras/otel/mocks"
	pgMocks "sportsassist/infras/postgres/mocks"
	cfMocks "sportsassist/internal/domains/customfield/mocks"
	"sportsassist/internal/domains/customfield/model"
	"sportsassist/internal/domains/customfield/model/dto"
	"sportsassist/internal/domains/customfield/service"
	"sportsassist/shared/cache"
	cacheMocks "sportsassist/shared/cache/mocks"
	"sportsassist/shared/catalog"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo       *cfMocks.MockCustomField
	transactor *pgMocks.MockTransactor
	cache      *cacheMocks.MockRedisCache
	svc        service.CustomField
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:       cfMocks.NewMockCustomField(ctrl),
		transactor: pgMocks.NewMockTransactor(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.transactor, cfg, f.cache, otelMocks.NewOtel())

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func actorContext(role, orgID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, role)

	return context.WithValue(ctx, constant.ContextKeyOrganizationID, orgID)
}

func runInTx(f fixture) {
	f.transactor.EXPECT().
		WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
			return fn(nil)
		})
}

func TestCustomFieldService_Create(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.CreateCustomFieldRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "appends to the end of the form",
			ctx:  actorContext(constant.RoleAdmin, "org-1"),
			req:  dto.CreateCustomFieldRequest{Label: "T-shirt", FieldType: catalog.FieldTypeSelect, Options: []string{"S", "M"}},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, field model.CustomField) error {
						assert.Equal(t, 3, field.DisplayOrder)
						assert.Equal(t, "org-1", field.OrganizationID)
						assert.True(t, field.Active)

						return nil
					})
			},
		},
		{
			name:     "staff cannot build forms",
			ctx:      actorContext(constant.RoleStaff, "org-1"),
			req:      dto.CreateCustomFieldRequest{Label: "Notes", FieldType: catalog.FieldTypeText},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "admin of another organization",
			ctx:      actorContext(constant.RoleAdmin, "org-2"),
			req:      dto.CreateCustomFieldRequest{Label: "Notes", FieldType: catalog.FieldTypeText},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "select without options",
			ctx:      actorContext(constant.RoleAdmin, "org-1"),
			req:      dto.CreateCustomFieldRequest{Label: "Size", FieldType: catalog.FieldTypeSelect},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "organization missing",
			ctx:  actorContext(constant.RoleSuperAdmin, ""),
			req:  dto.CreateCustomFieldRequest{Label: "Notes", FieldType: catalog.FieldTypeText, DisplayOrder: intPtr(0)},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			res, err := f.svc.Create(tt.ctx, tt.req, "org-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, []string{"S", "M"}, res.Options)
		})
	}
}

func TestCustomFieldService_GetAll_HidesInactiveFromOutsiders(t *testing.T) {
	tests := []struct {
		name       string
		ctx        context.Context
		wantActive bool
		wantKey    string
	}{
		{name: "organization staff", ctx: actorContext(constant.RoleStaff, "org-1"), wantKey: "customfield:gets:org-1:all"},
		{name: "parent", ctx: actorContext(constant.RoleParent, ""), wantActive: true, wantKey: "customfield:gets:org-1:active"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.cache.EXPECT().Get(gomock.Any(), tt.wantKey, gomock.Any()).Return(cache.Nil)
			f.repo.EXPECT().
				GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.CustomField, error) {
					where, _ := filter.GetWhereClause()
					assert.Equal(t, tt.wantActive, strings.Contains(where, "custom_fields.active = :active"))
					assert.Equal(t, "custom_fields.display_order", params.SortBy)

					return []model.CustomField{{ID: "f1", OrganizationID: "org-1", Active: true}}, nil
				})

			res, err := f.svc.GetAll(tt.ctx, "org-1")

			time.Sleep(10 * time.Millisecond)

			require.NoError(t, err)
			assert.Len(t, res.CustomFields, 1)
		})
	}
}

func TestCustomFieldService_Get_InactiveHidden(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.CustomField{ID: "f1", OrganizationID: "org-1", Active: false}, nil)

	_, err := f.svc.Get(actorContext(constant.RoleParent, ""), "f1")

	time.Sleep(10 * time.Millisecond)

	assert.True(t, failure.IsNotFound(err))
}

func TestCustomFieldService_Update(t *testing.T) {
	field := model.CustomField{ID: "f1", OrganizationID: "org-1", FieldType: catalog.FieldTypeText, Active: true}

	t.Run("options on a text field", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(field, nil)

		err := f.svc.Update(actorContext(constant.RoleAdmin, "org-1"), dto.UpdateCustomFieldRequest{Options: []string{"a"}}, "f1")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("deactivates", func(t *testing.T) {
		f := newFixture(t)
		inactive := false

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(field, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, &inactive, fields["active"])

				return nil
			})

		err := f.svc.Update(actorContext(constant.RoleAdmin, "org-1"), dto.UpdateCustomFieldRequest{Active: &inactive}, "f1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}

func TestCustomFieldService_Delete_WithAnswers(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.CustomField{ID: "f1", OrganizationID: "org-1"}, nil)
	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})

	err := f.svc.Delete(actorContext(constant.RoleAdmin, "org-1"), "f1")
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}

func TestCustomFieldService_Reorder(t *testing.T) {
	existing := []model.CustomField{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	t.Run("writes positions in request order", func(t *testing.T) {
		f := newFixture(t)
		runInTx(f)

		f.repo.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(existing, nil)

		var orders []int

		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				orders = append(orders, *(fields["display_order"].(*int)))

				return nil
			}).
			Times(3)

		err := f.svc.Reorder(actorContext(constant.RoleAdmin, "org-1"), dto.ReorderCustomFieldsRequest{FieldIDs: []string{"c", "a", "b"}}, "org-1")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2}, orders)
	})

	t.Run("foreign id aborts", func(t *testing.T) {
		f := newFixture(t)
		runInTx(f)

		f.repo.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(existing, nil)

		err := f.svc.Reorder(actorContext(constant.RoleAdmin, "org-1"), dto.ReorderCustomFieldsRequest{FieldIDs: []string{"zzz"}}, "org-1")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newFixture(t)
		runInTx(f)

		f.repo.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))

		err := f.svc.Reorder(actorContext(constant.RoleAdmin, "org-1"), dto.ReorderCustomFieldsRequest{FieldIDs: []string{"a"}}, "org-1")
		assert.Error(t, err)
	})
}

func intPtr(i int) *int {
	return &i
}
