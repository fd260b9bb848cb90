package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"sportsassist/config"
	"sportsassist/infras/otel/mocks"
	userMocks "sportsassist/internal/domains/user/mocks"
	"sportsassist/internal/domains/user/model"
	"sportsassist/internal/domains/user/model/dto"
	"sportsassist/internal/domains/user/service"
	cacheMocks "sportsassist/shared/cache/mocks"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (service.User, *userMocks.MockUser, *cacheMocks.MockRedisCache) {
	ctrl := gomock.NewController(t)

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func actorContext(userID, role, orgID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, role)

	return context.WithValue(ctx, constant.ContextKeyOrganizationID, orgID)
}

func stringPtr(s string) *string {
	return &s
}

func TestUserService_Create(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.CreateUserRequest
		setupMock func(repo *userMocks.MockUser)
		wantCode  int
	}{
		{
			name: "admin creates staff in own organization",
			ctx:  actorContext("admin-1", constant.RoleAdmin, "org-1"),
			req:  dto.CreateUserRequest{Email: "Coach@Example.com ", Password: "password1", FullName: "Coach", Role: constant.RoleStaff},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().EmailTaken(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user model.User) error {
						assert.Equal(t, "coach@example.com", user.Email)
						assert.Equal(t, "org-1", user.Organization())
						assert.NotEqual(t, "password1", user.Password)

						return nil
					})
			},
		},
		{
			name:     "admin cannot create parent",
			ctx:      actorContext("admin-1", constant.RoleAdmin, "org-1"),
			req:      dto.CreateUserRequest{Email: "p@example.com", Password: "password1", FullName: "P", Role: constant.RoleParent},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "admin cannot create in another organization",
			ctx:      actorContext("admin-1", constant.RoleAdmin, "org-1"),
			req:      dto.CreateUserRequest{OrganizationID: "org-2", Email: "s@example.com", Password: "password1", FullName: "S", Role: constant.RoleStaff},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "staff cannot create users",
			ctx:      actorContext("staff-1", constant.RoleStaff, "org-1"),
			req:      dto.CreateUserRequest{Email: "s@example.com", Password: "password1", FullName: "S", Role: constant.RoleStaff},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "superadmin must name an organization for staff",
			ctx:      actorContext("root", constant.RoleSuperAdmin, ""),
			req:      dto.CreateUserRequest{Email: "s@example.com", Password: "password1", FullName: "S", Role: constant.RoleStaff},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			ctx:  actorContext("root", constant.RoleSuperAdmin, ""),
			req:  dto.CreateUserRequest{Email: "p@example.com", Password: "password1", FullName: "P", Role: constant.RoleParent},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().EmailTaken(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "repository error",
			ctx:  actorContext("root", constant.RoleSuperAdmin, ""),
			req:  dto.CreateUserRequest{Email: "p@example.com", Password: "password1", FullName: "P", Role: constant.RoleParent},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().EmailTaken(gomock.Any(), gomock.Any()).Return(false, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			res, err := svc.Create(tt.ctx, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
		})
	}
}

func TestUserService_Get(t *testing.T) {
	staff := model.User{ID: "staff-1", OrganizationID: stringPtr("org-1"), Email: "s@example.com", Role: constant.RoleStaff, Active: true}

	tests := []struct {
		name     string
		ctx      context.Context
		wantCode int
	}{
		{name: "self", ctx: actorContext("staff-1", constant.RoleStaff, "org-1")},
		{name: "same organization admin", ctx: actorContext("admin-1", constant.RoleAdmin, "org-1")},
		{name: "other organization admin", ctx: actorContext("admin-2", constant.RoleAdmin, "org-2"), wantCode: http.StatusForbidden},
		{name: "parent", ctx: actorContext("parent-1", constant.RoleParent, ""), wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := newService(t)

			cache.EXPECT().Get(gomock.Any(), "user:get:staff-1", gomock.Any()).Return(errors.New("cache miss"))
			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staff, nil)

			res, err := svc.Get(tt.ctx, "staff-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Empty(t, res.ID)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "org-1", res.OrganizationID)
			assert.Equal(t, "s@example.com", res.Email)
		})
	}
}

func TestUserService_GetAll_ScopesToOrganization(t *testing.T) {
	svc, repo, cache := newService(t)

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.User, error) {
			where, args := filter.GetWhereClause()
			assert.Contains(t, where, "users.organization_id = :organization_id")
			assert.Equal(t, "org-1", args["organization_id"])

			return []model.User{{ID: "staff-1", OrganizationID: stringPtr("org-1")}}, nil
		})

	res, err := svc.GetAll(actorContext("admin-1", constant.RoleAdmin, "org-1"), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Len(t, res.Users, 1)

	_, err = svc.GetAll(actorContext("parent-1", constant.RoleParent, ""), gDto.QueryParams{}, gDto.FilterGroup{})
	assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
}

func TestUserService_Update(t *testing.T) {
	staff := model.User{ID: "staff-1", OrganizationID: stringPtr("org-1"), Role: constant.RoleStaff}
	active := false

	tests := []struct {
		name     string
		ctx      context.Context
		req      dto.UpdateUserRequest
		wantCode int
	}{
		{name: "self profile", ctx: actorContext("staff-1", constant.RoleStaff, "org-1"), req: dto.UpdateUserRequest{FullName: "New Name"}},
		{name: "self role change", ctx: actorContext("staff-1", constant.RoleStaff, "org-1"), req: dto.UpdateUserRequest{Role: constant.RoleAdmin}, wantCode: http.StatusForbidden},
		{name: "admin deactivates staff", ctx: actorContext("admin-1", constant.RoleAdmin, "org-1"), req: dto.UpdateUserRequest{Active: &active}},
		{name: "admin promotes to superadmin", ctx: actorContext("admin-1", constant.RoleAdmin, "org-1"), req: dto.UpdateUserRequest{Role: constant.RoleSuperAdmin}, wantCode: http.StatusForbidden},
		{name: "staff edits colleague", ctx: actorContext("staff-2", constant.RoleStaff, "org-1"), req: dto.UpdateUserRequest{FullName: "X"}, wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)

			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staff, nil)

			if tt.wantCode == 0 {
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			}

			err := svc.Update(tt.ctx, tt.req, "staff-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}

	t.Run("empty request", func(t *testing.T) {
		svc, _, _ := newService(t)

		err := svc.Update(actorContext("staff-1", constant.RoleStaff, "org-1"), dto.UpdateUserRequest{}, "staff-1")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestUserService_Delete(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "admin-1", OrganizationID: stringPtr("org-1")}, nil)

	err := svc.Delete(actorContext("admin-1", constant.RoleAdmin, "org-1"), "admin-1")
	assert.Equal(t, http.StatusForbidden, failure.GetCode(err))

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "staff-1", OrganizationID: stringPtr("org-1")}, nil)
	repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	err = svc.Delete(actorContext("admin-1", constant.RoleAdmin, "org-1"), "staff-1")

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

	err = svc.Delete(actorContext("root", constant.RoleSuperAdmin, ""), "missing")
	assert.True(t, failure.IsNotFound(err))
}
