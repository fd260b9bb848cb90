package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"sportsassist/config"
	"sportsassist/infras/jwt"
	jwtMocks "sportsassist/infras/jwt/mocks"
	"sportsassist/infras/otel/mocks"
	"sportsassist/internal/domains/auth/model/dto"
	"sportsassist/internal/domains/auth/service"
	userMocks "sportsassist/internal/domains/user/mocks"
	userModel "sportsassist/internal/domains/user/model"
	"sportsassist/shared/cache"
	cacheMocks "sportsassist/shared/cache/mocks"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/failure"
	gModel "sportsassist/shared/model"
	"sportsassist/shared/timezone"

	jwtLib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// "password" hashed with bcrypt cost 10.
const passwordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

type fixture struct {
	repo  *userMocks.MockUser
	jwt   *jwtMocks.MockJWT
	cache *cacheMocks.MockRedisCache
	svc   service.Auth
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  userMocks.NewMockUser(ctrl),
		jwt:   jwtMocks.NewMockJWT(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 1440

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.jwt)

	return f
}

func staffUser() userModel.User {
	orgID := "org-1"

	return userModel.User{
		ID:             "user-id-123",
		OrganizationID: &orgID,
		Email:          "coach@example.com",
		Password:       passwordHash,
		FullName:       "Coach Carter",
		Role:           constant.RoleStaff,
		Active:         true,
		Metadata:       gModel.NewMetadata(constant.ContextSystem, timezone.Now()),
	}
}

func userContext(userID, tokenID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyTokenID, tokenID)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "creates parent account",
			setupMock: func(f fixture) {
				f.repo.EXPECT().EmailTaken(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) error {
						assert.Equal(t, constant.RoleParent, user.Role)
						assert.Equal(t, "parent@example.com", user.Email)
						assert.NotEqual(t, "password1", user.Password)

						return nil
					})
			},
		},
		{
			name: "email already registered",
			setupMock: func(f fixture) {
				f.repo.EXPECT().EmailTaken(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "repository error",
			setupMock: func(f fixture) {
				f.repo.EXPECT().EmailTaken(gomock.Any(), gomock.Any()).Return(false, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Register(context.Background(), dto.RegisterRequest{
				Email:    "Parent@Example.com",
				Password: "password1",
				FullName: "Pat Parent",
			})

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, constant.RoleParent, res.Role)
			assert.Empty(t, res.OrganizationID)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	validUser := staffUser()

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "Coach@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetByEmail(gomock.Any(), "coach@example.com").Return(validUser, nil)
				f.jwt.EXPECT().
					GenerateTokenPair(gomock.Any(), jwt.Subject{
						UserID:         validUser.ID,
						Email:          validUser.Email,
						Role:           constant.RoleStaff,
						OrganizationID: "org-1",
					}).
					Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)
				f.repo.EXPECT().RecordLogin(gomock.Any(), validUser.ID, gomock.Any()).Return(nil)
			},
		},
		{
			name: "last login failure does not block login",
			req:  dto.LoginRequest{Email: "coach@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetByEmail(gomock.Any(), "coach@example.com").Return(validUser, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any()).Return(&jwt.TokenPair{AccessToken: "access-token"}, nil)
				f.repo.EXPECT().RecordLogin(gomock.Any(), validUser.ID, gomock.Any()).Return(errors.New("database error"))
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "coach@example.com", Password: "wrongpassword"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetByEmail(gomock.Any(), "coach@example.com").Return(validUser, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "inactive user",
			req:  dto.LoginRequest{Email: "coach@example.com", Password: "password"},
			setupMock: func(f fixture) {
				inactive := validUser
				inactive.Active = false

				f.repo.EXPECT().GetByEmail(gomock.Any(), "coach@example.com").Return(inactive, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "token generation fails",
			req:  dto.LoginRequest{Email: "coach@example.com", Password: "password"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetByEmail(gomock.Any(), "coach@example.com").Return(validUser, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any()).Return(nil, errors.New("signing error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Login(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.Equal(t, validUser.ID, res.User.ID)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	issuedAt := time.Unix(1_760_000_000, 0)
	claims := &jwt.Claims{
		UserID:           "user-id-123",
		TokenID:          "refresh-1",
		Type:             jwt.RefreshToken,
		RegisteredClaims: jwtLib.RegisteredClaims{IssuedAt: jwtLib.NewNumericDate(issuedAt)},
	}
	revokedKey := constant.CacheKeyRevokedToken + ":refresh-1"
	cutoffKey := constant.CacheKeyRevokedBefore + ":user-id-123"

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "rotates the refresh token",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh-token", jwt.RefreshToken).Return(claims, nil)
				f.cache.EXPECT().Get(gomock.Any(), revokedKey, gomock.Any()).Return(cache.Nil)
				f.cache.EXPECT().Get(gomock.Any(), cutoffKey, gomock.Any()).Return(cache.Nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staffUser(), nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any()).Return(&jwt.TokenPair{AccessToken: "new-access"}, nil)
				f.cache.EXPECT().Save(gomock.Any(), revokedKey, true, 1440*60).Return(nil)
			},
		},
		{
			name: "invalid token",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "revoked token",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(claims, nil)
				f.cache.EXPECT().
					Get(gomock.Any(), revokedKey, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*(value.(*bool)) = true

						return nil
					})
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "issued before password change",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(claims, nil)
				f.cache.EXPECT().Get(gomock.Any(), revokedKey, gomock.Any()).Return(cache.Nil)
				f.cache.EXPECT().
					Get(gomock.Any(), cutoffKey, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*(value.(*int64)) = issuedAt.Add(time.Second).Unix()

						return nil
					})
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "deactivated user",
			setupMock: func(f fixture) {
				inactive := staffUser()
				inactive.Active = false

				f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(claims, nil)
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).Times(2)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "new-access", res.AccessToken)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("revokes access and refresh tokens", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Save(gomock.Any(), constant.CacheKeyRevokedToken+":access-1", true, 15*60).Return(nil)
		f.jwt.EXPECT().
			ValidateToken(gomock.Any(), "refresh-token", jwt.RefreshToken).
			Return(&jwt.Claims{UserID: "user-id-123", TokenID: "refresh-1"}, nil)
		f.cache.EXPECT().Save(gomock.Any(), constant.CacheKeyRevokedToken+":refresh-1", true, 1440*60).Return(nil)

		err := f.svc.Logout(userContext("user-id-123", "access-1"), dto.LogoutRequest{RefreshToken: "refresh-token"})
		assert.NoError(t, err)
	})

	t.Run("refresh token of another user", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.jwt.EXPECT().
			ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&jwt.Claims{UserID: "someone-else", TokenID: "refresh-2"}, nil)

		err := f.svc.Logout(userContext("user-id-123", "access-1"), dto.LogoutRequest{RefreshToken: "refresh-token"})
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("missing token id", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Logout(context.Background(), dto.LogoutRequest{})
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_Me(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staffUser(), nil)

	res, err := f.svc.Me(userContext("user-id-123", "access-1"))

	require.NoError(t, err)
	assert.Equal(t, "coach@example.com", res.Email)
	assert.Equal(t, "org-1", res.OrganizationID)

	_, err = f.svc.Me(context.Background())
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}

func TestAuthService_ChangePassword(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "successful password change",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staffUser(), nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.NotEqual(t, "newpassword123", fields["password"])

						return nil
					})
				f.cache.EXPECT().Save(gomock.Any(), constant.CacheKeyRevokedToken+":access-1", true, 15*60).Return(nil)
				f.cache.EXPECT().
					Save(gomock.Any(), constant.CacheKeyRevokedBefore+":user-id-123", gomock.Any(), 1440*60).
					DoAndReturn(func(_ context.Context, _ string, value any, _ int) error {
						assert.InDelta(t, timezone.Now().Unix(), value.(int64), 5)

						return nil
					})
			},
		},
		{
			name: "wrong current password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "newpassword123"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(staffUser(), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "user not found",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "newpassword123"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.ChangePassword(userContext("user-id-123", "access-1"), tt.req)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
