package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sportsassist/config"
	"sportsassist/infras/jwt"
	jwtMocks "sportsassist/infras/jwt/mocks"
	otelMocks "sportsassist/infras/otel/mocks"
	"sportsassist/permissions"
	"sportsassist/shared"
	"sportsassist/shared/cache"
	cacheMocks "sportsassist/shared/cache/mocks"
	"sportsassist/shared/constant"
	"sportsassist/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	jwtLib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const rules = `{
  "endpoints": [
    {"method": "POST", "path": "/v1/auth/login", "public": true},
    {"method": "GET", "path": "/v1/camps", "roles": ["superadmin", "admin", "staff", "parent"]},
    {"method": "POST", "path": "/v1/organizations", "roles": ["superadmin"]}
  ]
}`

type authFixture struct {
	jwt   *jwtMocks.MockJWT
	cache *cacheMocks.MockRedisCache
	otel  *otelMocks.Otel
	mux   http.Handler
	actor shared.Actor
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	table, err := permissions.Load([]byte(rules))
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	f := &authFixture{
		jwt:   jwtMocks.NewMockJWT(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		otel:  otelMocks.NewOtel(),
	}

	m := middleware.NewAuthRoleMiddleware(f.jwt, f.otel, table, cfg, f.cache)

	ok := func(w http.ResponseWriter, r *http.Request) {
		f.actor = shared.ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}

	root := chi.NewRouter()
	root.Route("/v1", func(r chi.Router) {
		r.Use(m.APIKey, m.Auth, m.RBAC)
		r.Post("/auth/login", ok)
		r.Get("/camps", ok)
		r.Post("/organizations", ok)
		r.Get("/unlisted", ok)
	})

	f.mux = root

	return f
}

func (f *authFixture) validToken(role string) {
	f.jwt.EXPECT().ValidateToken(gomock.Any(), "good-token", jwt.AccessToken).Return(&jwt.Claims{
		UserID:         "user-1",
		Email:          "user@example.com",
		Role:           role,
		OrganizationID: "org-1",
		TokenID:        "token-1",
		RegisteredClaims: jwtLib.RegisteredClaims{
			IssuedAt: jwtLib.NewNumericDate(tokenIssuedAt),
		},
	}, nil)
}

var tokenIssuedAt = time.Unix(1_760_000_000, 0)

func (f *authFixture) notRevoked() {
	f.cache.EXPECT().Get(gomock.Any(), shared.BuildCacheKey(constant.CacheKeyRevokedToken, "token-1"), gomock.Any()).Return(cache.Nil)
	f.cache.EXPECT().Get(gomock.Any(), shared.BuildCacheKey(constant.CacheKeyRevokedBefore, "user-1"), gomock.Any()).Return(cache.Nil)
}

// passwordChangedAt stores a per-user token cutoff.
func (f *authFixture) passwordChangedAt(at time.Time) {
	f.cache.EXPECT().Get(gomock.Any(), shared.BuildCacheKey(constant.CacheKeyRevokedToken, "token-1"), gomock.Any()).Return(cache.Nil)
	f.cache.EXPECT().Get(gomock.Any(), shared.BuildCacheKey(constant.CacheKeyRevokedBefore, "user-1"), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			*value.(*int64) = at.Unix()

			return nil
		})
}

func TestAuthRole(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		headers    map[string]string
		setupMock  func(f *authFixture)
		wantStatus int
		wantActor  shared.Actor
	}{
		{
			name:       "public route needs no token",
			method:     http.MethodPost,
			path:       "/v1/auth/login",
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			method:     http.MethodGet,
			path:       "/v1/camps",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			method:     http.MethodGet,
			path:       "/v1/camps",
			headers:    map[string]string{constant.RequestHeaderAuthorization: "Token abc"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:    "expired token",
			method:  http.MethodGet,
			path:    "/v1/camps",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer old-token"},
			setupMock: func(f *authFixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), "old-token", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:    "allowed role reaches handler with actor",
			method:  http.MethodGet,
			path:    "/v1/camps",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer good-token"},
			setupMock: func(f *authFixture) {
				f.validToken(constant.RoleParent)
				f.notRevoked()
			},
			wantStatus: http.StatusOK,
			wantActor:  shared.Actor{UserID: "user-1", Role: constant.RoleParent, OrganizationID: "org-1"},
		},
		{
			name:    "role not in rule",
			method:  http.MethodPost,
			path:    "/v1/organizations",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer good-token"},
			setupMock: func(f *authFixture) {
				f.validToken(constant.RoleAdmin)
				f.notRevoked()
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:    "route without rule is denied",
			method:  http.MethodGet,
			path:    "/v1/unlisted",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer good-token"},
			setupMock: func(f *authFixture) {
				f.validToken(constant.RoleSuperAdmin)
				f.notRevoked()
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:    "revoked token",
			method:  http.MethodGet,
			path:    "/v1/camps",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer good-token"},
			setupMock: func(f *authFixture) {
				f.validToken(constant.RoleParent)
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*bool) = true

						return nil
					})
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:    "token issued before password change",
			method:  http.MethodGet,
			path:    "/v1/camps",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer good-token"},
			setupMock: func(f *authFixture) {
				f.validToken(constant.RoleParent)
				f.passwordChangedAt(tokenIssuedAt.Add(time.Minute))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:    "token issued after password change",
			method:  http.MethodGet,
			path:    "/v1/camps",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer good-token"},
			setupMock: func(f *authFixture) {
				f.validToken(constant.RoleParent)
				f.passwordChangedAt(tokenIssuedAt.Add(-time.Minute))
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "internal api key skips auth",
			method:     http.MethodPost,
			path:       "/v1/organizations",
			headers:    map[string]string{constant.RequestHeaderAPIKey: "internal-key"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong api key",
			method:     http.MethodPost,
			path:       "/v1/organizations",
			headers:    map[string]string{constant.RequestHeaderAPIKey: "guess"},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			request := httptest.NewRequest(tt.method, tt.path, nil)
			for key, value := range tt.headers {
				request.Header.Set(key, value)
			}

			recorder := httptest.NewRecorder()
			f.mux.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantActor, f.actor)
		})
	}
}

func TestAuthRole_TracesRejection(t *testing.T) {
	f := newAuthFixture(t)

	recorder := httptest.NewRecorder()
	f.mux.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/camps", nil))

	scope := f.otel.Scope("auth.middleware")
	require.NotNil(t, scope)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Len(t, scope.Errors, 1)
	assert.True(t, scope.Ended)
}

func TestAuthRole_NilTableDeniesEverything(t *testing.T) {
	ctrl := gomock.NewController(t)
	jwtService := jwtMocks.NewMockJWT(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	m := middleware.NewAuthRoleMiddleware(jwtService, otelMocks.NewOtel(), nil, &config.Config{}, redisCache)

	jwtService.EXPECT().ValidateToken(gomock.Any(), "good-token", jwt.AccessToken).
		Return(&jwt.Claims{UserID: "user-1", Role: constant.RoleSuperAdmin, TokenID: "token-1"}, nil)
	redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)

	root := chi.NewRouter()
	root.Route("/v1", func(r chi.Router) {
		r.Use(m.Auth, m.RBAC)
		r.Get("/camps", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	})

	request := httptest.NewRequest(http.MethodGet, "/v1/camps", nil)
	request.Header.Set(constant.RequestHeaderAuthorization, "Bearer good-token")

	recorder := httptest.NewRecorder()
	root.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}
