package jwt_test

import (
	"context"
	"testing"

	"sportsassist/config"
	"sportsassist/infras/jwt"
	"sportsassist/infras/otel/mocks"
	"sportsassist/shared/constant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(accessMin int) jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "sportsassist"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = accessMin
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg, mocks.NewOtel())
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newService(15)
	ctx := context.Background()

	subject := jwt.Subject{UserID: "user-1", Email: "coach@example.com", Role: constant.RoleStaff, OrganizationID: "org-1"}

	pair, err := svc.GenerateTokenPair(ctx, subject)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, subject, claims.Subject())
	assert.NotEmpty(t, claims.TokenID)

	_, err = svc.ValidateToken(ctx, pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.ValidateToken(ctx, "garbage", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newService(-1)
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, jwt.Subject{UserID: "user-1", Email: "p@example.com", Role: constant.RoleParent})
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}

func TestValidateToken_RejectsForeignIssuer(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{}
	cfg.App.Name = "other-service"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	pair, err := jwt.New(cfg, mocks.NewOtel()).GenerateTokenPair(ctx, jwt.Subject{UserID: "user-1", Role: constant.RoleParent})
	require.NoError(t, err)

	_, err = newService(15).ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestGenerateTokenPair_DistinctTokenIDs(t *testing.T) {
	svc := newService(15)
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, jwt.Subject{UserID: "user-1", Role: constant.RoleParent})
	require.NoError(t, err)

	access, err := svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)

	refresh, err := svc.ValidateToken(ctx, pair.RefreshToken, jwt.RefreshToken)
	require.NoError(t, err)

	assert.NotEqual(t, access.TokenID, refresh.TokenID)
	assert.Equal(t, access.Subject(), refresh.Subject())
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer token", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "scheme is case insensitive", header: "bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "surrounding whitespace", header: "  Bearer   abc.def.ghi ", want: "abc.def.ghi"},
		{name: "basic scheme", header: "Basic abc", wantErr: true},
		{name: "scheme only", header: "Bearer", wantErr: true},
		{name: "empty token", header: "Bearer   ", wantErr: true},
		{name: "empty header", header: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwt.ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}
