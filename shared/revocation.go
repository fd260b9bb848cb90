package shared

import (
	"context"
	"errors"
	"time"

	"sportsassist/shared/cache"
	"sportsassist/shared/constant"

	"github.com/rs/zerolog/log"
)

// RevokeToken marks one token id unusable for ttl seconds.
func RevokeToken(ctx context.Context, redisCache cache.RedisCache, tokenID string, ttl int) {
	if tokenID == constant.Empty {
		return
	}

	if err := redisCache.Save(ctx, BuildCacheKey(constant.CacheKeyRevokedToken, tokenID), true, ttl); err != nil {
		log.Error().Err(err).Str("token_id", tokenID).Msg("failed to revoke token")
	}
}

// RevokeTokensBefore rejects every token of the user issued before at. The
// cutoff is kept for ttl seconds, which must cover the longest token lifetime.
func RevokeTokensBefore(ctx context.Context, redisCache cache.RedisCache, userID string, at time.Time, ttl int) error {
	if err := redisCache.Save(ctx, BuildCacheKey(constant.CacheKeyRevokedBefore, userID), at.Unix(), ttl); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to revoke user tokens")

		return err //nolint:wrapcheck
	}

	return nil
}

// TokenRevoked reports whether the token id was revoked or the token was
// issued before its user's cutoff. Redis errors count as not revoked.
func TokenRevoked(ctx context.Context, redisCache cache.RedisCache, tokenID, userID string, issuedAt time.Time) bool {
	if tokenID != constant.Empty {
		var revoked bool

		err := redisCache.Get(ctx, BuildCacheKey(constant.CacheKeyRevokedToken, tokenID), &revoked)
		if err == nil && revoked {
			return true
		}

		logLookupError(err, "token_id", tokenID)
	}

	if userID == constant.Empty {
		return false
	}

	var cutoff int64

	err := redisCache.Get(ctx, BuildCacheKey(constant.CacheKeyRevokedBefore, userID), &cutoff)
	if err != nil {
		logLookupError(err, "user_id", userID)

		return false
	}

	return issuedAt.Unix() < cutoff
}

func logLookupError(err error, key, value string) {
	if err != nil && !errors.Is(err, cache.Nil) {
		log.Error().Err(err).Str(key, value).Msg("failed to check token revocation")
	}
}
