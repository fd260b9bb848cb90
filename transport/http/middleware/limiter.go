package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"sportsassist/shared"
	"sportsassist/shared/constant"
	"sportsassist/transport/http/response"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"

	bucketAuth = "auth"
	bucketAPI  = "api"

	authPathPrefix = "/v1/auth/"
)

// bucket splits credential endpoints from the rest so login and sign-up
// attempts get their own, smaller budget.
func (a *appMiddleware) bucket(r *http.Request) (string, int) {
	limits := a.config.App.RateLimiter

	if strings.HasPrefix(r.URL.Path, authPathPrefix) && r.Method == http.MethodPost {
		return bucketAuth, limits.AuthMaxRequests
	}

	return bucketAPI, limits.MaxRequests
}

// RateLimit counts requests per client IP in a fixed Redis window. Redis
// failures let the request through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			window := a.config.App.RateLimiter.WindowSeconds
			bucket, limit := a.bucket(r)

			if !a.config.App.RateLimiter.Enable || limit <= 0 || window <= 0 {
				next.ServeHTTP(w, r)

				return
			}

			key := shared.BuildCacheKey(cacheKeyRateLimit, bucket, clientIP(r))

			count, err := a.cache.Increment(r.Context(), key, window)
			if err != nil {
				log.Warn().Err(err).Str("bucket", bucket).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limit))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, limit-int(count))))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(window))

			if int(count) > limit {
				w.Header().Set(constant.RequestHeaderRetryAfter, strconv.Itoa(window))
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	// X-Forwarded-For may list several hops, the client is the first one
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != constant.Empty {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != constant.Empty {
		return strings.TrimSpace(xri)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
