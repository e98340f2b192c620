package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"aula/config"
	"aula/shared"
	"aula/shared/cache"
	"aula/shared/constant"
	"aula/transport/http/response"
)

const rateLimitCachePrefix = "ratelimit"

// Limiter is a fixed-window per-client rate limit backed by redis. The
// read-increment-write is not atomic; a burst racing the window boundary may
// slip a request or two through, which is acceptable for this use.
type Limiter struct {
	cache cache.RedisCache
	cfg   *config.Config
}

func NewLimiter(redisCache cache.RedisCache, cfg *config.Config) *Limiter {
	return &Limiter{
		cache: redisCache,
		cfg:   cfg,
	}
}

func (m *Limiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.cfg.App.RateLimiter.Enable {
			next.ServeHTTP(w, r)

			return
		}

		limit := m.cfg.App.RateLimiter.MaxRequests
		window := m.cfg.App.RateLimiter.WindowSeconds
		key := shared.BuildCacheKey(rateLimitCachePrefix, clientIP(r))

		count := 0
		_ = m.cache.Get(r.Context(), key, &count)

		if count >= limit {
			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limit))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, "0")
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(window))
			response.WithMessage(w, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)

			return
		}

		_ = m.cache.Save(r.Context(), key, count+1, window)

		w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limit))
		w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(limit-count-1))
		w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(window))

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get(constant.RequestHeaderForwardedFor); forwarded != constant.Empty {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	if realIP := r.Header.Get(constant.RequestHeaderRealIP); realIP != constant.Empty {
		return realIP
	}

	host := r.RemoteAddr
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	return host
}
