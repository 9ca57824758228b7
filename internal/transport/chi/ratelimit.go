package chi

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/domain"
	"github.com/grant-briv/ai-seo-blog-writer-v4-sub001/internal/usecase/ratelimit"
)

type limiter interface {
	Allow(ctx context.Context, subject string) (ratelimit.Decision, error)
}

// RateLimitMiddleware enforces the per-key request limit.
// Callers are identified by API key, or by client IP when unauthenticated.
func RateLimitMiddleware(l limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d, err := l.Allow(r.Context(), rateLimitSubject(r))
			if d.Limit > 0 {
				w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(d.Limit, 10))
				w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(d.Remaining, 10))
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))
			}
			if errors.Is(err, domain.ErrRateLimited) {
				retry := max(int64(time.Until(d.ResetAt).Seconds()), 1)
				w.Header().Set("Retry-After", strconv.FormatInt(retry, 10))
				writeError(w, http.StatusTooManyRequests, ErrorResponseCodeRateLimited, err.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// rateLimitSubject keys by a hash of the bearer token so keys never reach the store.
func rateLimitSubject(r *http.Request) string {
	if token, reason := bearerToken(r); reason == "" {
		h := sha256.Sum256([]byte(token))
		return "key:" + hex.EncodeToString(h[:8])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
