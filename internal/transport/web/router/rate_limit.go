package router

import (
	"net"
	"net/http"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/techcurrent/article-feed/internal/domain"
	"golang.org/x/time/rate"
)

// clientLimiters hands out one token bucket per client address. A bucket
// expires once its client has been idle for the cache TTL.
type clientLimiters struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters *gocache.Cache
}

const clientLimiterIdleTTL = 10 * time.Minute

func newClientLimiters(perSecond float64, burst int, idleTTL time.Duration) *clientLimiters {
	return &clientLimiters{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		limiters: gocache.New(idleTTL, 2*idleTTL),
	}
}

func (c *clientLimiters) get(client string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.limiters.Get(client)
	if !ok {
		l = rate.NewLimiter(c.limit, c.burst)
	}
	// Storing on every hit extends the expiry, so only idle clients lose their bucket.
	c.limiters.SetDefault(client, l)
	return l.(*rate.Limiter)
}

// rateLimitMiddleware rejects clients exceeding perSecond requests with 429.
// A non-positive perSecond disables limiting.
func rateLimitMiddleware(perSecond float64, burst int) func(http.Handler) http.Handler {
	if perSecond <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	limiters := newClientLimiters(perSecond, burst, clientLimiterIdleTTL)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientAddress(r)
			if !limiters.get(client).Allow() {
				ctx := r.Context()
				domain.LoggerFromContext(ctx).InfoContext(ctx, "rate limit exceeded", "client", client)
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
