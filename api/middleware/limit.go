package middleware

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// client is a wrapper around rate.Limiter that also holds info on when the client was last seen.
type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a token bucket per client IP.
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	logger  *zap.Logger

	// The keys are IP addresses.
	mtx     sync.Mutex
	clients map[string]*client
}

// NewRateLimiter allows each client perSecond requests per second with the given burst.
// Clients idle for longer than idleTTL are forgotten by Cleanup.
func NewRateLimiter(perSecond float64, burst int, idleTTL time.Duration, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		idleTTL: idleTTL,
		logger:  logger,
		clients: make(map[string]*client),
	}
}

// limiterFor returns the rate.Limiter of a specific IP address, creating it on first use.
func (l *RateLimiter) limiterFor(ip string, now time.Time) *rate.Limiter {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	c, ok := l.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now

	return c.limiter
}

// removeIdle drops the limiters of clients not seen since before now-idleTTL and
// returns how many were dropped.
func (l *RateLimiter) removeIdle(now time.Time) int {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	removed := 0
	for ip, c := range l.clients {
		if now.Sub(c.lastSeen) > l.idleTTL {
			delete(l.clients, ip)
			removed++
		}
	}
	return removed
}

// Cleanup periodically clears unused limiters until ctx is done. It blocks, so run it in a goroutine.
func (l *RateLimiter) Cleanup(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if removed := l.removeIdle(now); removed > 0 {
				l.logger.Debug("Removed idle rate limiters", zap.Int("count", removed))
			}
		}
	}
}

// WithRateLimit applies token bucket rate limiting to a handler.
func (l *RateLimiter) WithRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := getIP(r)

		if !l.limiterFor(ip, time.Now()).Allow() {
			l.logger.Info("Rate-limited client", zap.String("ip", ip))
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// getIP returns the client IP of a request, taken from RemoteAddr only.
//
// When proxies are trusted, RemoteAddr has already been replaced by the forwarded address,
// which carries no port.
func getIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
