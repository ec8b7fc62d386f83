package api

import (
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"go.uber.org/zap"

	"go-helloworld/api/middleware"
)

// Options tunes the middleware wrapped around the router.
type Options struct {
	// RequestTimeout bounds the time spent in a handler. Zero disables it.
	RequestTimeout time.Duration
	// Limiter enables per-client rate limiting when set.
	Limiter *middleware.RateLimiter
	// TrustProxy takes the client address from forwarding headers. Otherwise it is the TCP peer.
	TrustProxy bool
}

// withMiddleware wraps h with, from outermost to innermost: panic recovery, proxy headers
// (if trusted), request logging, rate limiting, the request timeout and CORS.
//
// CORS is configured to work with Stremio. Preflight requests may only ask for the headers
// listed here, the CORS-safelisted ones included.
func withMiddleware(h http.Handler, logger *zap.Logger, opts Options) http.Handler {
	headersOk := handlers.AllowedHeaders([]string{
		"Content-Type",
		"X-Requested-With",
		"Accept",
		"Accept-Language",
		"Accept-Encoding",
		"Content-Language",
		"Origin",
		middleware.RequestIdHeader,
	})
	originsOk := handlers.AllowedOrigins([]string{"*"})
	methodsOk := handlers.AllowedMethods([]string{http.MethodGet})
	h = handlers.CORS(originsOk, headersOk, methodsOk)(h)

	if opts.RequestTimeout > 0 {
		h = http.TimeoutHandler(h, opts.RequestTimeout, "")
	}

	if opts.Limiter != nil {
		h = opts.Limiter.WithRateLimit(h)
	}

	h = middleware.WithLogging(logger)(h)
	if opts.TrustProxy {
		h = handlers.ProxyHeaders(h)
	}

	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(zap.NewStdLog(logger)),
		handlers.PrintRecoveryStack(true),
	)(h)
}
