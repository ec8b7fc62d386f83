package config

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"go.uber.org/multierr"
)

const (
	BindAddrFlag        = "bind-addr"
	PortFlag            = "port"
	LogLevelFlag        = "log-level"
	LogEncodingFlag     = "log-encoding"
	RequestTimeoutFlag  = "request-timeout"
	ShutdownTimeoutFlag = "shutdown-timeout"
	RateLimitFlag       = "rate-limit"
	RateBurstFlag       = "rate-burst"
	RateCleanupFlag     = "rate-cleanup"
	TrustProxyFlag      = "trust-proxy"
)

// Config holds everything the server needs to start.
type Config struct {
	BindAddr        string        `json:"bindAddr"`
	Port            int           `json:"port"`
	LogLevel        string        `json:"logLevel"`
	LogEncoding     string        `json:"logEncoding"`
	RequestTimeout  time.Duration `json:"requestTimeout"`
	ShutdownTimeout time.Duration `json:"shutdownTimeout"`

	// Requests per second per client, 0 disables rate limiting.
	RateLimit   float64       `json:"rateLimit"`
	RateBurst   int           `json:"rateBurst"`
	RateCleanup time.Duration `json:"rateCleanup"`

	// Take the client address from X-Forwarded-For and friends. Only enable behind a reverse proxy.
	TrustProxy bool `json:"trustProxy"`
}

// Flags returns the command line flags of the server. Each one can also be set
// through its environment variable.
func Flags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:   BindAddrFlag,
			Usage:  `local interface address to bind to, "0.0.0.0" binds to all interfaces`,
			Value:  "0.0.0.0",
			EnvVar: "BIND_ADDR",
		},
		cli.IntFlag{
			Name:   PortFlag,
			Usage:  "port to listen on",
			Value:  7000,
			EnvVar: "PORT",
		},
		cli.StringFlag{
			Name:   LogLevelFlag,
			Usage:  `one of "debug", "info", "warn", "error"`,
			Value:  "info",
			EnvVar: "LOG_LEVEL",
		},
		cli.StringFlag{
			Name:   LogEncodingFlag,
			Usage:  `"console" or "json"`,
			Value:  "console",
			EnvVar: "LOG_ENCODING",
		},
		cli.DurationFlag{
			Name:   RequestTimeoutFlag,
			Usage:  "max time to handle a single request, 0 disables the timeout",
			Value:  30 * time.Second,
			EnvVar: "REQUEST_TIMEOUT",
		},
		cli.DurationFlag{
			Name:   ShutdownTimeoutFlag,
			Usage:  "max time to wait for open connections on shutdown",
			Value:  9 * time.Second,
			EnvVar: "SHUTDOWN_TIMEOUT",
		},
		cli.Float64Flag{
			Name:   RateLimitFlag,
			Usage:  "requests per second allowed per client IP, 0 disables rate limiting",
			Value:  0,
			EnvVar: "RATE_LIMIT",
		},
		cli.IntFlag{
			Name:   RateBurstFlag,
			Usage:  "burst size for rate limiting",
			Value:  20,
			EnvVar: "RATE_BURST",
		},
		cli.DurationFlag{
			Name:   RateCleanupFlag,
			Usage:  "idle time after which a client's rate limiter is dropped",
			Value:  3 * time.Minute,
			EnvVar: "RATE_CLEANUP",
		},
		cli.BoolFlag{
			Name:   TrustProxyFlag,
			Usage:  "use X-Forwarded-For, X-Real-IP and Forwarded as the client address",
			EnvVar: "TRUST_PROXY",
		},
	}
}

// FromContext reads the flags registered by Flags and validates them.
func FromContext(c *cli.Context) (*Config, error) {
	cfg := &Config{
		BindAddr:        c.String(BindAddrFlag),
		Port:            c.Int(PortFlag),
		LogLevel:        c.String(LogLevelFlag),
		LogEncoding:     c.String(LogEncodingFlag),
		RequestTimeout:  c.Duration(RequestTimeoutFlag),
		ShutdownTimeout: c.Duration(ShutdownTimeoutFlag),
		RateLimit:       c.Float64(RateLimitFlag),
		RateBurst:       c.Int(RateBurstFlag),
		RateCleanup:     c.Duration(RateCleanupFlag),
		TrustProxy:      c.Bool(TrustProxyFlag),
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return cfg, nil
}

// Validate returns all problems with the config at once.
func (c *Config) Validate() error {
	var err error

	if c.Port < 1 || c.Port > 65535 {
		err = multierr.Append(err, errors.Errorf("port must be between 1 and 65535, got %d", c.Port))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, errors.Errorf("unknown log level %q", c.LogLevel))
	}
	if c.LogEncoding != "console" && c.LogEncoding != "json" {
		err = multierr.Append(err, errors.Errorf(`log encoding must be "console" or "json", got %q`, c.LogEncoding))
	}
	if c.RequestTimeout < 0 {
		err = multierr.Append(err, errors.New("request timeout must not be negative"))
	}
	if c.ShutdownTimeout <= 0 {
		err = multierr.Append(err, errors.New("shutdown timeout must be positive"))
	}
	if c.RateLimit < 0 {
		err = multierr.Append(err, errors.New("rate limit must not be negative"))
	}
	if c.RateLimit > 0 {
		if c.RateBurst < 1 {
			err = multierr.Append(err, errors.New("rate burst must be at least 1 when rate limiting is enabled"))
		}
		if c.RateCleanup <= 0 {
			err = multierr.Append(err, errors.New("rate cleanup must be positive when rate limiting is enabled"))
		}
	}

	return err
}

// Addr is the address the server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.BindAddr, c.Port)
}

// RateLimitEnabled reports whether clients should be rate limited.
func (c *Config) RateLimitEnabled() bool {
	return c.RateLimit > 0
}
