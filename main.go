package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"go.uber.org/zap"

	"go-helloworld/api"
	"go-helloworld/api/middleware"
	"go-helloworld/internal/catalog"
	"go-helloworld/internal/config"
	"go-helloworld/internal/logger"
)

func main() {
	app := cli.NewApp()
	app.Name = "go-helloworld"
	app.Usage = "Serves the Hello World Go Stremio addon"
	app.Version = catalog.Version
	app.Flags = config.Flags()
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "main: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.FromContext(c)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	defer log.Sync()

	log.Info("Initializing", zap.String("version", catalog.Version), zap.Any("config", cfg))

	svc := catalog.Default()
	if err := svc.Validate(); err != nil {
		log.Error("Invalid addon tables", zap.Error(err))
		return errors.Wrap(err, "invalid addon tables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := api.Options{
		RequestTimeout: cfg.RequestTimeout,
		TrustProxy:     cfg.TrustProxy,
	}
	if cfg.RateLimitEnabled() {
		opts.Limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, cfg.RateCleanup, log)
		go opts.Limiter.Cleanup(ctx)
	}

	router := api.BuildRouter(svc, log, opts)

	if err := api.Serve(ctx, router, cfg, log); err != nil {
		log.Error("Fatal error when trying to serve", zap.Error(err))
		return err
	}

	log.Info("Terminated")
	return nil
}
