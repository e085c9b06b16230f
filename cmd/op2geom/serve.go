package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/op2geom/internal/api"
	"github.com/samcharles93/op2geom/internal/cache"
	"github.com/samcharles93/op2geom/internal/logger"
	"github.com/samcharles93/op2geom/internal/metrics"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		cacheDir    string
		maxBody     int64
		readTimeout time.Duration
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the decoder over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.StringFlag{
				Name:        "cache-dir",
				Usage:       "directory for the decode result cache (disabled when empty)",
				Destination: &cacheDir,
			},
			&cli.Int64Flag{
				Name:        "max-body",
				Usage:       "largest accepted stream in bytes",
				Value:       api.DefaultMaxBodyBytes,
				Destination: &maxBody,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read header timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyServeConfig(cmd, loaded, &addr, &cacheDir, &maxBody)

			opts := api.Options{
				Logger:       log,
				Metrics:      metrics.New(),
				MaxBodyBytes: maxBody,
			}
			if cacheDir != "" {
				c, err := cache.Open(cacheDir)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: open cache: %v", err), 1)
				}
				defer func() {
					if err := c.Close(); err != nil {
						log.Warn("closing cache", "error", err)
					}
				}()
				opts.Cache = c
				log.Info("result cache enabled", "dir", cacheDir)
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			api.NewServer(opts).Register(e)
			log.Info("starting server", "address", addr)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
