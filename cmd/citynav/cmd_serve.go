package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/UtkershBasnet/CityNavigator/internal/cache"
	"github.com/UtkershBasnet/CityNavigator/internal/server"
	"github.com/UtkershBasnet/CityNavigator/internal/service"
)

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.serve(cmd.Context())
		},
	}
}

func (c *cli) serve(ctx context.Context) error {
	if !c.cfg.HTTP.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	var store service.ResultStore
	if c.cfg.Cache.Enabled {
		rc, err := cache.Open(cache.Config{
			Dir:    c.cfg.Cache.Dir,
			TTL:    c.cfg.Cache.TTL,
			Logger: c.logger,
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := rc.Close(); err != nil {
				c.logger.Warn("closing route cache failed", "error", err)
			}
		}()
		store = rc
	}

	svc, err := c.newService(ctx, store)
	if err != nil {
		return err
	}

	router := server.NewRouter(c.logger, server.RouterDependencies{
		Service:        svc,
		AllowedOrigins: c.cfg.HTTP.AllowedOrigins(),
	})
	srv := server.New(c.logger, c.cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var runErr error
	select {
	case <-sigCtx.Done():
		c.logger.Info("received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			c.logger.Error("server stopped unexpectedly", "error", err)
			runErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		c.logger.Error("graceful shutdown failed", "error", err)
	}
	return runErr
}
