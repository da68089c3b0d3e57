package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ytlink/pkg/cli/config"
	controller "github.com/m-mizutani/ytlink/pkg/controller/http"
	"github.com/m-mizutani/ytlink/pkg/infra/metrics"
	"github.com/m-mizutani/ytlink/pkg/usecase"
	"github.com/m-mizutani/ytlink/pkg/utils/async"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg   config.Server
		providerCfg config.Provider
	)

	var flags []cli.Flag
	flags = append(flags, serverCfg.Flags()...)
	flags = append(flags, providerCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)
			addr := serverCfg.Addr()

			logger.Info("Starting ytlink server",
				slog.String("addr", addr),
				slog.String("provider_url", providerCfg.URL),
				slog.Duration("provider_timeout", providerCfg.Timeout),
			)

			m := metrics.New()
			dispatcher := async.New()

			// Create use cases
			downloadUC := usecase.NewDownload(
				providerCfg.NewClient(m),
				usecase.WithDispatcher(dispatcher),
				usecase.WithMetrics(m),
			)

			// Create HTTP server with options
			server, err := controller.NewServer(
				ctx,
				downloadUC,
				controller.WithAddr(addr),
				controller.WithMetrics(m),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server starting",
					slog.String("addr", addr),
					slog.String("example", "http://localhost:"+serverCfg.Port+"/api/download?url=https://www.youtube.com/watch?v=dQw4w9WgXcQ&quality=720&format=mp4"),
				)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			case err := <-errCh:
				return goerr.Wrap(err, "HTTP server error", goerr.V("addr", addr))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), serverCfg.ShutdownTimeout)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			// Let pending cache registrations finish
			if err := dispatcher.Wait(shutdownCtx); err != nil {
				logger.Warn("Pending registrations were abandoned", slog.Any("error", err))
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
