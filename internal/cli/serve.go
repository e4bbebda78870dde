package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/runoshun/hourlog/internal/app"
	"github.com/runoshun/hourlog/internal/infra/httpapi"
	"github.com/runoshun/hourlog/internal/infra/logging"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds how long in-flight requests may run after a signal.
const shutdownTimeout = 10 * time.Second

// newServeCommand creates the serve command.
func newServeCommand(c *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dialog over HTTP",
		Long: `Serve the dialog and statistics as a JSON HTTP API.

Endpoints:
  GET  /healthz                    liveness probe
  POST /v1/events                  run one dialog turn, returns the replies
  GET  /v1/users/{userID}/stats    statistics summary (?period=&project=&username=)
  GET  /v1/projects                registered projects
  GET  /v1/report                  spreadsheet report link

The address defaults to [server] addr. Log lines are mirrored to stderr.
The server stops gracefully on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = c.AppConfig.Server.Addr
			}
			if l, ok := c.Logger.(*logging.Logger); ok {
				l.WithMirror(cmd.ErrOrStderr())
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, c, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: [server] addr)")

	return cmd
}

// serve runs the HTTP API until ctx is cancelled.
func serve(ctx context.Context, c *app.Container, addr string) error {
	handler := httpapi.New(
		c.DialogUseCase(httpapi.Collector{}),
		c.ShowStatsUseCase(),
		c.ListProjectsUseCase(),
		c.ShowReportLinkUseCase(),
		c.Logger,
	)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c.Logger.Info("", "server", "listening on "+addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		c.Logger.Info("", "server", "shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
