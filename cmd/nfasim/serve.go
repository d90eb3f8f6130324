package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/nfasim/internal/cli"
	httpAdapter "github.com/aretw0/nfasim/pkg/adapters/http"
	"github.com/aretw0/nfasim/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Exposes the automata as a JSON API over HTTP, with Prometheus metrics on /metrics.
Definitions can be created and deleted over HTTP when they come from Redis or --file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		metrics, err := observability.NewMetrics(prometheus.DefaultRegisterer)
		if err != nil {
			return err
		}

		opts := optionsFrom(cmd)
		opts.Hooks = metrics.Hooks()
		opts.LogEvents = true
		app, err := cli.NewApp(cmd.Context(), opts)
		if err != nil {
			return err
		}
		defer app.Close()

		if cmd.Flags().Changed("addr") {
			app.Config.Addr, _ = cmd.Flags().GetString("addr")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		handlerOpts := []httpAdapter.Option{httpAdapter.WithLogger(app.Logger)}
		if app.Store != nil {
			handlerOpts = append(handlerOpts, httpAdapter.WithStore(app.Store))
		}

		if app.Config.Watch {
			if changes, err := app.Engine.Watch(ctx); err != nil {
				app.Logger.Warn("hot reload disabled", "error", err)
			} else {
				// The engine invalidates its cache as changes arrive; drain them.
				go func() {
					for range changes {
					}
				}()
			}
		}

		srv := &http.Server{
			Addr:    app.Config.Addr,
			Handler: httpAdapter.NewHandler(app.Engine, handlerOpts...),
		}

		serverErrors := make(chan error, 1)
		go func() {
			app.Logger.Info("nfasim server listening", "address", srv.Addr, "source", app.Engine.Name)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			app.Logger.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				app.Logger.Error("graceful shutdown did not complete", "error", err)
				return srv.Close()
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
}
