package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"animebuddy/internal/api"
	"animebuddy/internal/config"
	"animebuddy/internal/logging"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			orch, catalog, err := ctx.assistant(reg)
			if err != nil {
				return err
			}

			addr := strings.TrimSpace(bind)
			if addr == "" {
				addr = cfg.API.Bind
			}

			server := newAPIServer(cfg, logger, orch, catalog, reg)

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("starting api server", logging.String("bind", addr))
			if err := server.Run(runCtx, addr); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			logger.Info("api server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Address to listen on (overrides api.bind)")
	return cmd
}

// newAPIServer wires the HTTP API. The server tags its own component, so
// logger is passed through untagged.
func newAPIServer(cfg *config.Config, logger *slog.Logger, assistant api.Assistant, browser api.Browser, gatherer prometheus.Gatherer) *api.Server {
	return api.NewServer(assistant, browser, api.Options{
		CORSAllowedOrigins: cfg.API.CORSAllowedOrigins,
		RequestTimeout:     cfg.RequestTimeout(),
		Gatherer:           gatherer,
		Logger:             logger,
	})
}
