package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Amr-9/btcvanity/internal/api"
	"github.com/Amr-9/btcvanity/internal/job"
	"github.com/Amr-9/btcvanity/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(flags *rootFlags) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP search service and web page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			controller := job.NewController(newSearcher(cfg),
				job.WithLogger(log.Named("job")),
				job.WithMetrics(metrics.New(reg)),
			)

			gin.SetMode(gin.ReleaseMode)
			server := api.NewServer(cfg.Server.Addr(), controller, log.Named("http"), reg)

			errCh := make(chan error, 1)
			go func() { errCh <- server.ListenAndServe() }()

			select {
			case err := <-errCh:
				if err != nil {
					return err
				}
			case <-ctx.Done():
				log.Info("shutting down")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Error("HTTP shutdown failed", zap.Error(err))
			}
			if err := controller.Shutdown(shutdownCtx); err != nil {
				log.Warn("search loop still running at exit", zap.Error(err))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Listen host (default from config, 127.0.0.1)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (default from config or $PORT, 3000)")
	return cmd
}
