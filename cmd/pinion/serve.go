package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/pinionworks/pinion"
	"github.com/pinionworks/pinion/internal/adapters/httpapi"
	"github.com/pinionworks/pinion/internal/adapters/ident"
	"github.com/pinionworks/pinion/internal/adapters/redisfacts"
	"github.com/pinionworks/pinion/internal/cli"
	"github.com/pinionworks/pinion/internal/filings"
	"github.com/pinionworks/pinion/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ingestion pipeline over HTTP",
	Long: `Starts the HTTP API: POST /v1/filings/{cik} runs the ingestion machine,
GET /v1/filings/{cik} reads stored records back, /metrics exposes Prometheus
metrics for every machine step.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd, true)
		if err != nil {
			return err
		}

		retriever, extractor, err := buildCollaborators(cfg)
		if err != nil {
			return err
		}

		store := redisfacts.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer store.Close()

		reg := prometheus.NewRegistry()
		metrics := observability.New(reg)

		opts := append(machineOptions(cfg, logger),
			pinion.WithHooks[filings.Ingestion](metrics.Hooks()))
		machine := filings.IngestionMachine(retriever, extractor, ident.New(), store, opts...)

		run := func(ctx context.Context, rawCIK string) (filings.Ingestion, error) {
			return machine.Run(ctx, filings.Ingestion{RawCIK: rawCIK})
		}

		addr, _ := cmd.Flags().GetString("addr")
		srv := &http.Server{
			Addr:              addr,
			Handler:           httpapi.NewHandler(run, store, reg, logger),
			ReadHeaderTimeout: 5 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cli.PrintBanner()
		logger.Info("serving", "addr", addr, "version", pinion.Version)

		errCh := make(chan error, 1)
		go func() {
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "Listen address")
}
