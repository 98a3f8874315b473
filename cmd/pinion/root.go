package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pinionworks/pinion"
	"github.com/pinionworks/pinion/internal/adapters/edgar"
	"github.com/pinionworks/pinion/internal/adapters/regexext"
	"github.com/pinionworks/pinion/internal/cli"
	"github.com/pinionworks/pinion/internal/filings"
	"github.com/pinionworks/pinion/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "pinion",
	Short: "Pinion ingests SEC filings through a nested state machine pipeline",
	Long: `Pinion validates CIKs, retrieves company facts from SEC EDGAR,
extracts structured fields with configurable rules and stores the results.

The extract and ingest commands are independent consumers of the same
pipeline: extract stops after extraction, ingest persists the outcome.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a pinion config file (YAML)")
	rootCmd.PersistentFlags().String("user-agent", "", "User-Agent for EDGAR requests (overrides config)")
}

// setup loads configuration and builds the logger shared by all commands.
func setup(cmd *cobra.Command, jsonLogs bool) (cli.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := cli.Load(path)
	if err != nil {
		return cli.Config{}, nil, err
	}

	if ua, _ := cmd.Flags().GetString("user-agent"); ua != "" {
		cfg.UserAgent = ua
	}

	return cfg, logging.New(parseLevel(cfg.LogLevel), jsonLogs), nil
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// buildCollaborators wires the retrieval and extraction ports from config.
func buildCollaborators(cfg cli.Config) (filings.Retriever, filings.Extractor, error) {
	var edgarOpts []edgar.Option
	if cfg.BaseURL != "" {
		edgarOpts = append(edgarOpts, edgar.WithBaseURL(cfg.BaseURL))
	}

	retriever, err := edgar.New(cfg.UserAgent, edgarOpts...)
	if err != nil {
		return nil, nil, err
	}

	extractor, err := regexext.New(cfg.Rules)
	if err != nil {
		return nil, nil, err
	}

	return retriever, extractor, nil
}

func machineOptions(cfg cli.Config, logger *slog.Logger) []pinion.Option[filings.Ingestion] {
	return []pinion.Option[filings.Ingestion]{
		pinion.WithLogger[filings.Ingestion](logger),
		pinion.WithStepLimit[filings.Ingestion](cfg.StepLimit),
	}
}
