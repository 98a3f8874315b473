package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pinionworks/pinion/internal/adapters/ident"
	"github.com/pinionworks/pinion/internal/adapters/memstore"
	"github.com/pinionworks/pinion/internal/adapters/redisfacts"
	"github.com/pinionworks/pinion/internal/cli"
	"github.com/pinionworks/pinion/internal/filings"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <cik>...",
	Short: "Run the full pipeline and store extracted facts",
	Long: `Runs the ingestion machine for each given CIK: the extraction machine
nested as a single step, followed by storage. Results land in Redis unless
--dry-run keeps them in memory.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd, false)
		if err != nil {
			return err
		}

		retriever, extractor, err := buildCollaborators(cfg)
		if err != nil {
			return err
		}

		var store filings.FactStore
		if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
			store = memstore.New()
		} else {
			redisStore := redisfacts.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
			defer redisStore.Close()
			store = redisStore
		}

		machine := filings.IngestionMachine(retriever, extractor, ident.New(), store,
			machineOptions(cfg, logger)...)

		for _, rawCIK := range args {
			ing, err := machine.Run(cmd.Context(), filings.Ingestion{RawCIK: rawCIK})
			if err != nil {
				return err
			}
			logger.Info("filing ingested", "cik", ing.CIK, "record", ing.RecordID)
			cli.Report(os.Stdout, ing)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().Bool("dry-run", false, "Extract and report without writing to Redis")
}
