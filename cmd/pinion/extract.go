package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pinionworks/pinion/internal/cli"
	"github.com/pinionworks/pinion/internal/filings"
)

var extractCmd = &cobra.Command{
	Use:   "extract <cik>...",
	Short: "Validate CIKs, fetch their filings and print extracted facts",
	Long: `Runs the extraction machine (validate -> retrieve -> extract) for each
given CIK without persisting anything.`,
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

		machine := filings.Extraction(retriever, extractor, machineOptions(cfg, logger)...)

		for _, rawCIK := range args {
			ing, err := machine.Run(cmd.Context(), filings.Ingestion{RawCIK: rawCIK})
			if err != nil {
				return err
			}
			cli.Report(os.Stdout, ing)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
