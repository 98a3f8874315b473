package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pinionworks/pinion"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pinion",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pinion version %s\n", strings.TrimSpace(pinion.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
