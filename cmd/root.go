package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "legislators",
	Short: "Legislator directory service",
	Long:  `A directory of current legislators with CSV ingestion, filtering, age statistics, and weather enrichment.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
