package main

import (
	"os"

	"github.com/spf13/cobra"

	"nhtransport/config"
)

var rootCmd = &cobra.Command{
	Use:   "nhtransport",
	Short: "Transport booking ledger API",
	Long:  "Back office API for transport bookings: party and vehicle ledgers, delivery tracking and invoices.",
	// running without a subcommand starts the server
	RunE: runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig is shared by every subcommand.
func loadConfig() (*config.Config, error) {
	return config.LoadConfig()
}
