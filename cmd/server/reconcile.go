package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nhtransport/config"
)

var reconcileDryRun bool

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Recompute stored booking amounts and statuses",
	Long:  "Recomputes the derived amounts and payment statuses of every booking and rewrites the ones whose stored values have drifted.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := config.NewLogger(cfg)

		a, err := openApp(cmd.Context(), cfg, logger, true)
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.bookingService().Reconcile(cmd.Context(), reconcileDryRun)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "checked %d bookings, %d drifted, %d updated\n", report.Checked, len(report.Drifted), report.Updated)
		for _, no := range report.Drifted {
			fmt.Fprintf(out, "  %s\n", no)
		}
		return nil
	},
}

func init() {
	reconcileCmd.Flags().BoolVar(&reconcileDryRun, "dry-run", false, "Report drift without writing")
	rootCmd.AddCommand(reconcileCmd)
}
