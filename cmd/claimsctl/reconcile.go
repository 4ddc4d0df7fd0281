package main

import (
	"encoding/json"
	"fmt"

	"claim-escrow-engine/internal/app"

	"github.com/spf13/cobra"
)

func reconcileCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Run one settlement reconciliation pass and print its result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(flags)
			if err != nil {
				return err
			}
			// A fresh simulated contract holds none of the API's escrows, so a
			// pass would mark every pending settlement as failed.
			if cfg.Chain.Mode == "simulated" {
				return fmt.Errorf("reconcile requires chain.mode=rpc: the simulated contract only exists inside the API process")
			}

			a, err := app.New(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.Reconciler.RunOnce(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
}
