package main

import (
	"encoding/json"
	"fmt"

	"claim-escrow-engine/internal/app"
	"claim-escrow-engine/internal/core/domain"
	"claim-escrow-engine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// claimReport is the operator view of one claim and its escrow.
type claimReport struct {
	Claim              *domain.Claim         `json:"claim"`
	SettlementAttempts int                   `json:"settlement_attempts"`
	FailureReason      *string               `json:"failure_reason"`
	NeedsReview        bool                  `json:"needs_review"`
	Escrow             *domain.EscrowAccount `json:"escrow"`
}

func inspectCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <claim-id>",
		Short: "Print a claim with its settlement bookkeeping and escrow account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid claim id %q: %w", args[0], err)
			}

			cfg, log, err := loadConfig(flags)
			if err != nil {
				return err
			}
			a, err := app.New(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			claim, err := a.ClaimRepo.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if claim == nil {
				return apperror.ErrNotFound("claim")
			}

			report := claimReport{
				Claim:              claim,
				SettlementAttempts: claim.SettlementAttempts,
				FailureReason:      claim.FailureReason,
				NeedsReview:        claim.NeedsReview,
			}
			acct, err := a.Ledger.Get(cmd.Context(), id)
			switch {
			case err == nil:
				report.Escrow = acct
			case !apperror.HasCode(err, apperror.CodeNotFound):
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}
}
