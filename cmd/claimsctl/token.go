package main

import (
	"fmt"

	"claim-escrow-engine/internal/adapter/http/dto"
	"claim-escrow-engine/internal/core/domain"
	"claim-escrow-engine/internal/service"

	"github.com/spf13/cobra"
)

func tokenCommand(flags *globalFlags) *cobra.Command {
	var (
		subject string
		role    string
		wallet  string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local testing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(flags)
			if err != nil {
				return err
			}

			p := domain.Principal{UserID: subject, Role: domain.Role(role), WalletAddress: wallet}
			switch p.Role {
			case domain.RoleClaimant:
				if !dto.IsWalletAddress(p.WalletAddress) {
					return fmt.Errorf("--wallet must be a 0x-prefixed 40 hex digit address for CLAIMANT tokens")
				}
			case domain.RoleAdjuster, domain.RoleAdmin:
			default:
				return fmt.Errorf("unknown role %q", role)
			}

			tok, exp, err := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer).Generate(p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", exp.UTC().Format("2006-01-02T15:04:05Z"))
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "sub", "", "user id (token subject)")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleClaimant), "CLAIMANT, ADJUSTER or ADMIN")
	cmd.Flags().StringVar(&wallet, "wallet", "", "claimant wallet address")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}
