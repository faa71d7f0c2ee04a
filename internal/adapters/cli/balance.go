package cli

import (
	"context"

	"github.com/spf13/cobra"

	characterQueries "github.com/andrescamacho/eve-wallet-go/internal/application/character/queries"
)

// newBalanceCommand creates the balance command
func newBalanceCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the wallet balance",
		Long: `Print the balance of the character's first wallet account.
Prints "unavailable" when the API returns no wallet account.

Example:
  eve-wallet balance`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, flags, func(ctx context.Context, a *app) error {
				if err := a.cfg.Character.RequireCredentials(); err != nil {
					return err
				}

				resp, err := a.mediator.Send(ctx, &characterQueries.GetAccountBalanceQuery{})
				if err != nil {
					return err
				}

				writeBalanceLine(cmd.OutOrStdout(), resp.(*characterQueries.GetAccountBalanceResponse).Balance)
				return nil
			})
		},
	}
}
