package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	characterQueries "github.com/andrescamacho/eve-wallet-go/internal/application/character/queries"
)

// newCharacterCommand creates the character command
func newCharacterCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "character",
		Short: "Resolve the character name to its id",
		Long: `Look up the configured character name and print its numeric id.

Example:
  eve-wallet character --character "Kali Lin"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, flags, func(ctx context.Context, a *app) error {
				if err := a.cfg.Character.RequireName(); err != nil {
					return err
				}

				resp, err := a.mediator.Send(ctx, &characterQueries.ResolveCharacterQuery{})
				if err != nil {
					return err
				}
				char := resp.(*characterQueries.ResolveCharacterResponse).Character

				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", char.Name, char.ID)
				return nil
			})
		},
	}
}
