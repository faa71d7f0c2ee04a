package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	serverQueries "github.com/andrescamacho/eve-wallet-go/internal/application/server/queries"
)

// newStatusCommand creates the status command
func newStatusCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show game server status",
		Long: `Show whether the game server is open, how many players are online
and the server time. Needs no credentials.

Example:
  eve-wallet status`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, flags, func(ctx context.Context, a *app) error {
				resp, err := a.mediator.Send(ctx, &serverQueries.GetServerStatusQuery{})
				if err != nil {
					return err
				}
				status := resp.(*serverQueries.GetServerStatusResponse).Status

				state := "closed"
				if status.Open {
					state = "open"
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Server:          %s\n", state)
				fmt.Fprintf(out, "Online players:  %d\n", status.OnlinePlayers)
				fmt.Fprintf(out, "Server time:     %s\n", status.CurrentTime)
				return nil
			})
		},
	}
}
