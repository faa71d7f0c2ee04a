package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	marketQueries "github.com/andrescamacho/eve-wallet-go/internal/application/market/queries"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/market"
)

// newQuotesCommand creates the quotes command
func newQuotesCommand(flags *globalFlags) *cobra.Command {
	var typeIDs []string

	cmd := &cobra.Command{
		Use:   "quotes",
		Short: "Show reference market quotes for item types",
		Long: `Query the market aggregator for the given item type ids in the
reference solar system. Needs no credentials.

Examples:
  eve-wallet quotes --type 34
  eve-wallet quotes --type 34 --type 35`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]market.TypeID, 0, len(typeIDs))
			for _, raw := range typeIDs {
				id, err := market.ParseTypeID(raw)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			return runWithApp(cmd, flags, func(ctx context.Context, a *app) error {
				resp, err := a.mediator.Send(ctx, &marketQueries.GetMarketQuotesQuery{TypeIDs: ids})
				if err != nil {
					return err
				}
				result := resp.(*marketQueries.GetMarketQuotesResponse)

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Reference system: %s\n\n", result.Book.SystemID())

				tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "TYPE\tSELL MIN\tSELL AVG\tSELL VOLUME\tBUY MAX")
				for _, id := range result.Book.TypeIDs() {
					q, err := result.Book.Get(id)
					if err != nil {
						return err
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
						id, money(q.SellMin()), money(q.SellAvg()), q.SellVolume(), money(q.BuyMax()))
				}
				for _, id := range result.Missing {
					fmt.Fprintf(tw, "%s\t-\t-\t-\t-\n", id)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().StringArrayVar(&typeIDs, "type", nil, "Item type id (repeatable)")
	if err := cmd.MarkFlagRequired("type"); err != nil {
		panic(fmt.Sprintf("quotes command: %v", err))
	}

	return cmd
}
