package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/eve-wallet-go/internal/application/report"
	reportQueries "github.com/andrescamacho/eve-wallet-go/internal/application/report/queries"
)

// newReportCommand creates the report command
func newReportCommand(flags *globalFlags) *cobra.Command {
	var (
		format        string
		missingQuotes string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the wallet profit report",
		Long: `Fetch the character's wallet transactions, price each one against the
reference market sell minimum and print the profit per transaction.

profit = (sell price - market price) * quantity

Output (csv):
  Total balance: <balance>
  <timestamp>,<quantity>,<item name>,<sell price>,<market price>,<profit>
  ...
  Balance change: <sum of profits>

Missing quote policies:
  skip   - leave the transaction out (default)
  zero   - price it at 0 and mark it as estimated
  abort  - fail the report

Examples:
  eve-wallet report
  eve-wallet report --format table
  eve-wallet report --missing-quotes abort`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, flags, func(ctx context.Context, a *app) error {
				if err := a.cfg.Character.RequireCredentials(); err != nil {
					return err
				}

				policyName := a.cfg.Report.MissingQuotePolicy
				if cmd.Flags().Changed("missing-quotes") {
					policyName = missingQuotes
				}
				policy, err := report.ParseMissingQuotePolicy(policyName)
				if err != nil {
					return err
				}

				outputFormat := a.cfg.Report.Format
				if cmd.Flags().Changed("format") {
					outputFormat = format
				}

				resp, err := a.mediator.Send(ctx, &reportQueries.GetWalletReportQuery{MissingQuotePolicy: policy})
				if err != nil {
					return err
				}
				result := resp.(*reportQueries.GetWalletReportResponse)

				writeSkipped(cmd.ErrOrStderr(), result)

				switch outputFormat {
				case "csv":
					return writeReportCSV(cmd.OutOrStdout(), result)
				case "table":
					return writeReportTable(cmd.OutOrStdout(), result)
				}
				return fmt.Errorf("unknown format %q: must be csv or table", outputFormat)
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv or table")
	cmd.Flags().StringVar(&missingQuotes, "missing-quotes", "skip", "Missing quote policy: skip, zero or abort")

	return cmd
}
