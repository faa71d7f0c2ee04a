package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	reportQueries "github.com/andrescamacho/eve-wallet-go/internal/application/report/queries"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/wallet"
)

// money formats an amount with two decimals
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func writeBalanceLine(w io.Writer, balance *wallet.Balance) {
	if balance == nil {
		fmt.Fprintln(w, "Total balance: unavailable")
		return
	}
	fmt.Fprintf(w, "Total balance: %s\n", money(balance.Amount))
}

// writeReportCSV prints the balance line, one
// timestamp,quantity,item name,sell price,market price,profit
// record per row, and the balance change line.
func writeReportCSV(w io.Writer, resp *reportQueries.GetWalletReportResponse) error {
	writeBalanceLine(w, resp.Balance)

	cw := csv.NewWriter(w)
	for _, row := range resp.Report.Rows {
		tx := row.Transaction
		record := []string{
			tx.RawTimestamp(),
			strconv.FormatInt(tx.Quantity(), 10),
			tx.TypeName(),
			money(tx.Price()),
			money(row.MarketPrice),
			money(row.Profit),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Fprintf(w, "Balance change: %s\n", money(resp.Report.Total))
	return nil
}

// writeReportTable prints the same rows aligned, with a running total column.
// Estimated rows are marked with '*'.
func writeReportTable(w io.Writer, resp *reportQueries.GetWalletReportResponse) error {
	writeBalanceLine(w, resp.Balance)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "TIMESTAMP\tQTY\tITEM\tSELL\tMARKET\tPROFIT\tRUNNING\t")
	for _, row := range resp.Report.Rows {
		tx := row.Transaction
		marker := ""
		if row.Estimated {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s%s\t%s\t%s\t\n",
			tx.RawTimestamp(),
			tx.Quantity(),
			tx.TypeName(),
			money(tx.Price()),
			money(row.MarketPrice), marker,
			money(row.Profit),
			money(row.RunningTotal),
		)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Fprintf(w, "\nBalance change: %s\n", money(resp.Report.Total))
	if n := resp.Report.EstimatedCount(); n > 0 {
		fmt.Fprintf(w, "* %d row(s) without a market quote, priced at 0\n", n)
	}
	return nil
}

// writeSkipped lists transactions left out of the report
func writeSkipped(w io.Writer, resp *reportQueries.GetWalletReportResponse) {
	for _, s := range resp.Report.Skipped {
		fmt.Fprintf(w, "skipped transaction %d (%s, type %s): %v\n",
			s.Transaction.ID(), s.Transaction.TypeName(), s.Transaction.TypeID(), s.Err)
	}
}
