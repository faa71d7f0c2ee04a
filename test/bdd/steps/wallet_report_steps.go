package steps

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cucumber/godog"
	"github.com/cucumber/messages/go/v21"
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/eve-wallet-go/internal/application/mediator"
	"github.com/andrescamacho/eve-wallet-go/internal/application/report"
	"github.com/andrescamacho/eve-wallet-go/internal/application/report/queries"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/market"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/shared"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/wallet"
	"github.com/andrescamacho/eve-wallet-go/test/helpers"
)

// WalletReportContext holds state for wallet report scenarios
type WalletReportContext struct {
	account  *helpers.MockAccountGateway
	quotes   *helpers.MockQuoteProvider
	mediator mediator.Mediator
	policy   report.MissingQuotePolicy

	response *queries.GetWalletReportResponse
	err      error
}

func InitializeWalletReportScenario(ctx *godog.ScenarioContext) {
	c := &WalletReportContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, c.reset()
	})

	// Given steps
	ctx.Step(`^a character "([^"]*)" with id (\d+)$`, c.aCharacterWithID)
	ctx.Step(`^the wallet holds transactions:$`, c.theWalletHoldsTransactions)
	ctx.Step(`^the reference market quotes:$`, c.theReferenceMarketQuotes)
	ctx.Step(`^the missing quote policy is "([^"]*)"$`, c.theMissingQuotePolicyIs)
	ctx.Step(`^the account has no wallet rows$`, c.theAccountHasNoWalletRows)
	ctx.Step(`^the account balance is "([^"]*)"$`, c.theAccountBalanceIs)
	ctx.Step(`^the character cannot be resolved$`, c.theCharacterCannotBeResolved)

	// When steps
	ctx.Step(`^I build the wallet report$`, c.iBuildTheWalletReport)

	// Then steps
	ctx.Step(`^the report should succeed$`, c.theReportShouldSucceed)
	ctx.Step(`^the report should have (\d+) rows?$`, c.theReportShouldHaveNRows)
	ctx.Step(`^row (\d+) should have profit "([^"]*)" and running total "([^"]*)"$`, c.rowShouldHaveProfitAndRunningTotal)
	ctx.Step(`^row (\d+) should be estimated$`, c.rowShouldBeEstimated)
	ctx.Step(`^the report total should be "([^"]*)"$`, c.theReportTotalShouldBe)
	ctx.Step(`^transaction (\d+) should be skipped$`, c.transactionShouldBeSkipped)
	ctx.Step(`^the report should fail with a data consistency error$`, c.theReportShouldFailWithDataConsistencyError)
	ctx.Step(`^the report should fail with a character not found error$`, c.theReportShouldFailWithCharacterNotFoundError)
	ctx.Step(`^the balance should be unavailable$`, c.theBalanceShouldBeUnavailable)
	ctx.Step(`^the balance should be "([^"]*)"$`, c.theBalanceShouldBe)
}

func (c *WalletReportContext) reset() error {
	c.account = helpers.NewMockAccountGateway("", 1)
	c.quotes = helpers.NewMockQuoteProvider("30000142")
	c.policy = ""
	c.response = nil
	c.err = nil
	return nil
}

// ============================================================================
// Given Steps
// ============================================================================

func (c *WalletReportContext) aCharacterWithID(name string, id int64) error {
	c.account = helpers.NewMockAccountGateway(name, id)
	return nil
}

func (c *WalletReportContext) theWalletHoldsTransactions(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		id, err := strconv.ParseInt(getCellValue(table, row, "id"), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id: %w", err)
		}
		typeID, err := market.ParseTypeID(getCellValue(table, row, "type_id"))
		if err != nil {
			return err
		}
		quantity, err := strconv.ParseInt(getCellValue(table, row, "quantity"), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid quantity: %w", err)
		}
		price := getCellValue(table, row, "price")
		if _, err := decimal.NewFromString(price); err != nil {
			return fmt.Errorf("invalid price: %w", err)
		}

		c.account.AddTransaction(helpers.NewSaleTransaction(id, typeID, getCellValue(table, row, "item"), quantity, price))
	}
	return nil
}

func (c *WalletReportContext) theReferenceMarketQuotes(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		typeID, err := market.ParseTypeID(getCellValue(table, row, "type_id"))
		if err != nil {
			return err
		}
		sellMin, err := decimal.NewFromString(getCellValue(table, row, "sell_min"))
		if err != nil {
			return fmt.Errorf("invalid sell_min: %w", err)
		}
		if err := c.quotes.SetSellMin(typeID, sellMin); err != nil {
			return err
		}
	}
	return nil
}

func (c *WalletReportContext) theMissingQuotePolicyIs(policy string) error {
	p, err := report.ParseMissingQuotePolicy(policy)
	if err != nil {
		return err
	}
	c.policy = p
	return nil
}

func (c *WalletReportContext) theAccountHasNoWalletRows() error {
	c.account.SetBalance(nil)
	return nil
}

func (c *WalletReportContext) theAccountBalanceIs(amount string) error {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}
	c.account.SetBalance(&wallet.Balance{AccountID: 1, AccountKey: 1000, Amount: value})
	return nil
}

func (c *WalletReportContext) theCharacterCannotBeResolved() error {
	c.account.SetCharacterError(shared.NewCharacterNotFoundError(c.account.CharacterName()))
	return nil
}

// ============================================================================
// When Steps
// ============================================================================

func (c *WalletReportContext) iBuildTheWalletReport() error {
	c.mediator = mediator.NewMediator()
	handler := queries.NewGetWalletReportHandler(c.account, c.quotes, shared.NewMockClock(time.Time{}), nil)
	if err := mediator.RegisterHandler[*queries.GetWalletReportQuery](c.mediator, handler); err != nil {
		return err
	}

	resp, err := c.mediator.Send(context.Background(), &queries.GetWalletReportQuery{MissingQuotePolicy: c.policy})
	c.err = err
	if err == nil {
		c.response = resp.(*queries.GetWalletReportResponse)
	}
	return nil
}

// ============================================================================
// Then Steps
// ============================================================================

func (c *WalletReportContext) theReportShouldSucceed() error {
	if c.err != nil {
		return fmt.Errorf("expected success, got %w", c.err)
	}
	return nil
}

func (c *WalletReportContext) theReportShouldHaveNRows(n int) error {
	if got := len(c.response.Report.Rows); got != n {
		return fmt.Errorf("expected %d rows, got %d", n, got)
	}
	return nil
}

func (c *WalletReportContext) row(n int) (*report.Row, error) {
	if c.response == nil {
		return nil, fmt.Errorf("no report built")
	}
	if n < 1 || n > len(c.response.Report.Rows) {
		return nil, fmt.Errorf("row %d out of range (have %d)", n, len(c.response.Report.Rows))
	}
	return &c.response.Report.Rows[n-1], nil
}

func (c *WalletReportContext) rowShouldHaveProfitAndRunningTotal(n int, profit, runningTotal string) error {
	row, err := c.row(n)
	if err != nil {
		return err
	}
	if got := row.Profit.StringFixed(2); got != profit {
		return fmt.Errorf("row %d: expected profit %s, got %s", n, profit, got)
	}
	if got := row.RunningTotal.StringFixed(2); got != runningTotal {
		return fmt.Errorf("row %d: expected running total %s, got %s", n, runningTotal, got)
	}
	return nil
}

func (c *WalletReportContext) rowShouldBeEstimated(n int) error {
	row, err := c.row(n)
	if err != nil {
		return err
	}
	if !row.Estimated {
		return fmt.Errorf("row %d: expected estimated", n)
	}
	return nil
}

func (c *WalletReportContext) theReportTotalShouldBe(total string) error {
	if got := c.response.Report.Total.StringFixed(2); got != total {
		return fmt.Errorf("expected total %s, got %s", total, got)
	}
	return nil
}

func (c *WalletReportContext) transactionShouldBeSkipped(id int64) error {
	for _, skipped := range c.response.Report.Skipped {
		if skipped.Transaction.ID() == id {
			if !shared.IsDataConsistency(skipped.Err) {
				return fmt.Errorf("transaction %d skipped with unexpected error: %v", id, skipped.Err)
			}
			return nil
		}
	}
	return fmt.Errorf("transaction %d was not skipped", id)
}

func (c *WalletReportContext) theReportShouldFailWithDataConsistencyError() error {
	if !shared.IsDataConsistency(c.err) {
		return fmt.Errorf("expected data consistency error, got %v", c.err)
	}
	return nil
}

func (c *WalletReportContext) theReportShouldFailWithCharacterNotFoundError() error {
	if !shared.IsCharacterNotFound(c.err) {
		return fmt.Errorf("expected character not found error, got %v", c.err)
	}
	return nil
}

func (c *WalletReportContext) theBalanceShouldBeUnavailable() error {
	if c.response.BalanceAvailable() {
		return fmt.Errorf("expected balance unavailable, got %s", c.response.Balance.Amount)
	}
	return nil
}

func (c *WalletReportContext) theBalanceShouldBe(amount string) error {
	if !c.response.BalanceAvailable() {
		return fmt.Errorf("expected balance %s, got unavailable", amount)
	}
	if got := c.response.Balance.Amount.StringFixed(2); got != amount {
		return fmt.Errorf("expected balance %s, got %s", amount, got)
	}
	return nil
}

// ============================================================================
// Helper Functions
// ============================================================================

// getCellValue returns the cell under columnName, using the first table row as header
func getCellValue(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}
	for i, headerCell := range table.Rows[0].Cells {
		if headerCell.Value == columnName {
			if i < len(row.Cells) {
				return row.Cells[i].Value
			}
			return ""
		}
	}
	return ""
}
