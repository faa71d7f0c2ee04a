package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/andrescamacho/eve-wallet-go/internal/domain/character"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/market"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/server"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/shared"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/wallet"
)

const (
	// DefaultBaseURL is the EVE Online XML account API
	DefaultBaseURL = "https://api.eveonline.com"

	endpointServerStatus       = "/server/ServerStatus.xml.aspx"
	endpointCharacterID        = "/eve/CharacterID.xml.aspx"
	endpointAccountBalance     = "/char/AccountBalance.xml.aspx"
	endpointWalletTransactions = "/char/WalletTransactions.xml.aspx"
)

// EveClient is a session against the account API for one character.
// The character id and the server status are resolved lazily and memoized.
type EveClient struct {
	requester   *requester
	logger      *slog.Logger
	name        string
	credentials character.Credentials

	mu          sync.Mutex
	characterID shared.CharacterID
	status      *server.Status
}

// NewEveClient creates a client for the named character
func NewEveClient(name string, credentials character.Credentials, opts ...Option) (*EveClient, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	req, err := o.newRequester(DefaultBaseURL, decodeEveError)
	if err != nil {
		return nil, err
	}

	return &EveClient{
		requester:   req,
		logger:      o.logger,
		name:        name,
		credentials: credentials,
	}, nil
}

// CharacterName returns the configured display name
func (c *EveClient) CharacterName() string {
	return c.name
}

// ServerStatus returns the server status, fetching it on first use.
// Failed fetches are not memoized.
func (c *EveClient) ServerStatus(ctx context.Context) (*server.Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != nil {
		return c.status, nil
	}

	body, err := c.requester.post(ctx, endpointServerStatus, url.Values{})
	if err != nil {
		return nil, fmt.Errorf("failed to get server status: %w", err)
	}

	var doc serverStatusDocument
	if err := decodeDocument(endpointServerStatus, body, &doc); err != nil {
		return nil, err
	}
	if err := validateRow(endpointServerStatus, 0, doc.Result); err != nil {
		return nil, err
	}

	players, err := parseInt(endpointServerStatus, "onlinePlayers", doc.Result.OnlinePlayers)
	if err != nil {
		return nil, err
	}

	c.status = &server.Status{
		Open:          strings.EqualFold(strings.TrimSpace(doc.Result.ServerOpen), "true"),
		OnlinePlayers: players,
		CurrentTime:   strings.TrimSpace(doc.CurrentTime),
	}
	return c.status, nil
}

// CharacterID resolves the configured name to its numeric id.
// A lookup without an exact match yields *shared.CharacterNotFoundError.
func (c *EveClient) CharacterID(ctx context.Context) (shared.CharacterID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.resolveCharacterID(ctx)
}

// resolveCharacterID must be called with c.mu held
func (c *EveClient) resolveCharacterID(ctx context.Context) (shared.CharacterID, error) {
	if !c.characterID.IsZero() {
		return c.characterID, nil
	}

	body, err := c.requester.post(ctx, endpointCharacterID, url.Values{"names": {c.name}})
	if err != nil {
		return shared.CharacterID{}, fmt.Errorf("failed to get character id: %w", err)
	}

	var doc characterIDDocument
	if err := decodeDocument(endpointCharacterID, body, &doc); err != nil {
		return shared.CharacterID{}, err
	}

	for i, row := range doc.Rows {
		if row.Name != c.name {
			continue
		}
		if err := validateRow(endpointCharacterID, i, row); err != nil {
			return shared.CharacterID{}, err
		}
		// Unknown names come back as a row with characterID="0"
		if row.CharacterID == "0" {
			break
		}
		id, err := shared.ParseCharacterID(row.CharacterID)
		if err != nil {
			return shared.CharacterID{}, shared.NewParseError(endpointCharacterID, "characterID", err)
		}
		c.characterID = id
		c.logger.Debug("character resolved", "name", c.name, "character_id", id.String())
		return id, nil
	}

	return shared.CharacterID{}, shared.NewCharacterNotFoundError(c.name)
}

// authenticatedForm builds the key pair + character id parameters
func (c *EveClient) authenticatedForm(ctx context.Context) (url.Values, error) {
	c.mu.Lock()
	id, err := c.resolveCharacterID(ctx)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	return url.Values{
		"keyID":       {c.credentials.KeyID},
		"vCode":       {c.credentials.VCode},
		"characterID": {id.String()},
	}, nil
}

// AccountBalance returns the character's first wallet account
func (c *EveClient) AccountBalance(ctx context.Context) (*wallet.Balance, error) {
	form, err := c.authenticatedForm(ctx)
	if err != nil {
		return nil, err
	}

	body, err := c.requester.post(ctx, endpointAccountBalance, form)
	if err != nil {
		return nil, fmt.Errorf("failed to get account balance: %w", err)
	}

	var doc accountBalanceDocument
	if err := decodeDocument(endpointAccountBalance, body, &doc); err != nil {
		return nil, err
	}
	if len(doc.Rows) == 0 {
		return nil, shared.NewDataConsistencyError(
			fmt.Sprintf("no wallet accounts for character %s", c.name),
			shared.ErrBalanceUnavailable,
		)
	}

	row := doc.Rows[0]
	if err := validateRow(endpointAccountBalance, 0, row); err != nil {
		return nil, err
	}

	accountID, err := parseInt(endpointAccountBalance, "accountID", row.AccountID)
	if err != nil {
		return nil, err
	}
	accountKey, err := parseInt(endpointAccountBalance, "accountKey", row.AccountKey)
	if err != nil {
		return nil, err
	}
	amount, err := parseDecimal(endpointAccountBalance, "balance", row.Balance)
	if err != nil {
		return nil, err
	}

	return &wallet.Balance{
		AccountID:  accountID,
		AccountKey: accountKey,
		Amount:     amount,
	}, nil
}

// WalletTransactions returns every transaction row as a typed record, in service order
func (c *EveClient) WalletTransactions(ctx context.Context) ([]*wallet.Transaction, error) {
	form, err := c.authenticatedForm(ctx)
	if err != nil {
		return nil, err
	}

	body, err := c.requester.post(ctx, endpointWalletTransactions, form)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet transactions: %w", err)
	}

	var doc walletTransactionsDocument
	if err := decodeDocument(endpointWalletTransactions, body, &doc); err != nil {
		return nil, err
	}

	transactions := make([]*wallet.Transaction, 0, len(doc.Rows))
	for i, row := range doc.Rows {
		tx, err := convertTransactionRow(i, row)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	c.logger.Debug("wallet transactions fetched", "count", len(transactions))
	return transactions, nil
}

func convertTransactionRow(index int, row transactionRow) (*wallet.Transaction, error) {
	if err := validateRow(endpointWalletTransactions, index, row); err != nil {
		return nil, err
	}

	field := func(name string) string {
		return fmt.Sprintf("row[%d].%s", index, name)
	}

	id, err := parseInt(endpointWalletTransactions, field("transactionID"), row.TransactionID)
	if err != nil {
		return nil, err
	}
	quantity, err := parseInt(endpointWalletTransactions, field("quantity"), row.Quantity)
	if err != nil {
		return nil, err
	}
	typeID, err := market.ParseTypeID(row.TypeID)
	if err != nil {
		return nil, shared.NewParseError(endpointWalletTransactions, field("typeID"), err)
	}
	price, err := parseDecimal(endpointWalletTransactions, field("price"), row.Price)
	if err != nil {
		return nil, err
	}

	tx, err := wallet.NewTransaction(
		id,
		row.TransactionDateTime,
		quantity,
		typeID,
		row.TypeName,
		price,
		row.ClientName,
		row.StationName,
		wallet.TransactionType(row.TransactionType),
		row.TransactionFor,
	)
	if err != nil {
		var invalid *wallet.ErrInvalidTransaction
		if errors.As(err, &invalid) {
			return nil, shared.NewParseError(endpointWalletTransactions, field(invalid.Field), err)
		}
		return nil, shared.NewParseError(endpointWalletTransactions, fmt.Sprintf("row[%d]", index), err)
	}
	return tx, nil
}
