package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/eve-wallet-go/internal/domain/server"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/shared"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/wallet"
)

// MockAccountGateway is a test double for common.AccountGateway
type MockAccountGateway struct {
	mu sync.Mutex

	name         string
	characterID  shared.CharacterID
	balance      *wallet.Balance
	transactions []*wallet.Transaction
	status       *server.Status

	// Error injection
	characterErr    error
	balanceErr      error
	transactionsErr error
	statusErr       error

	// Call tracking
	calls []string
}

// NewMockAccountGateway creates a gateway for the named character with the given id
func NewMockAccountGateway(name string, id int64) *MockAccountGateway {
	characterID, _ := shared.NewCharacterID(id)
	return &MockAccountGateway{
		name:        name,
		characterID: characterID,
		status:      &server.Status{Open: true},
	}
}

func (m *MockAccountGateway) SetBalance(balance *wallet.Balance) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balance = balance
}

func (m *MockAccountGateway) SetTransactions(txs []*wallet.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = txs
}

func (m *MockAccountGateway) AddTransaction(tx *wallet.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = append(m.transactions, tx)
}

func (m *MockAccountGateway) SetStatus(status *server.Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = status
}

func (m *MockAccountGateway) SetCharacterError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.characterErr = err
}

func (m *MockAccountGateway) SetBalanceError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balanceErr = err
}

func (m *MockAccountGateway) SetTransactionsError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactionsErr = err
}

func (m *MockAccountGateway) SetStatusError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statusErr = err
}

// Calls returns the operations invoked so far, in order
func (m *MockAccountGateway) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockAccountGateway) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *MockAccountGateway) CharacterName() string {
	return m.name
}

func (m *MockAccountGateway) CharacterID(ctx context.Context) (shared.CharacterID, error) {
	m.record("CharacterID")
	if m.characterErr != nil {
		return shared.CharacterID{}, m.characterErr
	}
	return m.characterID, nil
}

func (m *MockAccountGateway) AccountBalance(ctx context.Context) (*wallet.Balance, error) {
	m.record("AccountBalance")
	if m.balanceErr != nil {
		return nil, m.balanceErr
	}
	if m.balance == nil {
		return nil, shared.NewDataConsistencyError("no wallet accounts for character "+m.name, shared.ErrBalanceUnavailable)
	}
	return m.balance, nil
}

func (m *MockAccountGateway) WalletTransactions(ctx context.Context) ([]*wallet.Transaction, error) {
	m.record("WalletTransactions")
	if m.transactionsErr != nil {
		return nil, m.transactionsErr
	}
	return m.transactions, nil
}

func (m *MockAccountGateway) ServerStatus(ctx context.Context) (*server.Status, error) {
	m.record("ServerStatus")
	if m.statusErr != nil {
		return nil, m.statusErr
	}
	return m.status, nil
}
