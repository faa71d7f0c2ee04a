package common

import (
	"github.com/andrescamacho/eve-wallet-go/internal/domain/character"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/market"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/server"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/wallet"
)

// AccountGateway is the account API session for one character.
// Implemented by the EVE XML client adapter.
type AccountGateway interface {
	character.Directory
	wallet.Account
	server.StatusProvider
}

// MarketGateway provides reference-market quotes.
// Implemented by the eve-central client adapter.
type MarketGateway interface {
	market.QuoteProvider
	SystemID() string
}
