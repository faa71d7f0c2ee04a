package wallet

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/eve-wallet-go/internal/domain/market"
)

// TimestampLayout is the layout the XML API uses for every date attribute (UTC)
const TimestampLayout = "2006-01-02 15:04:05"

// Transaction is a single wallet transaction as reported by the account API.
// Transactions are immutable once created.
type Transaction struct {
	id              int64
	timestamp       time.Time
	rawTimestamp    string
	quantity        int64
	typeID          market.TypeID
	typeName        string
	price           decimal.Decimal
	clientName      string
	stationName     string
	transactionType TransactionType
	transactionFor  string
}

// NewTransaction creates a new transaction with validation
func NewTransaction(
	id int64,
	rawTimestamp string,
	quantity int64,
	typeID market.TypeID,
	typeName string,
	price decimal.Decimal,
	clientName string,
	stationName string,
	transactionType TransactionType,
	transactionFor string,
) (*Transaction, error) {
	timestamp, err := time.ParseInLocation(TimestampLayout, rawTimestamp, time.UTC)
	if err != nil {
		return nil, &ErrInvalidTransaction{Field: "transactionDateTime", Reason: err.Error()}
	}

	t := &Transaction{
		id:              id,
		timestamp:       timestamp,
		rawTimestamp:    rawTimestamp,
		quantity:        quantity,
		typeID:          typeID,
		typeName:        typeName,
		price:           price,
		clientName:      clientName,
		stationName:     stationName,
		transactionType: transactionType,
		transactionFor:  transactionFor,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate checks that the transaction satisfies all invariants
func (t *Transaction) Validate() error {
	if t.quantity <= 0 {
		return &ErrInvalidTransaction{Field: "quantity", Reason: "quantity must be positive"}
	}
	if t.typeID <= 0 {
		return &ErrInvalidTransaction{Field: "typeID", Reason: "type id must be positive"}
	}
	if t.price.IsNegative() {
		return &ErrInvalidTransaction{Field: "price", Reason: "price cannot be negative"}
	}
	if t.transactionType != "" && !t.transactionType.IsValid() {
		return &ErrInvalidTransaction{
			Field:  "transactionType",
			Reason: fmt.Sprintf("invalid transaction type: %s", t.transactionType),
		}
	}
	return nil
}

// Getters (all fields are immutable)

func (t *Transaction) ID() int64 {
	return t.id
}

func (t *Transaction) Timestamp() time.Time {
	return t.timestamp
}

// RawTimestamp returns the timestamp exactly as the service sent it
func (t *Transaction) RawTimestamp() string {
	return t.rawTimestamp
}

func (t *Transaction) Quantity() int64 {
	return t.quantity
}

func (t *Transaction) TypeID() market.TypeID {
	return t.typeID
}

func (t *Transaction) TypeName() string {
	return t.typeName
}

// Price returns the unit price
func (t *Transaction) Price() decimal.Decimal {
	return t.price
}

func (t *Transaction) ClientName() string {
	return t.clientName
}

func (t *Transaction) StationName() string {
	return t.stationName
}

func (t *Transaction) TransactionType() TransactionType {
	return t.transactionType
}

func (t *Transaction) TransactionFor() string {
	return t.transactionFor
}

// IsSale returns true if the character sold the items
func (t *Transaction) IsSale() bool {
	return t.transactionType == TransactionTypeSell
}

// String provides a human-readable representation
func (t *Transaction) String() string {
	return fmt.Sprintf("Transaction[%d, %s x%d @ %s, %s]",
		t.id, t.typeName, t.quantity, t.price.StringFixed(2), t.transactionType)
}
