package wallet

// TransactionType is the side of the trade from the character's point of view
type TransactionType string

const (
	TransactionTypeBuy  TransactionType = "buy"
	TransactionTypeSell TransactionType = "sell"
)

// IsValid checks if the transaction type is one the API emits
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeBuy, TransactionTypeSell:
		return true
	default:
		return false
	}
}

func (t TransactionType) String() string {
	return string(t)
}
