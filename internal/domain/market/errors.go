package market

import "errors"

var (
	// ErrInvalidTypeID is returned when a type id is not a canonical positive integer
	ErrInvalidTypeID = errors.New("invalid type id")

	// ErrQuoteNotFound is returned when the quote book has no entry for a type
	ErrQuoteNotFound = errors.New("no market quote for type")

	// ErrInvalidPrice is returned when a price is negative
	ErrInvalidPrice = errors.New("invalid price")
)
