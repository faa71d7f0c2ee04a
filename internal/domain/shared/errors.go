package shared

import (
	"errors"
	"fmt"
)

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// ErrBalanceUnavailable is returned when the balance rowset holds no rows
var ErrBalanceUnavailable = errors.New("account balance unavailable")

// Transport errors

// TransportError covers network failures, non-2xx responses, API error documents
// and exhausted retries
type TransportError struct {
	*DomainError
	Endpoint   string
	StatusCode int // 0 when no response was received
	Err        error
}

func NewTransportError(endpoint string, statusCode int, err error) *TransportError {
	msg := fmt.Sprintf("transport error on %s", endpoint)
	if statusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, statusCode)
	}
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return &TransportError{
		DomainError: NewDomainError(msg),
		Endpoint:    endpoint,
		StatusCode:  statusCode,
		Err:         err,
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Parse errors

// ParseError is returned when a response document is malformed or is missing
// an element or attribute the decoder requires
type ParseError struct {
	*DomainError
	Endpoint string
	Field    string
	Err      error
}

func NewParseError(endpoint, field string, err error) *ParseError {
	msg := fmt.Sprintf("cannot parse %s response", endpoint)
	if field != "" {
		msg = fmt.Sprintf("%s: field %s", msg, field)
	}
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return &ParseError{
		DomainError: NewDomainError(msg),
		Endpoint:    endpoint,
		Field:       field,
		Err:         err,
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Data consistency errors

// DataConsistencyError is returned when well-formed data from one source does not
// line up with data from another, e.g. a transacted type with no market quote
type DataConsistencyError struct {
	*DomainError
	Err error
}

func NewDataConsistencyError(message string, err error) *DataConsistencyError {
	if err != nil {
		message = fmt.Sprintf("%s: %v", message, err)
	}
	return &DataConsistencyError{
		DomainError: NewDomainError(message),
		Err:         err,
	}
}

func (e *DataConsistencyError) Unwrap() error {
	return e.Err
}

// Character errors

type CharacterNotFoundError struct {
	*DomainError
	Name string
}

func NewCharacterNotFoundError(name string) *CharacterNotFoundError {
	return &CharacterNotFoundError{
		DomainError: NewDomainError(fmt.Sprintf("character %q not found", name)),
		Name:        name,
	}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsTransport reports whether err is or wraps a TransportError
func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// IsParse reports whether err is or wraps a ParseError
func IsParse(err error) bool {
	var target *ParseError
	return errors.As(err, &target)
}

// IsDataConsistency reports whether err is or wraps a DataConsistencyError
func IsDataConsistency(err error) bool {
	var target *DataConsistencyError
	return errors.As(err, &target)
}

// IsCharacterNotFound reports whether err is or wraps a CharacterNotFoundError
func IsCharacterNotFound(err error) bool {
	var target *CharacterNotFoundError
	return errors.As(err, &target)
}
