package api

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/eve-wallet-go/internal/domain/shared"
)

// rowValidator rejects malformed rows at the boundary
var rowValidator = validator.New()

// EveAPIError is the <error code="N">message</error> document the account API
// returns for bad keys, missing access masks and similar failures
type EveAPIError struct {
	Code    int
	Message string
}

func (e *EveAPIError) Error() string {
	return fmt.Sprintf("eve api error %d: %s", e.Code, e.Message)
}

type eveErrorElement struct {
	Code    string `xml:"code,attr"`
	Message string `xml:",chardata"`
}

// decodeEveError returns an *EveAPIError when body is an eveapi document with an error element
func decodeEveError(body []byte) error {
	var doc struct {
		XMLName xml.Name         `xml:"eveapi"`
		Error   *eveErrorElement `xml:"error"`
	}
	if err := xml.Unmarshal(body, &doc); err != nil || doc.Error == nil {
		return nil
	}
	code, _ := strconv.Atoi(doc.Error.Code)
	return &EveAPIError{Code: code, Message: strings.TrimSpace(doc.Error.Message)}
}

// Account API documents

type serverStatusDocument struct {
	XMLName     xml.Name `xml:"eveapi"`
	CurrentTime string   `xml:"currentTime"`
	Result      struct {
		ServerOpen    string `xml:"serverOpen"`
		OnlinePlayers string `xml:"onlinePlayers" validate:"required,numeric"`
	} `xml:"result"`
}

type characterRow struct {
	Name        string `xml:"name,attr" validate:"required"`
	CharacterID string `xml:"characterID,attr" validate:"required,numeric"`
}

type characterIDDocument struct {
	XMLName xml.Name       `xml:"eveapi"`
	Rows    []characterRow `xml:"result>rowset>row"`
}

type balanceRow struct {
	AccountID  string `xml:"accountID,attr" validate:"required,numeric"`
	AccountKey string `xml:"accountKey,attr" validate:"required,numeric"`
	Balance    string `xml:"balance,attr" validate:"required,numeric"`
}

type accountBalanceDocument struct {
	XMLName xml.Name     `xml:"eveapi"`
	Rows    []balanceRow `xml:"result>rowset>row"`
}

type transactionRow struct {
	TransactionDateTime string `xml:"transactionDateTime,attr" validate:"required"`
	TransactionID       string `xml:"transactionID,attr" validate:"required,numeric"`
	Quantity            string `xml:"quantity,attr" validate:"required,numeric"`
	TypeName            string `xml:"typeName,attr" validate:"required"`
	TypeID              string `xml:"typeID,attr" validate:"required,numeric"`
	Price               string `xml:"price,attr" validate:"required,numeric"`
	ClientName          string `xml:"clientName,attr"`
	StationName         string `xml:"stationName,attr"`
	TransactionType     string `xml:"transactionType,attr" validate:"omitempty,oneof=buy sell"`
	TransactionFor      string `xml:"transactionFor,attr"`
}

type walletTransactionsDocument struct {
	XMLName xml.Name         `xml:"eveapi"`
	Rows    []transactionRow `xml:"result>rowset>row"`
}

// Market aggregator documents

type marketStatSide struct {
	Volume string `xml:"volume"`
	Avg    string `xml:"avg"`
	Max    string `xml:"max"`
	Min    string `xml:"min"`
}

type marketStatType struct {
	ID   string         `xml:"id,attr" validate:"required,numeric"`
	Buy  marketStatSide `xml:"buy"`
	Sell marketStatSide `xml:"sell"`
}

type marketStatDocument struct {
	XMLName xml.Name         `xml:"evec_api"`
	Types   []marketStatType `xml:"marketstat>type"`
}

// decodeDocument unmarshals body into doc, classifying failures as ParseError
func decodeDocument(endpoint string, body []byte, doc interface{}) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return shared.NewParseError(endpoint, "", fmt.Errorf("empty response body"))
	}
	if err := xml.Unmarshal(body, doc); err != nil {
		return shared.NewParseError(endpoint, "", err)
	}
	return nil
}

// validateRow runs the struct tags of a decoded row
func validateRow(endpoint string, index int, row interface{}) error {
	if err := rowValidator.Struct(row); err != nil {
		field := fmt.Sprintf("row[%d]", index)
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			field = fmt.Sprintf("row[%d].%s", index, verrs[0].Field())
		}
		return shared.NewParseError(endpoint, field, err)
	}
	return nil
}

func parseDecimal(endpoint, field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, shared.NewParseError(endpoint, field, err)
	}
	return d, nil
}

func parseInt(endpoint, field, value string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, shared.NewParseError(endpoint, field, err)
	}
	return n, nil
}

// parseOptionalDecimal treats an empty element as zero
func parseOptionalDecimal(endpoint, field, value string) (decimal.Decimal, error) {
	if strings.TrimSpace(value) == "" {
		return decimal.Zero, nil
	}
	return parseDecimal(endpoint, field, value)
}
