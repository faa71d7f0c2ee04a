package report

import (
	"fmt"
	"strings"
)

// MissingQuotePolicy decides what happens to a transaction whose item type
// has no quote at the reference market.
type MissingQuotePolicy string

const (
	// PolicySkip drops the row from the report and the total
	PolicySkip MissingQuotePolicy = "skip"
	// PolicyZero keeps the row with a market price of zero, flagged as estimated
	PolicyZero MissingQuotePolicy = "zero"
	// PolicyAbort fails the whole report
	PolicyAbort MissingQuotePolicy = "abort"
)

// DefaultMissingQuotePolicy is used when nothing is configured
const DefaultMissingQuotePolicy = PolicySkip

// ParseMissingQuotePolicy parses a policy name; the empty string yields the default
func ParseMissingQuotePolicy(s string) (MissingQuotePolicy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultMissingQuotePolicy, nil
	}
	p := MissingQuotePolicy(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid missing quote policy %q: must be one of skip, zero, abort", s)
	}
	return p, nil
}

func (p MissingQuotePolicy) IsValid() bool {
	switch p {
	case PolicySkip, PolicyZero, PolicyAbort:
		return true
	}
	return false
}

func (p MissingQuotePolicy) String() string {
	return string(p)
}
