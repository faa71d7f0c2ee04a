package shared

import (
	"fmt"
	"strconv"
)

// CharacterID is a value object representing the service's numeric character identifier
type CharacterID struct {
	value int64
}

// NewCharacterID creates a new CharacterID value object
func NewCharacterID(id int64) (CharacterID, error) {
	if id <= 0 {
		return CharacterID{}, fmt.Errorf("character_id must be positive")
	}
	return CharacterID{value: id}, nil
}

// ParseCharacterID parses the decimal form used by the XML API
func ParseCharacterID(s string) (CharacterID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return CharacterID{}, fmt.Errorf("invalid character_id %q: %w", s, err)
	}
	return NewCharacterID(id)
}

// Value returns the integer value of the CharacterID
func (c CharacterID) Value() int64 {
	return c.value
}

// String returns the decimal form sent back to the API
func (c CharacterID) String() string {
	return strconv.FormatInt(c.value, 10)
}

// IsZero checks if the CharacterID is the zero value (unresolved)
func (c CharacterID) IsZero() bool {
	return c.value == 0
}
