package character

import (
	"strings"

	"github.com/andrescamacho/eve-wallet-go/internal/domain/shared"
)

// Credentials is the API key pair granting access to a character's private data
type Credentials struct {
	KeyID string
	VCode string
}

// MaskedVCode returns the verification code with all but the last four characters hidden
func (c Credentials) MaskedVCode() string {
	if len(c.VCode) <= 4 {
		return strings.Repeat("*", len(c.VCode))
	}
	return strings.Repeat("*", len(c.VCode)-4) + c.VCode[len(c.VCode)-4:]
}

// IsComplete reports whether both halves of the key pair are set
func (c Credentials) IsComplete() bool {
	return c.KeyID != "" && c.VCode != ""
}

// Character is an in-game identity: the display name and, once resolved, its numeric id
type Character struct {
	Name string
	ID   shared.CharacterID
}

// NewCharacter creates a resolved character
func NewCharacter(name string, id shared.CharacterID) *Character {
	return &Character{
		Name: name,
		ID:   id,
	}
}
