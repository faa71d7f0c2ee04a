package config

import (
	"github.com/andrescamacho/eve-wallet-go/internal/domain/character"
)

// CharacterConfig identifies the character and the API key pair used to read its wallet
type CharacterConfig struct {
	// Display name, resolved to a character id at runtime
	Name string `mapstructure:"name"`

	// API key id
	KeyID string `mapstructure:"key_id" validate:"omitempty,numeric"`

	// API verification code
	VCode string `mapstructure:"v_code" validate:"omitempty,alphanum"`
}

// Credentials returns the key pair as a domain value
func (c CharacterConfig) Credentials() character.Credentials {
	return character.Credentials{KeyID: c.KeyID, VCode: c.VCode}
}

// RequireName checks that a character name is configured
func (c CharacterConfig) RequireName() error {
	return NewValidator().ValidateVar("character.name", c.Name, "required")
}

// RequireCredentials checks that the name and both halves of the key pair are configured
func (c CharacterConfig) RequireCredentials() error {
	v := NewValidator()
	if err := v.ValidateVar("character.name", c.Name, "required"); err != nil {
		return err
	}
	if err := v.ValidateVar("character.key_id", c.KeyID, "required,numeric"); err != nil {
		return err
	}
	return v.ValidateVar("character.v_code", c.VCode, "required,alphanum")
}
