package character

import (
	"context"

	"github.com/andrescamacho/eve-wallet-go/internal/domain/shared"
)

// Directory resolves the configured character name to its numeric id
type Directory interface {
	CharacterID(ctx context.Context) (shared.CharacterID, error)
	CharacterName() string
}
