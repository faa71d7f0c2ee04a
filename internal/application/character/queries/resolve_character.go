package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/eve-wallet-go/internal/application/mediator"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/character"
)

// ResolveCharacterQuery maps the configured character name to its id
type ResolveCharacterQuery struct{}

// ResolveCharacterResponse contains the resolved character
type ResolveCharacterResponse struct {
	Character *character.Character
}

// ResolveCharacterHandler handles the ResolveCharacter query
type ResolveCharacterHandler struct {
	directory character.Directory
}

// NewResolveCharacterHandler creates a new ResolveCharacterHandler
func NewResolveCharacterHandler(directory character.Directory) *ResolveCharacterHandler {
	return &ResolveCharacterHandler{directory: directory}
}

// Handle executes the ResolveCharacter query
func (h *ResolveCharacterHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ResolveCharacterQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ResolveCharacterQuery")
	}

	name := h.directory.CharacterName()
	id, err := h.directory.CharacterID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve character %s: %w", name, err)
	}

	return &ResolveCharacterResponse{Character: character.NewCharacter(name, id)}, nil
}
