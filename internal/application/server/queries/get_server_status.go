package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/eve-wallet-go/internal/application/mediator"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/server"
)

// GetServerStatusQuery fetches the game server status
type GetServerStatusQuery struct{}

// GetServerStatusResponse contains the status snapshot
type GetServerStatusResponse struct {
	Status *server.Status
}

// GetServerStatusHandler handles the GetServerStatus query
type GetServerStatusHandler struct {
	provider server.StatusProvider
}

// NewGetServerStatusHandler creates a new GetServerStatusHandler
func NewGetServerStatusHandler(provider server.StatusProvider) *GetServerStatusHandler {
	return &GetServerStatusHandler{provider: provider}
}

// Handle executes the GetServerStatus query
func (h *GetServerStatusHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetServerStatusQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetServerStatusQuery")
	}

	status, err := h.provider.ServerStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get server status: %w", err)
	}

	return &GetServerStatusResponse{Status: status}, nil
}
