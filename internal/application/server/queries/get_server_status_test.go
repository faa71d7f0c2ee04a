package queries_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/eve-wallet-go/internal/application/server/queries"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/server"
	"github.com/andrescamacho/eve-wallet-go/test/helpers"
)

func TestGetServerStatus(t *testing.T) {
	account := helpers.NewMockAccountGateway("Kali Lin", 1)
	account.SetStatus(&server.Status{Open: true, OnlinePlayers: 31142, CurrentTime: "2014-03-01 12:00:00"})
	handler := queries.NewGetServerStatusHandler(account)

	resp, err := handler.Handle(context.Background(), &queries.GetServerStatusQuery{})

	require.NoError(t, err)
	status := resp.(*queries.GetServerStatusResponse).Status
	assert.True(t, status.Open)
	assert.Equal(t, int64(31142), status.OnlinePlayers)
}

func TestGetServerStatus_Error(t *testing.T) {
	account := helpers.NewMockAccountGateway("Kali Lin", 1)
	account.SetStatusError(errors.New("down"))
	handler := queries.NewGetServerStatusHandler(account)

	_, err := handler.Handle(context.Background(), &queries.GetServerStatusQuery{})

	assert.ErrorContains(t, err, "failed to get server status")
}
