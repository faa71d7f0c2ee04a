package common_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/eve-wallet-go/internal/application/common"
	"github.com/andrescamacho/eve-wallet-go/internal/application/mediator"
	"github.com/andrescamacho/eve-wallet-go/internal/domain/shared"
)

type sampleQuery struct{}

func TestRequestName(t *testing.T) {
	assert.Equal(t, "sampleQuery", common.RequestName(&sampleQuery{}))
	assert.Equal(t, "UnknownRequest", common.RequestName(nil))
}

func TestLoggingMiddleware(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := common.WithLogger(context.Background(), logger)
	mw := common.LoggingMiddleware(shared.NewMockClock(time.Now()))

	// Act
	_, okErr := mw(ctx, &sampleQuery{}, func(ctx context.Context, r mediator.Request) (mediator.Response, error) {
		return "ok", nil
	})
	_, failErr := mw(ctx, &sampleQuery{}, func(ctx context.Context, r mediator.Request) (mediator.Response, error) {
		return nil, errors.New("boom")
	})

	// Assert
	require.NoError(t, okErr)
	require.EqualError(t, failErr, "boom")
	out := buf.String()
	assert.Contains(t, out, "request=sampleQuery")
	assert.Contains(t, out, "request handled")
	assert.Contains(t, out, "request failed")
	assert.Contains(t, out, "error=boom")
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	assert.NotNil(t, common.LoggerFromContext(ctx))
	assert.Equal(t, "", common.RunIDFromContext(ctx))

	ctx = common.WithRunID(ctx, "abc")
	assert.Equal(t, "abc", common.RunIDFromContext(ctx))
}
