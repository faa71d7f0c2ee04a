package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/eve-wallet-go/internal/domain/shared"
)

func TestCircuitBreaker_OpensAtThreshold(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	cb := NewCircuitBreaker(2, time.Minute, clock)

	require.NoError(t, cb.Allow())
	cb.RecordFailure()
	assert.Equal(t, CircuitClosed, cb.State())

	cb.RecordFailure()
	assert.Equal(t, CircuitOpen, cb.State())
	assert.ErrorIs(t, cb.Allow(), ErrCircuitOpen)
}

func TestCircuitBreaker_HalfOpenAfterCooldown(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	cb := NewCircuitBreaker(1, time.Minute, clock)
	cb.RecordFailure()
	require.Equal(t, CircuitOpen, cb.State())

	clock.CurrentTime = clock.CurrentTime.Add(time.Minute)

	require.NoError(t, cb.Allow())
	assert.Equal(t, CircuitHalfOpen, cb.State())

	t.Run("failed probe reopens", func(t *testing.T) {
		cb.RecordFailure()
		assert.Equal(t, CircuitOpen, cb.State())
	})

	t.Run("successful probe closes", func(t *testing.T) {
		clock.CurrentTime = clock.CurrentTime.Add(time.Minute)
		require.NoError(t, cb.Allow())
		cb.RecordSuccess()
		assert.Equal(t, CircuitClosed, cb.State())
		assert.Zero(t, cb.FailureCount())
	})
}

func TestRequester_OpenCircuitRejectsWithoutCallingServer(t *testing.T) {
	// Arrange
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	clock := shared.NewMockClock(time.Time{})
	cb := NewCircuitBreaker(1, time.Hour, clock)
	r := newTestRequester(t, server.URL, clock, WithRetries(0, time.Second), WithCircuitBreaker(cb))

	// Act
	_, first := r.post(context.Background(), "/test", url.Values{})
	_, second := r.post(context.Background(), "/test", url.Values{})

	// Assert
	require.Error(t, first)
	require.ErrorIs(t, second, ErrCircuitOpen)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	var transportErr *shared.TransportError
	require.ErrorAs(t, second, &transportErr)
	assert.Equal(t, "/test", transportErr.Endpoint)
}

func TestRequester_ClientErrorsDoNotTripCircuit(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	clock := shared.NewMockClock(time.Time{})
	cb := NewCircuitBreaker(1, time.Hour, clock)
	r := newTestRequester(t, server.URL, clock, WithCircuitBreaker(cb))

	// Act
	_, err := r.post(context.Background(), "/test", url.Values{})

	// Assert
	require.Error(t, err)
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestRequester_HalfOpenProbeAnsweredWithClientErrorClosesCircuit(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	clock := shared.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	cb := NewCircuitBreaker(1, time.Minute, clock)
	cb.RecordFailure()
	clock.CurrentTime = clock.CurrentTime.Add(time.Minute)
	r := newTestRequester(t, server.URL, clock, WithCircuitBreaker(cb))

	// Act
	_, err := r.post(context.Background(), "/test", url.Values{})

	// Assert
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, CircuitClosed, cb.State())
	assert.Zero(t, cb.FailureCount())
}

func TestRequester_HalfOpenProbeAnsweredWithErrorDocumentClosesCircuit(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<eveapi version="2"><error code="203">Authentication failure.</error></eveapi>`))
	}))
	defer server.Close()

	clock := shared.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	cb := NewCircuitBreaker(1, time.Minute, clock)
	cb.RecordFailure()
	clock.CurrentTime = clock.CurrentTime.Add(time.Minute)
	r := newTestRequester(t, server.URL, clock, WithCircuitBreaker(cb))

	// Act
	_, err := r.post(context.Background(), "/test", url.Values{})

	// Assert
	require.Error(t, err)
	assert.Equal(t, CircuitClosed, cb.State())
}
