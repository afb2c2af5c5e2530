package http

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerOpensAtThreshold(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, RecoveryTimeout: time.Minute})
	host := "www.youtube.com"

	failure := errors.New("boom")
	cb.RecordFailure(host, failure)
	cb.RecordFailure(host, failure)
	assert.Equal(t, CircuitClosed, cb.State(host))
	require.NoError(t, cb.Allow(host))

	cb.RecordFailure(host, failure)
	assert.Equal(t, CircuitOpen, cb.State(host))
	assert.ErrorIs(t, cb.Allow(host), ErrCircuitOpen)
}

func TestCircuitBreakerSuccessResetsCount(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, RecoveryTimeout: time.Minute})
	host := "www.youtube.com"

	cb.RecordFailure(host, errors.New("boom"))
	cb.RecordSuccess(host)
	cb.RecordFailure(host, errors.New("boom"))
	assert.Equal(t, CircuitClosed, cb.State(host))
}

func TestCircuitBreakerHalfOpenProbe(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, RecoveryTimeout: time.Minute})
	host := "www.youtube.com"

	now := time.Now()
	cb.now = func() time.Time { return now }

	cb.RecordFailure(host, errors.New("boom"))
	assert.ErrorIs(t, cb.Allow(host), ErrCircuitOpen)

	// After the recovery timeout one probe goes through.
	now = now.Add(2 * time.Minute)
	require.NoError(t, cb.Allow(host))
	assert.Equal(t, CircuitHalfOpen, cb.State(host))

	// A failed probe reopens immediately.
	cb.RecordFailure(host, errors.New("boom"))
	assert.Equal(t, CircuitOpen, cb.State(host))
	assert.ErrorIs(t, cb.Allow(host), ErrCircuitOpen)

	// A successful probe closes the circuit.
	now = now.Add(2 * time.Minute)
	require.NoError(t, cb.Allow(host))
	cb.RecordSuccess(host)
	assert.Equal(t, CircuitClosed, cb.State(host))
}

func TestCircuitBreakerPerHost(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, RecoveryTimeout: time.Minute})

	cb.RecordFailure("www.youtube.com", errors.New("boom"))
	assert.ErrorIs(t, cb.Allow("www.youtube.com"), ErrCircuitOpen)
	assert.NoError(t, cb.Allow("music.youtube.com"))
}

func TestCircuitBreakerIgnoresNonTransient(t *testing.T) {
	permanent := errors.New("permanent")
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		RecoveryTimeout:  time.Minute,
		IsTransientError: func(err error) bool { return !errors.Is(err, permanent) },
	})

	cb.RecordFailure("www.youtube.com", permanent)
	assert.Equal(t, CircuitClosed, cb.State("www.youtube.com"))

	cb.RecordFailure("www.youtube.com", errors.New("transient"))
	assert.Equal(t, CircuitOpen, cb.State("www.youtube.com"))
}

func TestCircuitStateString(t *testing.T) {
	assert.Equal(t, "closed", CircuitClosed.String())
	assert.Equal(t, "open", CircuitOpen.String())
	assert.Equal(t, "half-open", CircuitHalfOpen.String())
	assert.Equal(t, "unknown", CircuitState(42).String())
}
