package http

import (
	"errors"
	"sync"
	"time"
)

// CircuitState represents the state of a circuit breaker.
type CircuitState int

const (
	// CircuitClosed is the normal state where requests are allowed.
	CircuitClosed CircuitState = iota
	// CircuitOpen is the state where requests fail fast.
	CircuitOpen
	// CircuitHalfOpen is the testing state where one request is allowed.
	CircuitHalfOpen
)

// String returns the string representation of a circuit state.
func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen is returned when the circuit breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig configures circuit breaker behavior.
type CircuitBreakerConfig struct {
	// FailureThreshold is the number of consecutive failures to open the circuit.
	FailureThreshold int
	// RecoveryTimeout is how long the circuit stays open before transitioning
	// to half-open.
	RecoveryTimeout time.Duration
	// IsTransientError reports whether an error counts against the circuit.
	// Nil treats all errors as transient.
	IsTransientError func(error) bool
}

// DefaultCircuitBreakerConfig returns sensible defaults.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 5,
		RecoveryTimeout:  30 * time.Second,
	}
}

// circuit holds the state for a single host.
type circuit struct {
	state             CircuitState
	consecutiveErrors int
	openedAt          time.Time
}

// CircuitBreaker fails fast per host after repeated transient failures.
type CircuitBreaker struct {
	mu       sync.Mutex
	circuits map[string]*circuit
	config   CircuitBreakerConfig
	now      func() time.Time
}

// NewCircuitBreaker creates a circuit breaker with the given configuration.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = DefaultCircuitBreakerConfig().FailureThreshold
	}
	if cfg.RecoveryTimeout <= 0 {
		cfg.RecoveryTimeout = DefaultCircuitBreakerConfig().RecoveryTimeout
	}
	return &CircuitBreaker{
		circuits: make(map[string]*circuit),
		config:   cfg,
		now:      time.Now,
	}
}

// Allow reports whether a request to the host may proceed. An open circuit
// returns ErrCircuitOpen until the recovery timeout elapses, after which a
// single probe request is let through.
func (cb *CircuitBreaker) Allow(host string) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	c := cb.circuitFor(host)
	switch c.state {
	case CircuitClosed, CircuitHalfOpen:
		return nil
	case CircuitOpen:
		if cb.now().Sub(c.openedAt) >= cb.config.RecoveryTimeout {
			c.state = CircuitHalfOpen
			return nil
		}
		return ErrCircuitOpen
	}
	return nil
}

// RecordSuccess closes the host's circuit.
func (cb *CircuitBreaker) RecordSuccess(host string) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	c := cb.circuitFor(host)
	c.state = CircuitClosed
	c.consecutiveErrors = 0
}

// RecordFailure counts a transient failure against the host's circuit,
// opening it once the threshold is reached. A failed half-open probe
// reopens immediately.
func (cb *CircuitBreaker) RecordFailure(host string, err error) {
	if cb.config.IsTransientError != nil && !cb.config.IsTransientError(err) {
		return
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	c := cb.circuitFor(host)
	c.consecutiveErrors++

	if c.state == CircuitHalfOpen || c.consecutiveErrors >= cb.config.FailureThreshold {
		c.state = CircuitOpen
		c.openedAt = cb.now()
	}
}

// State returns the current state of the host's circuit.
func (cb *CircuitBreaker) State(host string) CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.circuitFor(host).state
}

func (cb *CircuitBreaker) circuitFor(host string) *circuit {
	c, ok := cb.circuits[host]
	if !ok {
		c = &circuit{state: CircuitClosed}
		cb.circuits[host] = c
	}
	return c
}
