// ABOUTME: This file implements a circuit breaker for outbound provider calls
// ABOUTME: Consecutive tripping failures open the circuit and later calls fail fast until the cooldown ends
package utils

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned without calling the provider while the circuit is open.
var ErrCircuitOpen = errors.New("circuit breaker open")

// CircuitState represents the current state of the circuit breaker
type CircuitState int

const (
	// CircuitClosed lets every call through
	CircuitClosed CircuitState = iota
	// CircuitOpen rejects calls until the cooldown has passed
	CircuitOpen
	// CircuitHalfOpen lets one probe through
	CircuitHalfOpen
)

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

// CircuitBreakerOptions configures a CircuitBreaker.
type CircuitBreakerOptions struct {
	// Threshold is the number of consecutive tripping failures that opens the circuit.
	Threshold int
	// Cooldown is how long the circuit stays open before a probe is allowed.
	Cooldown time.Duration
	// Trips decides whether a failure counts. Nil counts every failure.
	Trips func(error) bool
}

// CircuitBreaker guards a single upstream provider.
type CircuitBreaker struct {
	opts        CircuitBreakerOptions
	now         func() time.Time
	state       CircuitState
	consecutive int
	openedAt    time.Time
	probing     bool
	mu          sync.Mutex
}

// NewCircuitBreaker creates a closed breaker. A threshold below 1 is treated as 1.
func NewCircuitBreaker(opts CircuitBreakerOptions) *CircuitBreaker {
	if opts.Threshold < 1 {
		opts.Threshold = 1
	}
	return &CircuitBreaker{opts: opts, now: time.Now}
}

// Call runs fn unless the circuit is open.
func (cb *CircuitBreaker) Call(fn func() error) error {
	if !cb.allow() {
		return ErrCircuitOpen
	}

	err := fn()
	cb.record(err)
	return err
}

func (cb *CircuitBreaker) allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitOpen:
		if cb.now().Sub(cb.openedAt) < cb.opts.Cooldown {
			return false
		}
		cb.state = CircuitHalfOpen
		cb.probing = true
		return true
	case CircuitHalfOpen:
		// one probe at a time
		if cb.probing {
			return false
		}
		cb.probing = true
		return true
	default:
		return true
	}
}

func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.probing = false
	tripping := err != nil && (cb.opts.Trips == nil || cb.opts.Trips(err))

	if !tripping {
		cb.consecutive = 0
		cb.state = CircuitClosed
		return
	}

	cb.consecutive++
	if cb.state == CircuitHalfOpen || cb.consecutive >= cb.opts.Threshold {
		cb.state = CircuitOpen
		cb.openedAt = cb.now()
	}
}

// State returns the current state of the circuit breaker
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Failures returns the number of consecutive tripping failures.
func (cb *CircuitBreaker) Failures() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.consecutive
}
