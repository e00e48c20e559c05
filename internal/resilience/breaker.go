package resilience

import (
	"sync"
	"time"
)

// State represents the state of the circuit breaker
type State int

const (
	StateClosed   State = iota // Normal operation
	StateOpen                  // Failing, reject calls
	StateHalfOpen              // Testing if recovered
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	}
	return "unknown"
}

// Breaker implements the circuit breaker pattern for one upstream
type Breaker struct {
	mu              sync.RWMutex
	name            string
	state           State
	failures        int
	successes       int
	lastFailureTime time.Time
	// a half-open breaker lets one trial call through at a time
	probing bool

	// Configuration
	FailureThreshold int           // Consecutive failures before opening
	SuccessThreshold int           // Half-open successes before closing
	Timeout          time.Duration // How long to stay open before half-open
	OnStateChange    func(name string, from, to State)
}

// NewBreaker creates a breaker with defaults
func NewBreaker(name string) *Breaker {
	return &Breaker{
		name:             name,
		state:            StateClosed,
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
	}
}

// NewBreakerWithConfig creates a breaker with custom thresholds.
// Non-positive values keep the defaults.
func NewBreakerWithConfig(name string, failureThreshold, successThreshold int, timeout time.Duration) *Breaker {
	b := NewBreaker(name)
	if failureThreshold > 0 {
		b.FailureThreshold = failureThreshold
	}
	if successThreshold > 0 {
		b.SuccessThreshold = successThreshold
	}
	if timeout > 0 {
		b.Timeout = timeout
	}
	return b
}

// Name returns the upstream this breaker guards
func (b *Breaker) Name() string {
	return b.name
}

// State returns the current state
func (b *Breaker) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// Allow reports whether a call may go through. Once the open timeout
// has passed, a single caller is admitted as the trial call and the
// rest are rejected until its outcome is recorded or released.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		return true
	case StateOpen:
		if time.Since(b.lastFailureTime) <= b.Timeout {
			return false
		}
		b.setState(StateHalfOpen)
		b.probing = true
		return true
	case StateHalfOpen:
		if b.probing {
			return false
		}
		b.probing = true
		return true
	}
	return false
}

// Release gives back an admitted call without counting it either way,
// e.g. when the caller went away before the upstream answered
func (b *Breaker) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.probing = false
}

// RecordSuccess records a successful call
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.probing = false
	switch b.state {
	case StateHalfOpen:
		b.successes++
		if b.successes >= b.SuccessThreshold {
			b.setState(StateClosed)
			b.failures = 0
			b.successes = 0
		}
	case StateClosed:
		b.failures = 0
	}
}

// RecordFailure records a failed call
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.probing = false
	b.failures++
	b.lastFailureTime = time.Now()

	switch b.state {
	case StateClosed:
		if b.failures >= b.FailureThreshold {
			b.setState(StateOpen)
		}
	case StateHalfOpen:
		b.setState(StateOpen)
		b.successes = 0
	}
}

func (b *Breaker) setState(newState State) {
	if b.OnStateChange != nil && b.state != newState {
		b.OnStateChange(b.name, b.state, newState)
	}
	b.state = newState
}
