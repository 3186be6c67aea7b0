package httpclient

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrCircuitOpen is returned while the breaker refuses requests.
var ErrCircuitOpen = errors.New("circuit breaker is open")

type breakerState int

const (
	stateClosed breakerState = iota
	stateOpen
	stateHalfOpen
)

// Breaker trips to open after maxFailures consecutive failed request cycles
// and stays open for openFor. The first Allow after that window switches to
// half-open and admits a single probe; its outcome decides whether the
// breaker closes again.
type Breaker struct {
	mu          sync.Mutex
	state       breakerState
	failures    int
	maxFailures int
	openedAt    time.Time
	openFor     time.Duration
	probing     bool
}

func NewBreaker(maxFailures int, openFor time.Duration) *Breaker {
	if maxFailures <= 0 {
		maxFailures = 5
	}
	if openFor <= 0 {
		openFor = 30 * time.Second
	}
	return &Breaker{maxFailures: maxFailures, openFor: openFor}
}

func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case stateClosed:
		return nil

	case stateOpen:
		if time.Since(b.openedAt) <= b.openFor {
			return ErrCircuitOpen
		}
		slog.Warn("circuit breaker: open -> half-open")
		b.state = stateHalfOpen
		b.probing = true
		return nil

	default: // half-open
		if b.probing {
			return ErrCircuitOpen
		}
		b.probing = true
		return nil
	}
}

func (b *Breaker) Success() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == stateHalfOpen {
		slog.Info("circuit breaker: half-open -> closed")
	}
	b.state = stateClosed
	b.failures = 0
	b.probing = false
}

func (b *Breaker) Failure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case stateHalfOpen:
		slog.Error("circuit breaker: half-open -> open (probe failed)")
		b.state = stateOpen
		b.openedAt = time.Now()
		b.probing = false

	case stateClosed:
		b.failures++
		if b.failures >= b.maxFailures {
			slog.Error("circuit breaker: closed -> open", "failures", b.failures)
			b.state = stateOpen
			b.openedAt = time.Now()
		}
	}
}
