package api

import (
	"errors"
	"sync"
	"time"

	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// ErrCircuitOpen is returned while the breaker refuses calls to an unhealthy server
var ErrCircuitOpen = errors.New("circuit breaker open")

type circuitState int

const (
	circuitClosed circuitState = iota
	circuitOpen
	circuitHalfOpen
)

// circuitBreaker opens after maxFailures consecutive transport failures and lets one probe
// through once cooldown has passed. Rejections by the game do not count as failures.
type circuitBreaker struct {
	maxFailures int
	cooldown    time.Duration
	clock       shared.Clock

	mu       sync.Mutex
	state    circuitState
	failures int
	openedAt time.Time
}

func newCircuitBreaker(maxFailures int, cooldown time.Duration, clock shared.Clock) *circuitBreaker {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &circuitBreaker{maxFailures: maxFailures, cooldown: cooldown, clock: clock}
}

func (cb *circuitBreaker) allow() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state != circuitOpen {
		return nil
	}
	if cb.clock.Now().Sub(cb.openedAt) < cb.cooldown {
		return ErrCircuitOpen
	}
	cb.state = circuitHalfOpen
	return nil
}

func (cb *circuitBreaker) record(failed bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if !failed {
		cb.failures = 0
		cb.state = circuitClosed
		return
	}
	cb.failures++
	if cb.state == circuitHalfOpen || cb.failures >= cb.maxFailures {
		cb.state = circuitOpen
		cb.openedAt = cb.clock.Now()
	}
}
