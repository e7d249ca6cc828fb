// Package circuitbreaker wraps sony/gobreaker/v2 with the defaults this
// codebase's callers share: a half-open probe after a cooldown, tripping
// after a run of consecutive failures rather than a failure ratio.
package circuitbreaker

import (
	"time"

	"github.com/sony/gobreaker/v2"
)

// Config configures a CircuitBreaker. ConsecutiveFailures is the number of
// back-to-back failures that trips the breaker open; Cooldown is how long
// it stays open before allowing a single half-open probe request.
type Config struct {
	Name                string
	ConsecutiveFailures uint32
	Cooldown            time.Duration
	OnStateChange       func(name string, from, to gobreaker.State)
}

// DefaultConfig returns a Config that trips after 3 consecutive failures
// and cools down for 5 seconds, the values observed across this codebase's
// callers.
func DefaultConfig(name string) Config {
	return Config{
		Name:                name,
		ConsecutiveFailures: 3,
		Cooldown:            5 * time.Second,
	}
}

// CircuitBreaker wraps a generic gobreaker instance returning T.
type CircuitBreaker[T any] struct {
	cb *gobreaker.CircuitBreaker[T]
}

// New builds a CircuitBreaker from cfg.
func New[T any](cfg Config) *CircuitBreaker[T] {
	settings := gobreaker.Settings{
		Name:     cfg.Name,
		Timeout:  cfg.Cooldown,
		Interval: 0,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
	}
	if cfg.OnStateChange != nil {
		settings.OnStateChange = cfg.OnStateChange
	}
	return &CircuitBreaker[T]{cb: gobreaker.NewCircuitBreaker[T](settings)}
}

// Execute runs fn through the breaker, returning gobreaker.ErrOpenState
// without calling fn if the breaker is currently open.
func (c *CircuitBreaker[T]) Execute(fn func() (T, error)) (T, error) {
	return c.cb.Execute(fn)
}

// State returns the breaker's current state.
func (c *CircuitBreaker[T]) State() gobreaker.State {
	return c.cb.State()
}
