// README: Circuit breaker shared by every maps call so an unavailable provider fails fast.
package maps

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/AntoineKoerber/whereshouldweeat/internal/logging"
)

const statusCircuitOpen = "CIRCUIT_OPEN"

// Breaker opens after 60% failures over at least 10 calls in a one minute window
// and lets a trial call through after 30 seconds.
type Breaker struct {
	cb *gobreaker.CircuitBreaker[any]
}

func NewBreaker(name string) *Breaker {
	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= 0.6
		},
		// Legitimate "nothing there" answers are not provider faults, and neither
		// is a caller abandoning its request.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrNoRoute) ||
				errors.Is(err, ErrNotFound) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("maps circuit breaker state change")
		},
	})
	return &Breaker{cb: cb}
}

// execute runs fn under the breaker and wraps every failure as a ProviderError.
// A nil breaker runs fn directly.
func execute[T any](b *Breaker, op string, fn func() (T, error)) (T, error) {
	var zero T
	if b == nil {
		v, err := fn()
		if err != nil {
			return zero, asProviderError(op, err)
		}
		return v, nil
	}

	res, err := b.cb.Execute(func() (any, error) {
		v, err := fn()
		return v, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, &ProviderError{Op: op, Status: statusCircuitOpen, Err: err}
		}
		return zero, asProviderError(op, err)
	}
	v, ok := res.(T)
	if !ok {
		return zero, nil
	}
	return v, nil
}

func asProviderError(op string, err error) error {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return err
	}
	return &ProviderError{Op: op, Err: err}
}
