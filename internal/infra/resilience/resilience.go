// Package resilience provides caller-side fault-tolerance patterns:
// retry with exponential backoff, circuit breaker, and bulkhead.
// The API client never applies them on its own.
package resilience

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/sony/gobreaker"

	"github.com/boddenberg/tochka-go/internal/domain"
)

// Config holds resilience parameters.
type Config struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxConcurrency int
	// MaxFailures consecutive retryable failures open the breaker.
	MaxFailures int
}

// IsRetryable reports whether repeating the same call may succeed:
// timeouts, transport failures, rate limiting and 5xx responses.
// Caller cancellation is never retried.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	switch domain.KindOf(err) {
	case domain.KindTimeout, domain.KindNetwork, domain.KindTooManyRequests, domain.KindServer:
		return true
	default:
		return false
	}
}

// RetryWithBackoff executes fn with exponential backoff + jitter.
// It stops at the first non-retryable error and respects context cancellation.
func RetryWithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}

		if attempt < cfg.MaxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff(cfg.InitialBackoff, attempt)):
			}
		}
	}
	return lastErr
}

func backoff(initial time.Duration, attempt int) time.Duration {
	wait := time.Duration(math.Pow(2, float64(attempt))) * initial
	if half := int64(wait / 2); half > 0 {
		wait += time.Duration(rand.Int63n(half))
	}
	return wait
}

// NewCircuitBreaker creates a breaker that opens after maxFailures
// consecutive retryable failures. Client-side mistakes (4xx, validation,
// config) do not count against the upstream.
func NewCircuitBreaker(name string, maxFailures int) *gobreaker.CircuitBreaker {
	if maxFailures <= 0 {
		maxFailures = 5
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,                // half-open: one probe
		Interval:    60 * time.Second, // closed: reset counters every minute
		Timeout:     30 * time.Second, // open -> half-open after 30s
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(maxFailures)
		},
		IsSuccessful: func(err error) bool {
			return !IsRetryable(err)
		},
	})
}

// Call runs fn through cb with retries. An open breaker fails fast with
// gobreaker.ErrOpenState.
func Call[T any](ctx context.Context, cb *gobreaker.CircuitBreaker, cfg Config, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	result, err := cb.Execute(func() (any, error) {
		var out T
		err := RetryWithBackoff(ctx, cfg, func() error {
			var innerErr error
			out, innerErr = fn(ctx)
			return innerErr
		})
		return out, err
	})
	if err != nil {
		return zero, err
	}
	return result.(T), nil
}

// Bulkhead limits concurrent access to a resource.
type Bulkhead struct {
	sem chan struct{}
}

// NewBulkhead creates a bulkhead with the given max concurrency.
func NewBulkhead(maxConcurrency int) *Bulkhead {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	return &Bulkhead{sem: make(chan struct{}, maxConcurrency)}
}

// Acquire blocks until a slot is available or context is cancelled.
func (b *Bulkhead) Acquire(ctx context.Context) error {
	select {
	case b.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot.
func (b *Bulkhead) Release() {
	<-b.sem
}
