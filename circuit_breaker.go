package ssdb

import (
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/driftlab/ssdb/wire"
)

// NewCircuitBreakerConfig returns a function that creates a circuit
// breaker for a session, suitable for Config.NewCircuitBreaker.
// This is a helper for common use cases.
//
// While the breaker is open, Do fails fast with gobreaker.ErrOpenState
// without touching the connection. The breaker never retries or
// reconnects on its own.
func NewCircuitBreakerConfig(maxRequests uint32, interval, timeout time.Duration) func(string) *gobreaker.CircuitBreaker[*wire.Response] {
	return func(addr string) *gobreaker.CircuitBreaker[*wire.Response] {
		settings := gobreaker.Settings{
			Name:        addr,
			MaxRequests: maxRequests,
			Interval:    interval,
			Timeout:     timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
			IsSuccessful: func(err error) bool {
				// Command-level failures carry no signal about server
				// health and must not trip the breaker.
				return !ShouldCloseConnection(err)
			},
		}
		return gobreaker.NewCircuitBreaker[*wire.Response](settings)
	}
}
