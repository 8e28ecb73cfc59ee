package config

import (
	"log"
	"time"

	"github.com/sony/gobreaker"
)

// Breaker timeouts per dependency. Redis aligns with the health check
// timeout; database operations get a little more room; the default covers
// RabbitMQ publishes.
var breakerTimeouts = map[string]time.Duration{
	"Redis-RoomCache":  5 * time.Second,
	"PostgreSQL":       10 * time.Second,
	"Relay-PostgreSQL": 10 * time.Second,
}

const defaultBreakerTimeout = 30 * time.Second

// NewCircuitBreaker creates a circuit breaker with standard settings.
// The name parameter uniquely identifies the circuit breaker instance.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	timeout, ok := breakerTimeouts[name]
	if !ok {
		timeout = defaultBreakerTimeout
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Second * 10,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[CRITICAL] Circuit Breaker %s: %s -> %s", name, from, to)
		},
	})
}
