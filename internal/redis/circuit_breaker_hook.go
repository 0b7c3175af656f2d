package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	goredis "github.com/redis/go-redis/v9"

	"github.com/razdine10/Groovify/internal/metrics"
)

// CircuitBreakerHook implements redis.Hook to add circuit breaker protection
// to all Redis operations. Reports fall back to PostgreSQL when the cache is
// unavailable, so a slow or dead Redis must fail fast instead of stalling
// every request.
type CircuitBreakerHook struct {
	cb    circuitbreaker.CircuitBreaker[any]
	cache *fallbackStore
}

var _ goredis.Hook = (*CircuitBreakerHook)(nil)

// fallbackStore holds recently read report payloads, served when the
// circuit is open.
type fallbackStore struct {
	mu     sync.RWMutex
	values map[string]fallbackValue
}

type fallbackValue struct {
	data      string
	timestamp time.Time
}

const fallbackTTL = 5 * time.Minute

// NewCircuitBreakerHook creates a new circuit breaker hook with the following settings:
// - WithFailureRateThreshold: 60% failure rate, min 5 requests, 10s rolling window
// - WithDelay: 30s before transitioning from open to half-open
// - WithSuccessThreshold: 1 successful request in half-open to close
func NewCircuitBreakerHook() *CircuitBreakerHook {
	cb := circuitbreaker.NewBuilder[any]().
		WithFailureRateThreshold(0.6, 5, 10*time.Second).
		WithDelay(30 * time.Second).
		WithSuccessThreshold(1).
		OnStateChanged(func(e circuitbreaker.StateChangedEvent) {
			slog.Warn("Circuit breaker state changed",
				"component", "redis",
				"from", e.OldState.String(),
				"to", e.NewState.String(),
			)

			metrics.CircuitBreakerStateChanges.WithLabelValues("redis", e.NewState.String()).Inc()
			metrics.CircuitBreakerState.WithLabelValues("redis").Set(stateToFloat(e.NewState))
		}).
		Build()

	return &CircuitBreakerHook{
		cb: cb,
		cache: &fallbackStore{
			values: make(map[string]fallbackValue),
		},
	}
}

func stateToFloat(state circuitbreaker.State) float64 {
	switch state {
	case circuitbreaker.ClosedState:
		return 0
	case circuitbreaker.HalfOpenState:
		return 1
	case circuitbreaker.OpenState:
		return 2
	default:
		return -1
	}
}

// DialHook wraps connection establishment with circuit breaker
func (h *CircuitBreakerHook) DialHook(next goredis.DialHook) goredis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		if !h.cb.TryAcquirePermit() {
			return nil, fmt.Errorf("circuit breaker dial failed: %w", circuitbreaker.ErrOpen)
		}
		conn, err := next(ctx, network, addr)
		if err != nil {
			h.cb.RecordError(err)
			return nil, fmt.Errorf("circuit breaker dial failed: %w", err)
		}
		h.cb.RecordSuccess()
		return conn, nil
	}
}

// ProcessHook wraps command execution with circuit breaker and fallback caching
func (h *CircuitBreakerHook) ProcessHook(next goredis.ProcessHook) goredis.ProcessHook {
	return func(ctx context.Context, cmd goredis.Cmder) error {
		if !h.cb.TryAcquirePermit() {
			return h.handleFallback(cmd)
		}

		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, goredis.Nil) {
			h.cb.RecordError(err)
		} else {
			h.cb.RecordSuccess()
		}

		if err == nil {
			h.cacheResult(cmd)
		}

		if err != nil {
			return fmt.Errorf("circuit breaker process failed: %w", err)
		}
		return nil
	}
}

// ProcessPipelineHook wraps pipeline execution with circuit breaker
func (h *CircuitBreakerHook) ProcessPipelineHook(next goredis.ProcessPipelineHook) goredis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []goredis.Cmder) error {
		if !h.cb.TryAcquirePermit() {
			return fmt.Errorf("redis circuit breaker open: %w", circuitbreaker.ErrOpen)
		}

		err := next(ctx, cmds)
		if err != nil {
			h.cb.RecordError(err)
			return fmt.Errorf("circuit breaker pipeline failed: %w", err)
		}
		h.cb.RecordSuccess()
		return nil
	}
}

// handleFallback serves cached report payloads when the circuit is open.
// Only GET can be answered from the fallback store; writes fail fast.
func (h *CircuitBreakerHook) handleFallback(cmd goredis.Cmder) error {
	switch cmd.Name() {
	case "get":
		if result := h.getFromCache(cmd); result != "" {
			slog.Debug("Circuit breaker open, serving from fallback store",
				"command", cmd.Name(),
				"args", cmd.Args(),
			)
			if c, ok := cmd.(*goredis.StringCmd); ok {
				c.SetVal(result)
				return nil
			}
		}
		return fmt.Errorf("redis circuit breaker open and no cached value: %w", circuitbreaker.ErrOpen)

	case "set", "del":
		slog.Warn("Circuit breaker open for write operation",
			"command", cmd.Name(),
			"args", cmd.Args(),
		)
		return fmt.Errorf("redis circuit breaker open: %w", circuitbreaker.ErrOpen)

	default:
		return fmt.Errorf("redis circuit breaker open: %w", circuitbreaker.ErrOpen)
	}
}

// cacheResult stores successful GET results for future fallback
func (h *CircuitBreakerHook) cacheResult(cmd goredis.Cmder) {
	if cmd.Name() != "get" {
		return
	}

	args := cmd.Args()
	if len(args) < 2 {
		return
	}

	key := fmt.Sprintf("%v", args[1])
	value := ""
	if c, ok := cmd.(*goredis.StringCmd); ok {
		value, _ = c.Result()
	}

	if value != "" {
		h.cache.mu.Lock()
		h.cache.values[key] = fallbackValue{
			data:      value,
			timestamp: time.Now(),
		}
		h.cache.mu.Unlock()
	}
}

// getFromCache retrieves a cached value if available and not expired
func (h *CircuitBreakerHook) getFromCache(cmd goredis.Cmder) string {
	args := cmd.Args()
	if len(args) < 2 {
		return ""
	}

	key := fmt.Sprintf("%v", args[1])

	h.cache.mu.RLock()
	defer h.cache.mu.RUnlock()

	cached, ok := h.cache.values[key]
	if !ok {
		return ""
	}

	if time.Since(cached.timestamp) > fallbackTTL {
		return ""
	}

	return cached.data
}

// GetState returns the current state of the circuit breaker (for testing/monitoring)
func (h *CircuitBreakerHook) GetState() circuitbreaker.State {
	return h.cb.State()
}

// GetMetrics returns the current metrics (for testing/monitoring)
func (h *CircuitBreakerHook) GetMetrics() circuitbreaker.Metrics {
	return h.cb.Metrics()
}
