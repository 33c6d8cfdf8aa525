package shutdown

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	shutdownDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "securepay_shutdown_duration_seconds",
		Help:    "Total time taken to release process resources",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	})

	shutdownErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "securepay_shutdown_errors_total",
		Help: "Total number of shutdown errors by component",
	}, []string{"component"})
)

// ShutdownFunc releases one component
type ShutdownFunc func(context.Context) error

type component struct {
	name string
	fn   ShutdownFunc
}

// Manager releases registered components in reverse registration order.
// Register the audit database before the metrics server so health checks
// never ping a closed pool.
type Manager struct {
	logger     *zap.Logger
	timeout    time.Duration
	mu         sync.Mutex
	components []component
	done       bool
}

// NewManager creates a shutdown manager bounded by timeout
func NewManager(logger *zap.Logger, timeout time.Duration) *Manager {
	return &Manager{
		logger:  logger,
		timeout: timeout,
	}
}

// Register adds a component; it is released before anything registered earlier
func (sm *Manager) Register(name string, fn ShutdownFunc) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.components = append(sm.components, component{name: name, fn: fn})
	sm.logger.Debug("Registered shutdown component",
		zap.String("component", name),
		zap.Int("registration_order", len(sm.components)),
	)
}

// RegisterHTTPServer registers a server's graceful Shutdown
func (sm *Manager) RegisterHTTPServer(name string, server interface{ Shutdown(context.Context) error }) {
	sm.Register(name, server.Shutdown)
}

// RegisterNoErr registers a close function that cannot fail, such as pgxpool.Pool.Close
func (sm *Manager) RegisterNoErr(name string, fn func()) {
	sm.Register(name, func(context.Context) error {
		fn()
		return nil
	})
}

// Shutdown releases every component once, in LIFO order, and joins their errors.
// Later calls are no-ops.
func (sm *Manager) Shutdown() error {
	sm.mu.Lock()
	if sm.done {
		sm.mu.Unlock()
		return nil
	}
	sm.done = true
	components := sm.components
	sm.mu.Unlock()

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), sm.timeout)
	defer cancel()

	var errs []error
	for i := len(components) - 1; i >= 0; i-- {
		c := components[i]
		if err := c.fn(ctx); err != nil {
			shutdownErrors.WithLabelValues(c.name).Inc()
			sm.logger.Warn("Component shutdown failed",
				zap.String("component", c.name),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", c.name, err))
			continue
		}
		sm.logger.Debug("Component shut down", zap.String("component", c.name))
	}

	shutdownDuration.Observe(time.Since(start).Seconds())
	return errors.Join(errs...)
}
