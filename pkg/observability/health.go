package observability

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"
)

const healthCheckTimeout = 2 * time.Second

// HealthStatus represents the health status of the client process
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// CheckFunc reports a dependency as unhealthy by returning an error
type CheckFunc func(ctx context.Context) error

// Pinger is satisfied by *pgxpool.Pool
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker runs named dependency checks
type HealthChecker struct {
	mu     sync.RWMutex
	checks map[string]CheckFunc
}

// NewHealthChecker creates a HealthChecker with no checks; an empty checker is healthy
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{checks: make(map[string]CheckFunc)}
}

// AddCheck registers fn under name, replacing any earlier check with that name
func (h *HealthChecker) AddCheck(name string, fn CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = fn
}

// AddPinger registers a ping-based check, e.g. the audit database pool
func (h *HealthChecker) AddPinger(name string, p Pinger) {
	h.AddCheck(name, p.Ping)
}

// Check performs health checks and returns the status
func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	h.mu.RLock()
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	h.mu.RUnlock()
	sort.Strings(names)

	checks := make(map[string]string, len(names))
	overallStatus := "healthy"

	for _, name := range names {
		h.mu.RLock()
		fn := h.checks[name]
		h.mu.RUnlock()

		checkCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
		err := fn(checkCtx)
		cancel()

		if err != nil {
			checks[name] = "unhealthy: " + err.Error()
			overallStatus = "unhealthy"
		} else {
			checks[name] = "healthy"
		}
	}

	return HealthStatus{
		Status:    overallStatus,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	}
}

// HealthHandler returns an HTTP handler for health checks
func (h *HealthChecker) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := h.Check(r.Context())

		w.Header().Set("Content-Type", "application/json")
		if status.Status != "healthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}

		_ = json.NewEncoder(w).Encode(status)
	}
}
