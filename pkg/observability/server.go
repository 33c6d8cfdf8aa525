package observability

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewMetricsMux serves /metrics, /health and /ready
func NewMetricsMux(healthChecker *HealthChecker) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())

	if healthChecker == nil {
		healthChecker = NewHealthChecker()
	}
	mux.HandleFunc("/health", healthChecker.HealthHandler())

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	return mux
}

// StartMetricsServer starts an HTTP server for Prometheus metrics and health checks
func StartMetricsServer(port int, healthChecker *HealthChecker, logger *zap.Logger) *http.Server {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      NewMetricsMux(healthChecker),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		logger.Info("Metrics server listening", zap.Int("port", port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server error", zap.Error(err))
		}
	}()

	return server
}
