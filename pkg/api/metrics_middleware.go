package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ABHINAV2087/REST-API-Learning/pkg/metrics"
)

// metricsMiddleware wraps an http.Handler to record Prometheus metrics.
// It records request counts and durations.
func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if skipObservePaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		// Wrap the response writer to capture status code
		wrapped := &statusCapturingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		// Record metrics
		duration := time.Since(start)
		status := strconv.Itoa(wrapped.statusCode)
		path := normalizePathForMetrics(r.URL.Path)

		if metrics.RequestsTotal != nil {
			if vec, err := metrics.RequestsTotal.WithLabels(r.Method, path, status); err == nil {
				_ = vec.Inc()
			}
		}

		if metrics.RequestDuration != nil {
			if vec, err := metrics.RequestDuration.WithLabels(r.Method, path); err == nil {
				vec.Observe(duration.Seconds())
			}
		}
	})
}

// normalizePathForMetrics collapses per-user paths into the route pattern
// so the path label stays low-cardinality no matter how many users exist.
func normalizePathForMetrics(path string) string {
	if rest, ok := strings.CutPrefix(path, "/users/"); ok && rest != "" {
		return "/users/{id}"
	}
	return path
}

// metricsHandler serves the Prometheus exposition endpoint, refreshing the
// uptime and user-count gauges just before each scrape.
func (s *Server) metricsHandler() http.Handler {
	registryHandler := s.metricsRegistry.Handler()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if metrics.UptimeSeconds != nil && !s.startTime.IsZero() {
			_ = metrics.UptimeSeconds.Set(time.Since(s.startTime).Seconds())
		}
		s.syncUserCount()
		registryHandler.ServeHTTP(w, r)
	})
}
