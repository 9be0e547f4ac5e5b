// Package metrics provides a small Prometheus-compatible metrics library
// with no external dependencies.
//
// It supports the three collector types the server needs: counters,
// gauges, and histograms, each with optional labels. A Registry collects
// them and exposes the standard text format over HTTP.
//
// Usage:
//
//	r := metrics.NewRegistry()
//
//	requests := r.NewCounter("requests_total", "Total requests", "method", "status")
//	vec, _ := requests.WithLabels("GET", "200")
//	vec.Inc()
//
//	active := r.NewGauge("active_sessions", "Active sessions")
//	active.Set(3)
//
//	latency := r.NewHistogram("request_seconds", "Request latency", metrics.DefaultBuckets)
//	latency.Observe(0.042)
//
//	http.Handle("/metrics", r.Handler())
//
// The package also defines the server's standard metrics behind Init,
// which builds them once into a shared registry:
//
//	registry := metrics.Init()
//	http.Handle("/metrics", registry.Handler())
//
// All collectors are safe for concurrent use. Unlabeled operations on a
// metric declared with labels return an error rather than panicking, so
// hot paths can ignore failures without crashing the server.
package metrics
