package metrics

import "sync"

// The server's standard metrics, populated by Init. Nil until Init runs,
// so callers that may fire before startup should check for nil.
var (
	// RequestsTotal counts HTTP requests by method, path pattern, and
	// response status.
	RequestsTotal *Counter

	// RequestDuration tracks request latency by method and path pattern.
	RequestDuration *Histogram

	// UsersTotal is the number of user records currently stored.
	UsersTotal *Gauge

	// UptimeSeconds is the time since the server started.
	UptimeSeconds *Gauge

	// ErrorsTotal counts error responses by kind (not_found, bad_request,
	// internal).
	ErrorsTotal *Counter
)

var (
	defaultRegistry *Registry
	initOnce        sync.Once
)

// Init builds the standard metrics into a fresh registry. The first call
// creates everything; later calls return the same registry.
func Init() *Registry {
	initOnce.Do(func() {
		r := NewRegistry()

		RequestsTotal = r.NewCounter(
			"userd_requests_total",
			"Total HTTP requests served",
			"method", "path", "status",
		)
		RequestDuration = r.NewHistogram(
			"userd_request_duration_seconds",
			"HTTP request latency in seconds",
			DefaultBuckets,
			"method", "path",
		)
		UsersTotal = r.NewGauge(
			"userd_users_total",
			"Number of user records currently stored",
		)
		UptimeSeconds = r.NewGauge(
			"userd_uptime_seconds",
			"Seconds since the server started",
		)
		ErrorsTotal = r.NewCounter(
			"userd_errors_total",
			"Total error responses by kind",
			"kind",
		)

		defaultRegistry = r
	})
	return defaultRegistry
}

// DefaultRegistry returns the registry built by Init, or nil if Init has
// not run.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Reset discards the standard metrics so tests can call Init again.
func Reset() {
	initOnce = sync.Once{}
	defaultRegistry = nil
	RequestsTotal = nil
	RequestDuration = nil
	UsersTotal = nil
	UptimeSeconds = nil
	ErrorsTotal = nil
}
