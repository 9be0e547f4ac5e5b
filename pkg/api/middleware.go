package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// requestIDHeader carries the request id on both requests and responses.
const requestIDHeader = "X-Request-ID"

type contextKey string

const requestIDKey contextKey = "requestID"

// RequestIDFromContext returns the request id assigned by the middleware,
// or empty string when none was assigned.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// skipObservePaths contains paths excluded from request logging and metrics.
// These are polled by health checkers and scrapers and would drown out
// real traffic.
var skipObservePaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// withMiddleware wraps the handler with request id, logging, metrics, security headers, and CORS middleware.
// Middleware order (outermost to innermost): Request ID -> Logging -> Metrics -> Security Headers -> CORS -> Handler
func (s *Server) withMiddleware(handler http.Handler) http.Handler {
	// CORS middleware wraps the route handler
	corsHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.corsConfig == nil || !s.corsConfig.Enabled {
			handler.ServeHTTP(w, r)
			return
		}

		origin := r.Header.Get("Origin")

		// Always set Vary header to indicate origin-dependent response
		w.Header().Add("Vary", "Origin")

		// Get the appropriate Allow-Origin value based on config
		allowOrigin := s.corsConfig.AllowOriginValue(origin)
		if allowOrigin == "" {
			// Origin not allowed - process request but browser will block response
			// For preflight, we should return early without CORS headers
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			handler.ServeHTTP(w, r)
			return
		}

		// Set CORS headers
		w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", s.corsConfig.MethodsValue())
		w.Header().Set("Access-Control-Allow-Headers", s.corsConfig.HeadersValue())
		w.Header().Set("Access-Control-Max-Age", s.corsConfig.MaxAgeValue())

		if v := s.corsConfig.ExposeHeadersValue(); v != "" {
			w.Header().Set("Access-Control-Expose-Headers", v)
		}

		// Set credentials header if enabled
		if s.corsConfig.AllowCredentials {
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		handler.ServeHTTP(w, r)
	})

	// Security headers middleware wraps CORS
	securityHandler := SecurityHeadersMiddleware(corsHandler)

	// Metrics middleware wraps security headers
	metricsHandler := s.metricsMiddleware(securityHandler)

	// Logging middleware wraps metrics
	loggingHandler := s.loggingMiddleware(metricsHandler)

	// Request id middleware (outermost, so every log line can carry the id)
	return requestIDMiddleware(loggingHandler)
}

// requestIDMiddleware assigns each request a unique id, reusing one the
// client already sent. The id is echoed on the response and stored in the
// request context so log lines can be correlated with client reports.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggingMiddleware logs one line per request with method, path, status,
// duration, and request id.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if skipObservePaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		// Wrap response writer to capture status code
		wrapped := &statusCapturingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.statusCode,
			"duration", time.Since(start),
			"requestId", RequestIDFromContext(r.Context()),
		)
	})
}

// SecurityHeadersMiddleware adds security headers to all responses.
// These headers help protect against common web vulnerabilities like
// clickjacking, XSS attacks, MIME type sniffing, and information leakage.
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Prevent MIME type sniffing
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// Prevent clickjacking by denying framing
		w.Header().Set("X-Frame-Options", "DENY")

		// Control referrer information sent with requests
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Restrict resource loading to same origin
		w.Header().Set("Content-Security-Policy", "default-src 'self'")

		// Prevent caching of responses
		w.Header().Set("Cache-Control", "no-store")

		next.ServeHTTP(w, r)
	})
}

// statusCapturingResponseWriter wraps http.ResponseWriter to capture the status code.
type statusCapturingResponseWriter struct {
	http.ResponseWriter
	statusCode    int
	headerWritten bool
}

// WriteHeader captures the status code before writing the header.
func (w *statusCapturingResponseWriter) WriteHeader(code int) {
	if !w.headerWritten {
		w.statusCode = code
		w.headerWritten = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// Write captures status code if not already written (implicit 200 OK).
func (w *statusCapturingResponseWriter) Write(b []byte) (int, error) {
	if !w.headerWritten {
		w.statusCode = http.StatusOK
		w.headerWritten = true
	}
	return w.ResponseWriter.Write(b)
}

// Flush implements http.Flusher if the underlying ResponseWriter supports it.
func (w *statusCapturingResponseWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Unwrap returns the underlying ResponseWriter for http.ResponseController support.
func (w *statusCapturingResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
