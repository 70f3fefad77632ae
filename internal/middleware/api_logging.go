package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// RequestLog is one finished API request.
type RequestLog struct {
	Method     string
	Path       string
	StatusCode int
	Duration   time.Duration
	Bytes      int
	User       string
	IPAddress  string
}

// APILoggingMiddleware logs API requests off the request path
type APILoggingMiddleware struct {
	logChan chan RequestLog
	done    chan struct{}
	printf  func(format string, v ...any)
}

// responseWriter wraps http.ResponseWriter to capture status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

func NewAPILoggingMiddleware() *APILoggingMiddleware {
	m := &APILoggingMiddleware{
		logChan: make(chan RequestLog, 1000), // Buffer for async logging
		done:    make(chan struct{}),
		printf:  log.Printf,
	}

	go m.asyncLogWriter()

	return m
}

func (m *APILoggingMiddleware) asyncLogWriter() {
	defer close(m.done)
	for e := range m.logChan {
		user := e.User
		if user == "" {
			user = "-"
		}
		m.printf("[API] %s %s %d %s %dB user=%s ip=%s",
			e.Method, e.Path, e.StatusCode, e.Duration.Round(time.Millisecond), e.Bytes, user, e.IPAddress)
	}
}

// Handler returns the middleware handler
func (m *APILoggingMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if shouldSkipLogging(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		// Authenticate runs further in and fills the holder.
		holder := &sessionHolder{}
		next.ServeHTTP(wrapped, r.WithContext(withSessionHolder(r.Context(), holder)))

		entry := RequestLog{
			Method:     r.Method,
			Path:       sanitizePath(r.URL.Path),
			StatusCode: wrapped.statusCode,
			Duration:   time.Since(start),
			Bytes:      wrapped.bytesWritten,
			IPAddress:  getClientIP(r),
		}
		if holder.s != nil {
			entry.User = holder.s.User.Name
		}

		select {
		case m.logChan <- entry:
		default:
			log.Printf("[API] Log buffer full, dropping log entry for %s", r.URL.Path)
		}
	})
}

// Close flushes pending entries
func (m *APILoggingMiddleware) Close() {
	close(m.logChan)
	<-m.done
}

// shouldSkipLogging returns true for paths that shouldn't be logged
func shouldSkipLogging(path string) bool {
	skipPaths := []string{
		"/health",
		"/metrics",
		"/favicon.ico",
	}

	for _, skip := range skipPaths {
		if strings.HasPrefix(path, skip) {
			return true
		}
	}

	return false
}

// sanitizePath drops query parameters and truncates very long paths
func sanitizePath(path string) string {
	if idx := strings.Index(path, "?"); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 500 {
		path = path[:500]
	}
	return path
}

// getClientIP extracts the client IP from the request
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header (for proxies/load balancers)
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		// Take the first IP in the list
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	// Check X-Real-IP header
	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return strings.TrimSpace(xri)
	}

	// Fall back to RemoteAddr
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}

	return ip
}
