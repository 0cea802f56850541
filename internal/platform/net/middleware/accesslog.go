// Package middleware holds adapters and in house middlewares
package middleware

import (
	"net/http"
	"time"

	"devsolutions/internal/platform/logger"

	"github.com/rs/zerolog"
)

// AccessLogOptions configures the zerolog access log
type AccessLogOptions struct {
	// Slow marks requests taking >= Slow as warn level, 0 disables slow marking
	Slow time.Duration
}

type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	n, err := s.ResponseWriter.Write(b)
	s.written += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer
func (s *statusRecorder) Unwrap() http.ResponseWriter { return s.ResponseWriter }

// accessLevel picks error for 5xx, warn for throttled or slow requests and info otherwise
func accessLevel(status int, elapsed, slow time.Duration) zerolog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zerolog.ErrorLevel
	case status == http.StatusTooManyRequests:
		return zerolog.WarnLevel
	case slow > 0 && elapsed >= slow:
		return zerolog.WarnLevel
	}
	return zerolog.InfoLevel
}

// AccessLogZerolog logs one line per request with the request scoped logger.
// req_bytes is the declared body size, which is how uploads show up
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			logger.C(r.Context()).WithLevel(accessLevel(rec.status, elapsed, opt.Slow)).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Dur("elapsed", elapsed).
				Int64("req_bytes", r.ContentLength).
				Int("bytes", rec.written).
				Msg("request done")
		})
	}
}
