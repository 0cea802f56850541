package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"devsolutions/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack; zero values use the defaults
type StackOptions struct {
	CORS    middleware.CORSOptions
	Timeout time.Duration // default 30s
	Slow    time.Duration // access log warn threshold, default 2s
}

// CommonStack returns the baseline middleware for the versioned API
// rate limiting is added by the caller since it owns the limiter store
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.Slow <= 0 {
		o.Slow = 2 * time.Second
	}
	return []func(http.Handler) http.Handler{
		// correlation
		middleware.RequestID(),
		middleware.ClientID,

		// safety
		middleware.RecoverJSON,

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow}),

		middleware.CORS(o.CORS),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}
