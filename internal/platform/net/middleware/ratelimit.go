package middleware

import (
	"context"
	"net/http"
	"time"

	perr "devsolutions/internal/platform/errors"
	"devsolutions/internal/platform/logger"
	pnet "devsolutions/internal/platform/net"
	phttp "devsolutions/internal/platform/net/http"
)

// AllowFunc reports whether key may proceed and, when not, how long until it may
type AllowFunc func(ctx context.Context, key string) (allowed bool, retryAfter time.Duration)

// ThrottledBody is the 429 payload shared by every limiter
type ThrottledBody struct {
	Error      string `json:"error"`
	RetryAfter int64  `json:"retry_after"`
}

// NewThrottledBody rounds retryAfter up to whole seconds
func NewThrottledBody(msg string, retryAfter time.Duration) ThrottledBody {
	secs := int64((retryAfter + time.Second - 1) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return ThrottledBody{Error: msg, RetryAfter: secs}
}

// ThrottledError is the error every limiter denies with
func ThrottledError(msg string, retryAfter time.Duration) error {
	return perr.WithRetryAfter(perr.TooManyRequestsf("%s", msg), retryAfter)
}

// Throttled renders a throttling error as the shared 429 body plus Retry-After
func Throttled(err error) phttp.Response {
	msg := err.Error()
	if e, ok := perr.As(err); ok {
		msg = e.Message()
	}
	retry := perr.RetryAfterOf(err)
	resp := phttp.Bare(perr.HTTPStatus(err), NewThrottledBody(msg, retry))
	if retry > 0 {
		resp.Header = http.Header{"Retry-After": {phttp.RetryAfterValue(retry)}}
	}
	return resp
}

// RateLimit denies requests whose client identity is over quota with 429 and Retry-After.
// Requests must pass through ClientID first; otherwise the identity is resolved here
func RateLimit(allow AllowFunc, message string) func(http.Handler) http.Handler {
	if message == "" {
		message = "Too many requests"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := pnet.ClientID(r.Context())
			if key == "" {
				key = pnet.ClientIdentity(r)
			}
			ok, retry := allow(r.Context(), key)
			if !ok {
				logger.C(r.Context()).Warn().Dur("retry_after", retry).Msg("rate limited")
				Throttled(ThrottledError(message, retry)).Write(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
