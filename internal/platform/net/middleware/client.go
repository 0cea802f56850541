package middleware

import (
	"net/http"

	"devsolutions/internal/platform/logger"
	pnet "devsolutions/internal/platform/net"
)

// ClientID resolves the client identity from proxy headers and stores it, with the
// request id, on both the net and logger contexts
func ClientID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		reqID, client := pnet.RequestID(ctx), pnet.ClientIdentity(r)
		ctx = pnet.WithRequest(ctx, reqID, client)
		ctx = logger.WithRequest(ctx, reqID, client)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
