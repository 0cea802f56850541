package net

import (
	"net/http"
	"strings"
)

// UnknownClient is the identity used when no forwarding header is present
const UnknownClient = "unknown"

// ClientIdentity derives the rate-limit key for r from proxy headers.
// The first X-Forwarded-For hop wins, then X-Real-IP, then UnknownClient.
// The value is not verified; it is only as trustworthy as the proxy in front
func ClientIdentity(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if rip := strings.TrimSpace(r.Header.Get("X-Real-IP")); rip != "" {
		return rip
	}
	return UnknownClient
}
