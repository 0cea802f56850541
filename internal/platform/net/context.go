// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey uint8

const keyClientID ctxKey = iota

// WithRequest annotates ctx with the request id and the client identity
func WithRequest(ctx context.Context, reqID, clientID string) context.Context {
	if reqID != "" {
		// chi's key so chimw.GetReqID keeps working
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if clientID != "" {
		ctx = context.WithValue(ctx, keyClientID, clientID)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// ClientID returns the client identity on the context, or "" when unresolved
func ClientID(ctx context.Context) string {
	s, _ := ctx.Value(keyClientID).(string)
	return s
}
