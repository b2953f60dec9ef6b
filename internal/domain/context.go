// Package domain provides core storefront types, error codes and context
// helpers for GameStore.
//
// Context helpers centralize request-scoped data access so handlers and
// services agree on how the shopper's session and request ID travel.
package domain

import (
	"context"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey int

const (
	// sessionContextKey stores the shopper's session token in context.
	sessionContextKey contextKey = iota

	// requestIDContextKey stores the request ID for tracing.
	requestIDContextKey

	// queueNotificationsContextKey marks requests whose notifications are
	// shown on the next page render instead of in the response.
	queueNotificationsContextKey
)

// --- Session Context Helpers ---

// NewContextWithSessionToken returns a new context with the session token attached.
func NewContextWithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, sessionContextKey, token)
}

// SessionTokenFromContext retrieves the session token from context.
// Returns empty string if the shopper has no session yet.
func SessionTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(sessionContextKey).(string)
	return token
}

// HasSession reports whether a session token is attached to the context.
func HasSession(ctx context.Context) bool {
	return SessionTokenFromContext(ctx) != ""
}

// --- Request ID Context Helpers ---

// NewContextWithRequestID returns a new context with the request ID attached.
func NewContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// RequestIDFromContext retrieves the request ID from context.
// Returns empty string if no request ID is present.
func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDContextKey).(string)
	return requestID
}

// --- Notification Delivery Helpers ---

// NewContextWithQueuedNotifications marks ctx so cart operations queue their
// notifications in the session. Form actions that redirect use it.
func NewContextWithQueuedNotifications(ctx context.Context) context.Context {
	return context.WithValue(ctx, queueNotificationsContextKey, true)
}

// QueueNotifications reports whether ctx was marked by
// NewContextWithQueuedNotifications.
func QueueNotifications(ctx context.Context) bool {
	queued, _ := ctx.Value(queueNotificationsContextKey).(bool)
	return queued
}
