package domain

import (
	"context"
	"testing"
)

func TestSessionContext(t *testing.T) {
	t.Run("SessionTokenFromContext returns empty when unset", func(t *testing.T) {
		ctx := context.Background()
		if token := SessionTokenFromContext(ctx); token != "" {
			t.Errorf("expected empty token, got %q", token)
		}
		if HasSession(ctx) {
			t.Error("HasSession should be false without a token")
		}
	})

	t.Run("SessionTokenFromContext returns token when set", func(t *testing.T) {
		ctx := NewContextWithSessionToken(context.Background(), "5f0c7c1e-session")
		if token := SessionTokenFromContext(ctx); token != "5f0c7c1e-session" {
			t.Errorf("expected %q, got %q", "5f0c7c1e-session", token)
		}
		if !HasSession(ctx) {
			t.Error("HasSession should be true with a token")
		}
	})
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	if id := RequestIDFromContext(ctx); id != "" {
		t.Errorf("expected empty request ID, got %q", id)
	}

	ctx = NewContextWithRequestID(ctx, "req-123")
	if id := RequestIDFromContext(ctx); id != "req-123" {
		t.Errorf("expected %q, got %q", "req-123", id)
	}

	// Request ID and session token live under distinct keys.
	ctx = NewContextWithSessionToken(ctx, "tok")
	if id := RequestIDFromContext(ctx); id != "req-123" {
		t.Errorf("request ID overwritten: got %q", id)
	}
}

func TestQueuedNotificationsContext(t *testing.T) {
	ctx := context.Background()
	if QueueNotifications(ctx) {
		t.Error("plain context should not queue notifications")
	}

	ctx = NewContextWithQueuedNotifications(ctx)
	if !QueueNotifications(ctx) {
		t.Error("marked context should queue notifications")
	}
}
