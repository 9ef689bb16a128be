package flow

import (
	"context"
	"testing"
	"time"

	"expodesk_backend/platform/apperr"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour)

	token, err := m.Issue(context.Background(), 42)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	customerID, err := m.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if customerID != 42 {
		t.Fatalf("expected customer 42, got %d", customerID)
	}
}

func TestTokenExpired(t *testing.T) {
	m := NewManager("secret", -time.Minute)

	token, err := m.Issue(context.Background(), 42)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := m.Verify(context.Background(), token); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).Issue(context.Background(), 7)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := NewManager("secret-b", time.Hour).Verify(context.Background(), token); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	m := NewManager("secret", time.Hour)
	if _, err := m.Verify(context.Background(), "not-a-token"); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
