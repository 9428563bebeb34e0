package redis

import (
	"context"
	"strings"
	"testing"
)

func TestConnectRejectsBadURL(t *testing.T) {
	client, err := Connect(context.Background(), "not-a-redis-url")
	if err == nil {
		client.Close()
		t.Fatal("expected an error for a malformed url")
	}
	if !strings.Contains(err.Error(), "parse redis url") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConnectHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client, err := Connect(ctx, "redis://127.0.0.1:1/0")
	if err == nil {
		client.Close()
		t.Fatal("expected ping to fail on a cancelled context")
	}
	if !strings.Contains(err.Error(), "ping redis") {
		t.Errorf("unexpected error: %v", err)
	}
}
