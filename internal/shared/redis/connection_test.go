package redis

import (
	"context"
	"testing"

	"shotboard/internal/shared/config"
)

func TestConnectDisabledReturnsNil(t *testing.T) {
	client, err := Connect(context.Background(), config.RedisConfig{Enabled: false})
	if err != nil || client != nil {
		t.Fatalf("expected nil client without error, got %v, %v", client, err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("Close on nil client: %v", err)
	}
}

func TestConnectRejectsBadURL(t *testing.T) {
	_, err := Connect(context.Background(), config.RedisConfig{Enabled: true, URL: "://not-a-url"})
	if err == nil {
		t.Fatalf("expected parse error")
	}
}
